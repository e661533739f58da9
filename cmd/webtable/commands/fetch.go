package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"webtable/lib/fetch"
	"webtable/lib/fetchlog"
	"webtable/lib/headerfile"
)

var (
	fetchHeaderFile string
	fetchOutput     string
	fetchTimeout    time.Duration
	fetchBypass     bool
	fetchLogPath    string
)

func init() {
	fetchCmd.Flags().StringVarP(&fetchHeaderFile, "headers", "H", "", "Text file of captured \"Name: value\" headers to replay.")
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "page.bin", "Where to save the raw response body.")
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 0, "Request timeout (default 30s).")
	fetchCmd.Flags().BoolVar(&fetchBypass, "cf-bypass", false, "Wrap the transport with browser-fingerprint headers.")
	fetchCmd.Flags().StringVar(&fetchLogPath, "log", "", "Sqlite file to append this fetch to.")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <url> [-H headers.txt] [-o artifact]",
	Short: "Issue one GET with replayed headers and save the raw body.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		headerFile := fetchHeaderFile
		if headerFile == "" {
			headerFile = cfg.HeaderFile
		}

		var headers headerfile.Headers
		if headerFile != "" {
			var err error
			headers, err = headerfile.ParseFile(headerFile)
			if err != nil {
				fatal("failed to read header file", err)
			}
			slog.Info("replaying captured headers", "file", headerFile, "count", len(headers))
		}

		client, err := fetch.NewClient(fetch.Options{
			Timeout:          fetchTimeout,
			BypassCloudflare: fetchBypass,
		})
		if err != nil {
			fatal("failed to build client", err)
		}

		result, err := fetch.Do(cmd.Context(), client, fetch.Request{
			URL:        args[0],
			Headers:    headers,
			OutputPath: fetchOutput,
		})
		if err != nil {
			fatal("fetch failed", err)
		}

		if log := openLog(fetchLogPath, cfg); log != nil {
			defer log.Close()
			err := log.Append(cmd.Context(), fetchlog.Entry{
				URL:             result.URL,
				Status:          result.StatusCode,
				Bytes:           result.BytesWritten,
				ContentEncoding: result.ContentEncoding,
				Artifact:        result.Artifact,
			})
			if err != nil {
				fatal("failed to record fetch", err)
			}
		}

		fmt.Printf("%d  %d bytes  %s  ->  %s (%s)\n",
			result.StatusCode, result.BytesWritten, result.URL,
			result.Artifact, result.Elapsed.Round(time.Millisecond))
	},
}
