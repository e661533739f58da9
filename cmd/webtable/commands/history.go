package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	historyCount   int
	historyLogPath string
)

func init() {
	historyCmd.Flags().IntVarP(&historyCount, "count", "n", 20, "How many entries to show.")
	historyCmd.Flags().StringVar(&historyLogPath, "log", "", "Sqlite file the fetches were logged to.")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [-n 20] [--log db]",
	Short: "Show recent fetches from the fetch log.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		log := openLog(historyLogPath, loadConfig())
		if log == nil {
			fatal("no fetch log", fmt.Errorf("pass --log or configure one in webtable.json5"))
		}
		defer log.Close()

		entries, err := log.Recent(cmd.Context(), historyCount)
		if err != nil {
			fatal("failed to read fetch log", err)
		}

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"fetched at", "status", "bytes", "encoding", "url", "artifact"})
		for _, e := range entries {
			t.AppendRow(table.Row{
				e.FetchedAt.Local().Format(time.DateTime),
				e.Status, e.Bytes, e.ContentEncoding, e.URL, e.Artifact,
			})
		}
		t.Render()
	},
}
