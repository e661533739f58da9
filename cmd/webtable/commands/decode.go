package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"webtable/lib/gziputil"
)

var decodeOutput string

func init() {
	decodeCmd.Flags().StringVarP(&decodeOutput, "output", "o", "", "Where to write decoded bytes (default: input minus .gz, or input + .out).")
	rootCmd.AddCommand(decodeCmd)
}

var decodeCmd = &cobra.Command{
	Use:   "decode <artifact>",
	Short: "Gunzip a saved artifact. Fails when the artifact is not gzip.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		in := args[0]

		f, err := os.Open(in)
		if err != nil {
			fatal("failed to open artifact", err)
		}
		defer f.Close()

		decoded, err := gziputil.Decode(f)
		if err != nil {
			fatal("failed to decode artifact", err)
		}

		out := decodeOutput
		if out == "" {
			if strings.HasSuffix(in, ".gz") {
				out = strings.TrimSuffix(in, ".gz")
			} else {
				out = in + ".out"
			}
		}

		if err := os.WriteFile(out, decoded, 0644); err != nil {
			fatal("failed to write decoded artifact", err)
		}
		fmt.Printf("%s: %d decoded bytes -> %s\n", in, len(decoded), out)
	},
}
