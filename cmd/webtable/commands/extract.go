package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"webtable/lib/gziputil"
	"webtable/lib/htmltable"
)

var (
	extractSelector string
	extractTables   bool
)

func init() {
	extractCmd.Flags().StringVar(&extractSelector, "selector", "", "CSS selector to inspect.")
	extractCmd.Flags().BoolVar(&extractTables, "tables", false, "Materialize <table> elements instead of printing one element.")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract <artifact> [--selector css] [--tables]",
	Short: "Parse a saved (possibly gzipped) artifact and print an element or its tables.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		body, err := gziputil.ReadArtifact(args[0])
		if err != nil {
			fatal("failed to read artifact", err)
		}

		ctx := cmd.Context()

		switch {
		case extractTables && extractSelector != "":
			f, err := htmltable.Table(ctx, body, extractSelector)
			if err != nil {
				fatal("failed to extract table", err)
			}
			f.Render(os.Stdout)

		case extractTables:
			frames, err := htmltable.Tables(ctx, body)
			if err != nil {
				fatal("failed to extract tables", err)
			}
			for i, f := range frames {
				fmt.Printf("table %d: %d rows\n", i, f.Len())
				f.Render(os.Stdout)
			}

		case extractSelector != "":
			el, err := htmltable.SelectOne(ctx, body, extractSelector)
			if err != nil {
				fatal("failed to extract element", err)
			}
			fmt.Println(el.HTML)
			fmt.Printf("text: %s\n", el.Text)

		default:
			fatal("nothing to do", fmt.Errorf("pass --selector and/or --tables"))
		}
	},
}
