package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"webtable/lib/frame"
)

var (
	csvRenames    []string
	csvStripSpace bool
)

func init() {
	csvCmd.Flags().StringArrayVar(&csvRenames, "rename", nil, "Column rename as OLD=NEW, exact match on OLD. Repeatable.")
	csvCmd.Flags().BoolVar(&csvStripSpace, "strip-space", false, "Trim whitespace from every column name before renaming.")
	rootCmd.AddCommand(csvCmd)
}

var csvCmd = &cobra.Command{
	Use:   "csv <file> [--rename OLD=NEW ...] [--strip-space]",
	Short: "Load a CSV, optionally rename columns, and print the table.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			fatal("failed to open csv", err)
		}
		defer f.Close()

		fr, err := frame.FromCSV(f)
		if err != nil {
			fatal("failed to load csv", err)
		}

		mapping := make(map[string]string, len(csvRenames))
		for _, pair := range csvRenames {
			oldName, newName, found := strings.Cut(pair, "=")
			if !found {
				fatal("bad --rename", fmt.Errorf("expected OLD=NEW, got %q", pair))
			}
			mapping[oldName] = newName
		}

		if csvStripSpace {
			fr.StripColumnSpace()
		}

		if len(mapping) > 0 {
			applied, hints := renameColumns(fr, mapping)
			slog.Info("renamed columns", "applied", len(applied), "requested", len(mapping))

			// renames are exact-match: a key that differs from the real
			// column name by as little as a trailing space silently does
			// nothing, so surface the near misses
			for key, hint := range hints {
				slog.Warn("rename matched no column",
					"key", key, "closest_column", fmt.Sprintf("%q", hint),
					"hint", "column names are matched exactly; try --strip-space")
			}
		}

		fr.Render(os.Stdout)
	},
}

// renameColumns applies the mapping and reports near misses. Hints come
// from the column names as they were before the rename: a key that just
// renamed its column successfully must not then show up as a near miss
// of its own new name.
func renameColumns(fr *frame.Frame, mapping map[string]string) (applied []string, hints map[string]string) {
	hints = fr.RenameHints(mapping)
	applied = fr.Rename(mapping)
	return applied, hints
}
