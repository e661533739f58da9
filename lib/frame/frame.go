// Package frame holds a small in-memory table of string cells with named
// columns, the shape both the CSV loader and the HTML table extractor
// produce for inspection.
package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/antzucaro/matchr"
)

type Frame struct {
	columns []string
	rows    [][]string
}

// New builds a frame from a header and rows. Every row must have exactly
// one cell per column.
func New(columns []string, rows [][]string) (*Frame, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i, len(row), len(columns))
		}
	}
	return &Frame{
		columns: append([]string{}, columns...),
		rows:    rows,
	}, nil
}

// FromCSV reads a CSV document whose first record is the header row.
// Ragged records are an error, a property of the csv reader that is kept
// as-is.
func FromCSV(r io.Reader) (*Frame, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv document has no header row")
	}
	return New(records[0], records[1:])
}

func (f *Frame) Columns() []string {
	return append([]string{}, f.columns...)
}

func (f *Frame) Len() int {
	return len(f.rows)
}

// Row returns row i as a column-name-to-cell map.
func (f *Frame) Row(i int) map[string]string {
	out := make(map[string]string, len(f.columns))
	for j, name := range f.columns {
		out[name] = f.rows[i][j]
	}
	return out
}

func (f *Frame) Cell(i int, column string) (string, bool) {
	for j, name := range f.columns {
		if name == column {
			return f.rows[i][j], true
		}
	}
	return "", false
}

// Rename changes column names by exact match on the current name. The
// match is case- and whitespace-sensitive: a mapping keyed "LOR" leaves a
// column named "LOR " untouched, silently. That is the documented
// behavior of the dataframe libraries this mirrors, not something to fix
// here. The returned slice lists the old names that actually changed.
func (f *Frame) Rename(mapping map[string]string) []string {
	var applied []string
	for i, name := range f.columns {
		if replacement, ok := mapping[name]; ok {
			f.columns[i] = replacement
			applied = append(applied, name)
		}
	}
	return applied
}

const hintThreshold = 0.9

// RenameHints reports, for every mapping key that matches no column
// exactly, the most similar existing column name (JaroWinkler >= 0.9).
// Callers use this to explain a rename that silently did nothing, without
// loosening the exact-match contract.
func (f *Frame) RenameHints(mapping map[string]string) map[string]string {
	hints := make(map[string]string)
	for key := range mapping {
		if f.hasColumn(key) {
			continue
		}
		best, score := "", 0.0
		for _, name := range f.columns {
			if sim := matchr.JaroWinkler(key, name, false); sim > score {
				best, score = name, sim
			}
		}
		if score >= hintThreshold {
			hints[key] = best
		}
	}
	return hints
}

func (f *Frame) hasColumn(name string) bool {
	for _, c := range f.columns {
		if c == name {
			return true
		}
	}
	return false
}

// StripColumnSpace trims leading and trailing whitespace from every
// column name.
func (f *Frame) StripColumnSpace() {
	for i, name := range f.columns {
		f.columns[i] = strings.TrimSpace(name)
	}
}
