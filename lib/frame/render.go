package frame

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Render writes the frame to w as a rounded-style terminal table.
func (f *Frame) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)

	header := make(table.Row, len(f.columns))
	for i, name := range f.columns {
		header[i] = name
	}
	t.AppendHeader(header)

	for _, row := range f.rows {
		cells := make(table.Row, len(row))
		for i, c := range row {
			cells[i] = c
		}
		t.AppendRow(cells)
	}

	t.Render()
}
