package htmltable

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

const rankingsPage = `<html><body>
<h1 id="title">University Rankings</h1>
<p>Intro text.</p>
<table id="rankings">
  <tr><th>Rank</th><th>University</th><th>LOR </th></tr>
  <tr><td>1</td><td>
     MIT
  </td><td>4.5</td></tr>
  <tr><td>2</td><td>Stanford</td><td>4.0</td></tr>
</table>
<table class="footnotes">
  <tr><td>a</td><td>see appendix</td></tr>
  <tr><td>b</td><td>estimated</td></tr>
</table>
</body></html>`

func TestSelectOne(t *testing.T) {
	el, err := SelectOne(context.Background(), []byte(rankingsPage), "#title")
	require.NoError(t, err)
	require.Equal(t, "University Rankings", el.Text)
	require.Contains(t, el.HTML, "<h1")
}

func TestSelectOneNoMatch(t *testing.T) {
	_, err := SelectOne(context.Background(), []byte(rankingsPage), "#missing")
	require.Error(t, err)
}

func TestTables(t *testing.T) {
	frames, err := Tables(context.Background(), []byte(rankingsPage))
	require.NoError(t, err)
	require.Len(t, frames, 2)

	f := frames[0]
	// header whitespace survives extraction
	require.Equal(t, []string{"Rank", "University", "LOR "}, f.Columns())
	require.Equal(t, 2, f.Len())

	// cell whitespace is collapsed
	cell, ok := f.Cell(0, "University")
	require.True(t, ok)
	require.Equal(t, "MIT", cell)

	// headerless table falls back to the first row
	require.Equal(t, []string{"a", "see appendix"}, frames[1].Columns())
	require.Equal(t, 1, frames[1].Len())
}

func TestTablesNone(t *testing.T) {
	_, err := Tables(context.Background(), []byte("<html><body><p>no tables</p></body></html>"))
	require.Error(t, err)
}

func TestTableBySelector(t *testing.T) {
	f, err := Table(context.Background(), []byte(rankingsPage), "#rankings")
	require.NoError(t, err)
	require.Equal(t, []string{"Rank", "University", "LOR "}, f.Columns())
}

func TestTableSelectorDescends(t *testing.T) {
	f, err := Table(context.Background(), []byte(rankingsPage), "body")
	require.NoError(t, err)
	require.Equal(t, []string{"Rank", "University", "LOR "}, f.Columns())
}

func TestTableRaggedRowsPadded(t *testing.T) {
	page := `<table>
	  <tr><th>a</th><th>b</th><th>c</th></tr>
	  <tr><td>1</td></tr>
	  <tr><td>1</td><td>2</td><td>3</td><td>4</td></tr>
	</table>`

	f, err := Table(context.Background(), []byte(page), "table")
	require.NoError(t, err)
	require.Equal(t, 2, f.Len())

	cell, ok := f.Cell(0, "b")
	require.True(t, ok)
	require.Equal(t, "", cell)

	cell, ok = f.Cell(1, "c")
	require.True(t, ok)
	require.Equal(t, "3", cell)
}
