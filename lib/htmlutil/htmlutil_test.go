package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	node, err := html.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return node
}

func TestGetText(t *testing.T) {
	node := parse(t, "<p>hello <b>bold</b> world</p>")
	require.Equal(t, "hello bold world", GetText(node))
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "a b c", CleanText("  a\n\tb   c "))
	require.Equal(t, "plain", CleanText("plain"))
}

func TestCleanCellKeepsEdgeWhitespace(t *testing.T) {
	require.Equal(t, "LOR ", CleanCell("LOR "))
	require.Equal(t, " padded ", CleanCell(" padded "))
	require.Equal(t, "a b", CleanCell("a\n\nb"))
}
