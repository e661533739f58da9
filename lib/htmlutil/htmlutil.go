package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`  +`)

// whitespace runes become plain spaces before collapsing, so a newline
// between words does not glue them together; other non-printables drop.
func normalizeSpace(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		switch {
		case unicode.IsSpace(c):
			newStr.WriteRune(' ')
		case unicode.IsPrint(c):
			newStr.WriteRune(c)
		}
	}
	return innerWhitespace.ReplaceAllString(newStr.String(), " ")
}

// CleanText collapses the markup whitespace out of extracted text: runs
// of whitespace squashed to one space, ends trimmed.
func CleanText(s string) string {
	return strings.Trim(normalizeSpace(s), " ")
}

// CleanCell is CleanText without the final trim, for header cells where
// leading or trailing space is part of the captured name.
func CleanCell(s string) string {
	return normalizeSpace(s)
}
