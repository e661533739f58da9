// Package htmltable pulls single elements and <table> structures out of
// a decoded response body.
package htmltable

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"webtable/lib/frame"
	"webtable/lib/htmlutil"
)

var tracer = otel.Tracer("webtable/htmltable")

// Element is one matched node kept for ad hoc inspection.
type Element struct {
	HTML string
	Text string
}

// SelectOne returns the first node matching the css selector. No match is
// an error so a typo'd selector fails loudly instead of printing nothing.
func SelectOne(ctx context.Context, b []byte, selector string) (*Element, error) {
	_, span := tracer.Start(ctx, "SelectOne")
	defer span.End()
	span.SetAttributes(attribute.String("selector", selector))

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, fmt.Errorf("parse html: %w", err)
	}

	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		span.SetStatus(codes.Error, "selector matched nothing")
		return nil, fmt.Errorf("selector %q matched nothing", selector)
	}

	outer, err := goquery.OuterHtml(sel)
	if err != nil {
		return nil, fmt.Errorf("render element: %w", err)
	}

	return &Element{
		HTML: outer,
		Text: htmlutil.CleanText(sel.Text()),
	}, nil
}

// Tables materializes every <table> in the document as a frame.
func Tables(ctx context.Context, b []byte) ([]*frame.Frame, error) {
	ctx, span := tracer.Start(ctx, "Tables")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var frames []*frame.Frame
	var parseErr error
	doc.Find("table").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		f, err := parseTable(sel)
		if err != nil {
			parseErr = fmt.Errorf("table %d: %w", i, err)
			return false
		}
		frames = append(frames, f)
		return true
	})
	if parseErr != nil {
		span.SetStatus(codes.Error, parseErr.Error())
		return nil, parseErr
	}
	if len(frames) == 0 {
		span.SetStatus(codes.Error, "no tables in document")
		return nil, fmt.Errorf("no <table> elements in document")
	}

	span.SetAttributes(attribute.Int("tables", len(frames)))
	return frames, nil
}

// Table materializes the first table matching the css selector.
func Table(ctx context.Context, b []byte, selector string) (*frame.Frame, error) {
	ctx, span := tracer.Start(ctx, "Table")
	defer span.End()
	span.SetAttributes(attribute.String("selector", selector))

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, fmt.Errorf("parse html: %w", err)
	}

	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		span.SetStatus(codes.Error, "selector matched nothing")
		return nil, fmt.Errorf("selector %q matched no table", selector)
	}
	if !sel.Is("table") {
		sel = sel.Find("table").First()
		if sel.Length() == 0 {
			return nil, fmt.Errorf("selector %q matched no table", selector)
		}
	}

	return parseTable(sel)
}

// parseTable reads a <table> selection row by row. Column names come from
// the first row of <th> cells, falling back to the first row outright.
// Header whitespace is preserved (a captured "LOR " stays "LOR "); body
// cells get their whitespace collapsed and trimmed. Short rows are padded
// with empty cells and long rows truncated, since colspan markup produces
// ragged rows routinely.
func parseTable(sel *goquery.Selection) (*frame.Frame, error) {
	var columns []string
	var rows [][]string

	sel.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		headerCells := tr.ChildrenFiltered("th")
		if columns == nil && headerCells.Length() > 0 {
			headerCells.Each(func(_ int, th *goquery.Selection) {
				columns = append(columns, htmlutil.CleanCell(th.Text()))
			})
			return
		}

		var cells []string
		tr.ChildrenFiltered("td, th").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, htmlutil.CleanText(td.Text()))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})

	if columns == nil {
		if len(rows) == 0 {
			return nil, fmt.Errorf("table has no rows")
		}
		columns = rows[0]
		rows = rows[1:]
	}

	for i, row := range rows {
		switch {
		case len(row) < len(columns):
			padded := make([]string, len(columns))
			copy(padded, row)
			rows[i] = padded
		case len(row) > len(columns):
			rows[i] = row[:len(columns)]
		}
	}

	return frame.New(columns, rows)
}
