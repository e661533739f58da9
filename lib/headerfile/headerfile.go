// Package headerfile reads captured request headers from a plain-text
// file, one "Name: value" pair per line, and replays them verbatim on an
// outgoing request. Values are never trimmed or validated past the single
// space after the colon, so a cookie string or user-agent copied out of
// browser devtools goes over the wire exactly as captured.
package headerfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
)

type Pair struct {
	Name  string
	Value string
}

// Headers is an ordered list of header pairs. Order is preserved from the
// source file; duplicates are kept.
type Headers []Pair

func Parse(r io.Reader) (Headers, error) {
	var out Headers

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()

		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		name, value, found := strings.Cut(text, ":")
		if !found {
			return nil, fmt.Errorf("line %d: expected \"Name: value\", got %q", line, text)
		}

		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("line %d: empty header name", line)
		}

		// only the conventional single space after the colon is dropped,
		// everything else in the value is significant
		value = strings.TrimPrefix(value, " ")

		out = append(out, Pair{Name: name, Value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read header file: %w", err)
	}

	return out, nil
}

func ParseFile(path string) (Headers, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	headers, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return headers, nil
}

// Get returns the value of the first pair whose name matches
// case-insensitively, or "".
func (h Headers) Get(name string) string {
	for _, p := range h {
		if strings.EqualFold(p.Name, name) {
			return p.Value
		}
	}
	return ""
}

// Apply sets every pair on the request in file order. Later duplicates
// append rather than replace, matching what a raw HTTP request would carry.
func (h Headers) Apply(req *resty.Request) {
	seen := make(map[string]bool, len(h))
	for _, p := range h {
		key := strings.ToLower(p.Name)
		if seen[key] {
			req.Header.Add(p.Name, p.Value)
			continue
		}
		req.SetHeader(p.Name, p.Value)
		seen[key] = true
	}
}
