// Package gziputil decodes saved response artifacts that may or may not
// be gzip-compressed. The corpus of third-party libraries in this repo
// decompresses transparently at the transport layer; here the raw bytes
// are kept on disk on purpose, so decoding is an explicit step.
package gziputil

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
)

// gzip member magic, RFC 1952 section 2.3.1
var magic = []byte{0x1f, 0x8b}

func IsGzip(b []byte) bool {
	return len(b) >= 2 && b[0] == magic[0] && b[1] == magic[1]
}

// Decode gunzips r in full. Input that is not a valid gzip stream is an
// error; corrupt bytes are never passed through silently.
func Decode(r io.Reader) ([]byte, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("gzip header: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("gzip body: %w", err)
	}
	return out, nil
}

// ReadArtifact reads a saved artifact, gunzipping when the gzip magic is
// present and returning the bytes untouched otherwise. Decompression
// failures on a file that claimed to be gzip still propagate.
func ReadArtifact(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !IsGzip(raw) {
		return raw, nil
	}
	out, err := Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}
