package fetch

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"webtable/lib/gziputil"
	"webtable/lib/headerfile"
	"webtable/lib/testutil"
)

func TestMain(m *testing.M) {
	testutil.Run(m, "fetch")
}

func TestDoAttachesHeadersVerbatim(t *testing.T) {
	var got http.Header
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte("ok"))
	}))
	defer ts.Close()

	headers, err := headerfile.Parse(strings.NewReader(strings.Join([]string{
		"User-Agent: definitely-a-real-browser/1.0",
		"Cookie: session=abc123; theme=dark",
		"X-Captured: value with  spaces",
	}, "\n")))
	require.NoError(t, err)

	client, err := NewClient(Options{})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "page.bin")
	result, err := Do(context.Background(), client, Request{
		URL:        ts.URL,
		Headers:    headers,
		OutputPath: out,
	})
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, result.StatusCode)
	require.Equal(t, int64(2), result.BytesWritten)

	require.Equal(t, "definitely-a-real-browser/1.0", got.Get("User-Agent"))
	require.Equal(t, "session=abc123; theme=dark", got.Get("Cookie"))
	require.Equal(t, "value with  spaces", got.Get("X-Captured"))
}

func TestDoKeepsGzipBodyRaw(t *testing.T) {
	page := []byte("<html><table><tr><td>x</td></tr></table></html>")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.Header.Get("Accept-Encoding"), "gzip")
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		zw.Write(page)
		zw.Close()
		w.Header().Set("Content-Encoding", "gzip")
		w.Write(buf.Bytes())
	}))
	defer ts.Close()

	headers, err := headerfile.Parse(strings.NewReader("Accept-Encoding: gzip\n"))
	require.NoError(t, err)

	client, err := NewClient(Options{})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "page.gz")
	result, err := Do(context.Background(), client, Request{
		URL:        ts.URL,
		Headers:    headers,
		OutputPath: out,
	})
	require.NoError(t, err)
	require.Equal(t, "gzip", result.ContentEncoding)

	// the artifact on disk is still compressed
	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	require.True(t, gziputil.IsGzip(raw))
	require.Equal(t, int64(len(raw)), result.BytesWritten)

	decoded, err := gziputil.ReadArtifact(out)
	require.NoError(t, err)
	require.Equal(t, page, decoded)
}

func TestDoNonSuccessStatusIsNotAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("blocked"))
	}))
	defer ts.Close()

	client, err := NewClient(Options{})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "blocked.bin")
	result, err := Do(context.Background(), client, Request{
		URL:        ts.URL,
		OutputPath: out,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, result.StatusCode)

	body, err := gziputil.ReadArtifact(out)
	require.NoError(t, err)
	require.Equal(t, "blocked", string(body))
}

func TestDoNetworkErrorPropagates(t *testing.T) {
	client, err := NewClient(Options{})
	require.NoError(t, err)

	_, err = Do(context.Background(), client, Request{
		URL:        "http://127.0.0.1:1/unreachable",
		OutputPath: filepath.Join(t.TempDir(), "never.bin"),
	})
	require.Error(t, err)
}

func TestDoDefaultUserAgentSpoofed(t *testing.T) {
	var ua string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer ts.Close()

	client, err := NewClient(Options{})
	require.NoError(t, err)

	_, err = Do(context.Background(), client, Request{
		URL:        ts.URL,
		OutputPath: filepath.Join(t.TempDir(), "ua.bin"),
	})
	require.NoError(t, err)
	require.Contains(t, ua, "Mozilla/5.0")
	require.NotContains(t, ua, "go-resty")
}
