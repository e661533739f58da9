package fetchlog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"webtable/lib/testutil"
)

func TestMain(m *testing.M) {
	testutil.Run(m, "fetchlog")
}

func TestAppendAndRecent(t *testing.T) {
	log, err := Open(Config{File: ":memory:"})
	require.NoError(t, err)
	defer log.Close()

	ctx := context.Background()
	for i, url := range []string{"https://a.example/x", "https://b.example/y", "https://c.example/z"} {
		require.NoError(t, log.Append(ctx, Entry{
			URL:      url,
			Status:   200,
			Bytes:    int64(100 * (i + 1)),
			Artifact: "page.gz",
		}))
	}

	entries, err := log.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// newest first
	require.Equal(t, "https://c.example/z", entries[0].URL)
	require.Equal(t, int64(300), entries[0].Bytes)
	require.Equal(t, "https://b.example/y", entries[1].URL)
	require.WithinDuration(t, time.Now(), entries[0].FetchedAt, time.Minute)
}

func TestOpenOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history", "fetch.db")

	log, err := Open(Config{File: path})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, log.Append(ctx, Entry{
		URL: "https://example.com", Status: 403, Artifact: "blocked.bin",
		ContentEncoding: "gzip",
	}))
	require.NoError(t, log.Close())

	// reopen and read back
	log, err = Open(Config{File: path})
	require.NoError(t, err)
	defer log.Close()

	entries, err := log.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 403, entries[0].Status)
	require.Equal(t, "gzip", entries[0].ContentEncoding)
}

func TestOpenRequiresTarget(t *testing.T) {
	_, err := Open(Config{})
	require.Error(t, err)
}

func TestOpenUncreatableDir(t *testing.T) {
	// a plain file where the history dir should go makes MkdirAll fail
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := Open(Config{File: filepath.Join(blocker, "sub", "fetch.db")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "create history dir")
}

func TestRecentNegativeCount(t *testing.T) {
	log, err := Open(Config{File: ":memory:"})
	require.NoError(t, err)
	defer log.Close()

	ctx := context.Background()
	require.NoError(t, log.Append(ctx, Entry{URL: "https://example.com", Status: 200}))
	require.NoError(t, log.Append(ctx, Entry{URL: "https://example.org", Status: 200}))

	// a negative limit must not mean "everything"
	entries, err := log.Recent(ctx, -1)
	require.NoError(t, err)
	require.Empty(t, entries)
}
