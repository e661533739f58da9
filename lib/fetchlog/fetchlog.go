// Package fetchlog keeps an append-only history of fetches in sqlite so
// transfer sizes and status codes stay inspectable across runs.
package fetchlog

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS fetch_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	url TEXT NOT NULL,
	status INTEGER NOT NULL,
	bytes INTEGER NOT NULL,
	content_encoding TEXT NOT NULL DEFAULT '',
	artifact TEXT NOT NULL,
	fetched_at TEXT NOT NULL
);
`

// Config selects the backing database: a local file (modernc sqlite) or
// a remote libsql url with an optional auth token.
type Config struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

type Entry struct {
	ID              int64
	URL             string
	Status          int
	Bytes           int64
	ContentEncoding string
	Artifact        string
	FetchedAt       time.Time
}

type Log struct {
	db *sql.DB
}

func Open(config Config) (*Log, error) {
	db, err := openDB(config)
	if err != nil {
		return nil, fmt.Errorf("open fetch log: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate fetch log: %w", err)
	}
	return &Log{db: db}, nil
}

func openDB(config Config) (*sql.DB, error) {
	if config.Url != "" {
		values := url.Values{}
		if config.AuthToken != "" {
			values.Add("authToken", config.AuthToken)
		}
		return sql.Open("libsql", config.Url+"?"+values.Encode())
	}

	if config.File == "" {
		return nil, fmt.Errorf("neither a file nor a url was specified")
	}
	if config.File != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(config.File), 0777); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", config.File)
	if err != nil {
		return nil, err
	}
	// see https://stackoverflow.com/questions/35804884 for why sqlite
	// writes want a single connection and WAL
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (l *Log) Close() error {
	return l.db.Close()
}

func (l *Log) Append(ctx context.Context, e Entry) error {
	fetchedAt := e.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO fetch_log (url, status, bytes, content_encoding, artifact, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.URL, e.Status, e.Bytes, e.ContentEncoding, e.Artifact,
		fetchedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("append fetch log: %w", err)
	}
	return nil
}

// Recent returns up to n entries, newest first. A non-positive n
// returns nothing; sqlite would read a negative LIMIT as "unlimited".
func (l *Log) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n < 0 {
		n = 0
	}
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, url, status, bytes, content_encoding, artifact, fetched_at
		FROM fetch_log ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query fetch log: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var fetchedAt string
		err := rows.Scan(&e.ID, &e.URL, &e.Status, &e.Bytes, &e.ContentEncoding, &e.Artifact, &fetchedAt)
		if err != nil {
			return nil, err
		}
		e.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
		if err != nil {
			return nil, fmt.Errorf("fetch log row %d: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
