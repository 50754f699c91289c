package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"iter"
	"os"
	"path/filepath"

	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/core/ports"
	"go.trai.ch/zerr"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var _ ports.MetricStore = (*SQLite)(nil)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS metric_cache (
		path TEXT PRIMARY KEY,
		mtime INTEGER NOT NULL,
		metrics TEXT NOT NULL
	);
`

// SQLite is a MetricStore backed by a single SQLite database file. WAL mode
// and a busy timeout let several invocations share one cache file.
//
// The store holds one connection, so Get, Put and Delete must not be called
// from inside a range over Entries.
type SQLite struct {
	conn *sql.DB
	path string
}

// OpenSQLite opens or creates the cache database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheOpenFailed.Error()), "path", path)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheOpenFailed.Error()), "path", path)
	}

	// Pragmas are per connection; a single connection keeps them in force.
	conn.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			_ = conn.Close()
			return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheOpenFailed.Error()), "pragma", pragma)
		}
	}

	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		_ = conn.Close()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheOpenFailed.Error()), "path", path)
	}

	return &SQLite{conn: conn, path: path}, nil
}

// Get retrieves the entry for a model path.
func (s *SQLite) Get(ctx context.Context, path string) (*domain.CacheEntry, error) {
	var modTime int64
	var raw string
	err := s.conn.QueryRowContext(ctx,
		`SELECT mtime, metrics FROM metric_cache WHERE path = ?`, path,
	).Scan(&modTime, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "path", path)
	}

	var metrics domain.Metrics
	if err := json.Unmarshal([]byte(raw), &metrics); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheUnmarshalFailed.Error()), "path", path)
	}

	return &domain.CacheEntry{Path: path, ModTime: modTime, Metrics: metrics}, nil
}

// Put stores the entry, replacing any previous entry for the same path.
func (s *SQLite) Put(ctx context.Context, entry domain.CacheEntry) error {
	raw, err := json.Marshal(entry.Metrics)
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error())
	}

	_, err = s.conn.ExecContext(ctx, `
		INSERT INTO metric_cache (path, mtime, metrics) VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET mtime = excluded.mtime, metrics = excluded.metrics
	`, entry.Path, entry.ModTime, string(raw))
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", entry.Path)
	}
	return nil
}

// Delete removes the entry for a model path.
func (s *SQLite) Delete(ctx context.Context, path string) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM metric_cache WHERE path = ?`, path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheDeleteFailed.Error()), "path", path)
	}
	return nil
}

// Entries iterates over all stored entries, ordered by path.
func (s *SQLite) Entries(ctx context.Context) iter.Seq2[domain.CacheEntry, error] {
	return func(yield func(domain.CacheEntry, error) bool) {
		rows, err := s.conn.QueryContext(ctx, `SELECT path, mtime, metrics FROM metric_cache ORDER BY path`)
		if err != nil {
			yield(domain.CacheEntry{}, zerr.Wrap(err, domain.ErrCacheReadFailed.Error()))
			return
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var entry domain.CacheEntry
			var raw string
			if err := rows.Scan(&entry.Path, &entry.ModTime, &raw); err != nil {
				yield(domain.CacheEntry{}, zerr.Wrap(err, domain.ErrCacheReadFailed.Error()))
				return
			}
			if err := json.Unmarshal([]byte(raw), &entry.Metrics); err != nil {
				if !yield(domain.CacheEntry{}, zerr.With(zerr.Wrap(err, domain.ErrCacheUnmarshalFailed.Error()), "path", entry.Path)) {
					return
				}
				continue
			}
			if !yield(entry, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(domain.CacheEntry{}, zerr.Wrap(err, domain.ErrCacheReadFailed.Error()))
		}
	}
}

// Path returns the database file location.
func (s *SQLite) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
