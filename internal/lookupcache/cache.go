// Package lookupcache persists exact-match lookup results in SQLite so
// repeated runs against the same library skip provider traffic entirely.
package lookupcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"cinetree/internal/films"
	"cinetree/internal/metadata"
)

const schema = `
CREATE TABLE IF NOT EXISTS lookup_cache (
    title        TEXT    NOT NULL,
    year         INTEGER NOT NULL,
    director     TEXT    NOT NULL DEFAULT '',
    genres       TEXT    NOT NULL DEFAULT '',
    cast_members TEXT    NOT NULL DEFAULT '',
    source       TEXT    NOT NULL DEFAULT '',
    cached_at    TEXT    NOT NULL,
    PRIMARY KEY (title, year)
);`

// Store is a sqlite-backed metadata.Cache.
type Store struct {
	db   *sql.DB
	path string
}

var _ metadata.Cache = (*Store)(nil)

// Open initializes or connects to the cache database.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply cache schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the cached metadata for the identity if present.
func (s *Store) Get(ctx context.Context, id films.Identity) (metadata.Metadata, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT director, genres, cast_members FROM lookup_cache WHERE title = ? AND year = ?`,
		id.Title, id.Year,
	)
	var meta metadata.Metadata
	if err := row.Scan(&meta.Director, &meta.Genre, &meta.Cast); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return metadata.Metadata{}, false, nil
		}
		return metadata.Metadata{}, false, fmt.Errorf("query lookup cache: %w", err)
	}
	return meta, true, nil
}

// Put upserts an exact match. The source records which provider answered.
func (s *Store) Put(ctx context.Context, id films.Identity, meta metadata.Metadata, source string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lookup_cache (title, year, director, genres, cast_members, source, cached_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT (title, year) DO UPDATE SET
             director = excluded.director,
             genres = excluded.genres,
             cast_members = excluded.cast_members,
             source = excluded.source,
             cached_at = excluded.cached_at`,
		id.Title, id.Year, meta.Director, meta.Genre, meta.Cast, source,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert lookup cache row: %w", err)
	}
	return nil
}
