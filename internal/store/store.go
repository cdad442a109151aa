// Package store persists the portfolio content, contact messages and
// privacy-preserving visit records in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a row addressed by id does not exist.
var ErrNotFound = errors.New("store: not found")

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sections (
	id       TEXT PRIMARY KEY,
	title    TEXT NOT NULL,
	nav      INTEGER NOT NULL DEFAULT 0,
	position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL,
	description TEXT NOT NULL,
	image       TEXT,
	tags        TEXT NOT NULL DEFAULT '[]', -- JSON array
	link        TEXT,
	repo_link   TEXT,
	position    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS skill_categories (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	name     TEXT NOT NULL UNIQUE,
	skills   TEXT NOT NULL DEFAULT '[]', -- JSON array
	position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS experiences (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	title         TEXT NOT NULL,
	company       TEXT NOT NULL,
	start_date    TEXT,
	end_date      TEXT,
	logo_path     TEXT,
	bullet_points TEXT NOT NULL DEFAULT '[]', -- JSON array
	position      INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS achievements (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL,
	description TEXT NOT NULL,
	icon        TEXT,
	position    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS contact_messages (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	subject    TEXT,
	message    TEXT NOT NULL,
	created_at INTEGER NOT NULL -- unix seconds
);

CREATE TABLE IF NOT EXISTS visitors (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip  TEXT NOT NULL, -- salted hash, never the raw address
	user_agent TEXT,
	path       TEXT,
	visited_at INTEGER NOT NULL -- unix seconds
);

CREATE INDEX IF NOT EXISTS idx_visitors_visited_at ON visitors(visited_at);
`

// Store wraps the database handle.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema. WAL, a busy timeout and foreign keys are enabled on every
// connection.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "busy_timeout(10000)")
	q.Add("_pragma", "synchronous(NORMAL)")
	dsn := "file:" + path + "?" + q.Encode()

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }
