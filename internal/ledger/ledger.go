// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records every artifact the tool writes in a SQLite
// database so history can be listed in write order.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DBFile is the ledger database name inside the index directory.
const DBFile = "ledger.db"

// Kind classifies a recorded artifact.
type Kind string

const (
	KindProcessed Kind = "processed"
	KindNotes     Kind = "notes"
)

// Entry is one recorded artifact. ID is assigned by Record and increases
// with every write, so it orders entries even when timestamps collide.
type Entry struct {
	ID        int64     `json:"id" yaml:"id"`
	Session   string    `json:"session" yaml:"session"`
	Kind      Kind      `json:"kind" yaml:"kind"`
	Format    string    `json:"format,omitempty" yaml:"format,omitempty"`
	Path      string    `json:"path" yaml:"path"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Ledger wraps the SQLite connection.
type Ledger struct {
	db *sql.DB
}

// Open creates dir if needed and opens dir/ledger.db, creating the schema
// on first use.
func Open(dir string) (*Ledger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, DBFile)+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS artifacts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session TEXT NOT NULL,
			kind TEXT NOT NULL,
			format TEXT,
			path TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_artifacts_kind ON artifacts(kind)`,
	}
	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts e and returns it with ID set. A zero CreatedAt is
// replaced with the current time.
func (l *Ledger) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.CreatedAt = e.CreatedAt.UTC()

	res, err := l.db.ExecContext(ctx,
		`INSERT INTO artifacts (session, kind, format, path, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.Session, string(e.Kind), e.Format, e.Path, e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("recording %s artifact: %w", e.Kind, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Entry{}, fmt.Errorf("reading ledger id: %w", err)
	}
	e.ID = id
	return e, nil
}

// List returns the most recent entries first. An empty kind matches every
// kind; limit <= 0 returns all rows.
func (l *Ledger) List(ctx context.Context, kind Kind, limit int) ([]Entry, error) {
	query := `SELECT id, session, kind, COALESCE(format, ''), path, created_at FROM artifacts`
	var args []any
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			k       string
			created string
		)
		if err := rows.Scan(&e.ID, &e.Session, &k, &e.Format, &e.Path, &created); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		e.Kind = Kind(k)
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parsing ledger timestamp %q: %w", created, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger rows: %w", err)
	}
	return entries, nil
}
