// Package sqlite loads collections stored as JSON documents in a SQLite
// database. Every collection keeps a history of documents; Load serves the
// most recent and LoadPinned the one with a given id, which is what a
// reference carrying docId or refId asks for.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sbtqa/datajack-sub000/fixture"
	"github.com/sbtqa/datajack-sub000/node"
	"github.com/sbtqa/datajack-sub000/options"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT    NOT NULL,
	id         TEXT    NOT NULL,
	created_at INTEGER NOT NULL,
	body       TEXT    NOT NULL,
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS documents_latest ON documents (collection, created_at);
`

// Store is a document database. It implements fixture.PinnedLoader.
type Store struct {
	db      *sql.DB
	descent options.DescentEnum
	timeout time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithDescent sets the policy reported for every collection.
func WithDescent(d options.DescentEnum) Option {
	return func(s *Store) {
		s.descent = d
	}
}

// WithTimeout bounds every query issued by Load and LoadPinned.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// Open opens the database at dsn, creating the documents table if needed.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dsn, err)
	}

	s := &Store{db: db, descent: options.DescentStrict, timeout: 10 * time.Second}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores doc as document id of collection, stamped with the current
// time.
func (s *Store) Put(ctx context.Context, collection, id string, doc *node.Node) error {
	return s.PutAt(ctx, collection, id, time.Now(), doc)
}

// PutAt stores doc as document id of collection, replacing a document with
// the same id.
func (s *Store) PutAt(ctx context.Context, collection, id string, at time.Time, doc *node.Node) error {
	if !doc.IsObject() {
		return fmt.Errorf("document %s/%s: top level must be an object, got %s", collection, id, doc.Kind())
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO documents (collection, id, created_at, body) VALUES (?, ?, ?, ?)`,
		collection, id, at.UnixNano(), doc.String())
	if err != nil {
		return fmt.Errorf("failed to store document %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Load(collection string) (*node.Node, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, body FROM documents WHERE collection = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		collection)

	return scan(row, collection, "")
}

func (s *Store) LoadPinned(collection, id string) (*node.Node, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, body FROM documents WHERE collection = ? AND id = ?`,
		collection, id)

	return scan(row, collection, id)
}

func scan(row *sql.Row, collection, pinned string) (*node.Node, error) {
	var id, body string

	err := row.Scan(&id, &body)
	if errors.Is(err, sql.ErrNoRows) {
		if pinned != "" {
			return nil, fixture.NotFound(collection, fmt.Errorf("no document with id %q", pinned))
		}
		return nil, fixture.NotFound(collection, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query collection %s: %w", collection, err)
	}

	doc, err := node.Decode([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("document %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

// Collections lists the stored collections, sorted.
func (s *Store) Collections() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT collection FROM documents ORDER BY collection`)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to list collections: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) Descent(string) options.DescentEnum {
	return s.descent
}
