// Package sqlite implements the Store contract on an embedded SQLite
// database. Records live in a single table keyed by (collection, id);
// upserts preserve the original rowid so List keeps insertion order.
package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/ignite/mailcore/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	data       BLOB NOT NULL,
	PRIMARY KEY (collection, id)
)`

// Store persists records in a SQLite database file, or in memory when the
// DSN is ":memory:".
type Store struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at the given DSN and ensures the
// schema exists. Query parameters like ?_journal_mode=WAL are supported.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, store.NewFault("init", "", fmt.Errorf("sqlite connect: %w", err))
	}
	// The contract is single-writer; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, store.NewFault("init", "", err)
	}
	return &Store{db: db}, nil
}

// NewWithDB wraps an existing database handle. The caller owns the schema.
// Used by tests that inject a mock.
func NewWithDB(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns the collection's records in insertion order.
func (s *Store) List(ctx context.Context, collection string) ([]store.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data FROM records WHERE collection = ? ORDER BY rowid`, collection)
	if err != nil {
		return nil, store.NewFault("list", collection, err)
	}
	defer rows.Close()

	var recs []store.Record
	for rows.Next() {
		var rec store.Record
		if err := rows.Scan(&rec.ID, (*[]byte)(&rec.Data)); err != nil {
			return nil, store.NewFault("list", collection, err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewFault("list", collection, err)
	}
	return recs, nil
}

// Put upserts the record. The ON CONFLICT form keeps the existing rowid so
// a replaced record does not move to the end of the collection.
func (s *Store) Put(ctx context.Context, collection string, rec store.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (collection, id, data) VALUES (?, ?, ?)
		 ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data`,
		collection, rec.ID, []byte(rec.Data))
	if err != nil {
		return store.NewFault("put", collection, err)
	}
	return nil
}

// Remove deletes the record. Deleting an absent id is a no-op.
func (s *Store) Remove(ctx context.Context, collection string, id string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		return store.NewFault("remove", collection, err)
	}
	return nil
}

// Ping verifies the database handle is alive.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return store.NewFault("ping", "", err)
	}
	return nil
}
