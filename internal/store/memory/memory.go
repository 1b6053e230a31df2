// Package memory provides an in-memory Store backend for tests and
// ephemeral runs. Nothing survives process exit.
package memory

import (
	"context"
	"sync"

	"github.com/ignite/mailcore/internal/store"
)

// Store keeps every collection as an ordered slice of records.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]store.Record
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{collections: make(map[string][]store.Record)}
}

// List returns a copy of the collection in insertion order.
func (s *Store) List(ctx context.Context, collection string) ([]store.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.NewFault("list", collection, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.collections[collection]
	out := make([]store.Record, len(recs))
	for i, r := range recs {
		out[i] = clone(r)
	}
	return out, nil
}

// Put inserts or replaces the record, keeping its original position on
// replace.
func (s *Store) Put(ctx context.Context, collection string, rec store.Record) error {
	if err := ctx.Err(); err != nil {
		return store.NewFault("put", collection, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := s.collections[collection]
	for i, r := range recs {
		if r.ID == rec.ID {
			recs[i] = clone(rec)
			return nil
		}
	}
	s.collections[collection] = append(recs, clone(rec))
	return nil
}

// Remove deletes the record with the given id, if present.
func (s *Store) Remove(ctx context.Context, collection string, id string) error {
	if err := ctx.Err(); err != nil {
		return store.NewFault("remove", collection, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := s.collections[collection]
	for i, r := range recs {
		if r.ID == id {
			s.collections[collection] = append(recs[:i:i], recs[i+1:]...)
			return nil
		}
	}
	return nil
}

func clone(r store.Record) store.Record {
	data := make([]byte, len(r.Data))
	copy(data, r.Data)
	return store.Record{ID: r.ID, Data: data}
}
