// Package file implements the Store contract on top of a local data
// directory, one JSON file per collection. Writes go through a temp file
// and rename so a crash mid-write leaves the prior snapshot intact.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/ignite/mailcore/internal/store"
)

// Store persists each collection as <dir>/<collection>.json.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// New creates the data directory if needed and returns a file-backed store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, store.NewFault("init", "", err)
	}
	return &Store{dir: dir}, nil
}

// List reads the collection snapshot. A missing file is an empty collection.
func (s *Store) List(ctx context.Context, collection string) ([]store.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.NewFault("list", collection, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(collection)
}

// Put replaces the collection snapshot with one containing the record,
// inserted or substituted by id.
func (s *Store) Put(ctx context.Context, collection string, rec store.Record) error {
	if err := ctx.Err(); err != nil {
		return store.NewFault("put", collection, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.read(collection)
	if err != nil {
		return err
	}
	replaced := false
	for i, r := range recs {
		if r.ID == rec.ID {
			recs[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		recs = append(recs, rec)
	}
	return s.write(collection, recs)
}

// Remove rewrites the collection snapshot without the given id. Removing
// an absent id is a no-op and does not touch the file.
func (s *Store) Remove(ctx context.Context, collection string, id string) error {
	if err := ctx.Err(); err != nil {
		return store.NewFault("remove", collection, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.read(collection)
	if err != nil {
		return err
	}
	for i, r := range recs {
		if r.ID == id {
			return s.write(collection, append(recs[:i:i], recs[i+1:]...))
		}
	}
	return nil
}

func (s *Store) path(collection string) string {
	// Sanitize collection for filename
	return filepath.Join(s.dir, filepath.Base(collection)+".json")
}

func (s *Store) read(collection string) ([]store.Record, error) {
	data, err := os.ReadFile(s.path(collection))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, store.NewFault("read", collection, err)
	}
	var recs []store.Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, store.NewFault("decode", collection, err)
	}
	return recs, nil
}

func (s *Store) write(collection string, recs []store.Record) error {
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return store.NewFault("encode", collection, err)
	}

	// Temp file in the same directory so the rename is atomic.
	tmp, err := os.CreateTemp(s.dir, filepath.Base(collection)+".*.tmp")
	if err != nil {
		return store.NewFault("write", collection, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return store.NewFault("write", collection, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return store.NewFault("write", collection, err)
	}
	if err := os.Rename(tmp.Name(), s.path(collection)); err != nil {
		os.Remove(tmp.Name())
		return store.NewFault("write", collection, err)
	}
	return nil
}
