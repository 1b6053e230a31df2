// Package store defines the Record Store contract: keyed JSON records
// grouped into named collections, persisted by one of the backends under
// store/file, store/sqlite, store/redis, or store/memory.
//
// The contract is deliberately small. Services read a full collection
// snapshot with List, find what they need, and write back individual
// records with Put. All operations are synchronous and single-writer; a
// failed Put never leaves a partially written snapshot behind.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection names persisted by mailcore.
const (
	CollectionAccounts      = "accounts"
	CollectionSession       = "currentSession"
	CollectionCampaigns     = "campaigns"
	CollectionEmailSettings = "emailSettings"
	CollectionAPISettings   = "apiSettings"
)

// Record is a single persisted entity: an opaque JSON document keyed by id.
type Record struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

// Store is the persistence contract shared by all backends.
// Implementations must be safe for concurrent use, though the design
// assumes a single writer.
type Store interface {
	// List returns every record in the collection. A collection that has
	// never been written to is empty, not an error. File and memory
	// backends preserve insertion order; redis does not.
	List(ctx context.Context, collection string) ([]Record, error)

	// Put inserts the record or fully replaces the existing record with
	// the same id.
	Put(ctx context.Context, collection string, rec Record) error

	// Remove deletes the record with the given id. Removing an absent id
	// is a no-op.
	Remove(ctx context.Context, collection string, id string) error
}

// ErrFault is the match target for storage faults: errors.Is(err, ErrFault)
// holds for every error a backend returns.
var ErrFault = errors.New("storage fault")

// Fault wraps a storage-medium error with the operation and collection it
// came from. It is the only error kind that originates below the service
// layer and it propagates to callers unchanged.
type Fault struct {
	Op         string
	Collection string
	Err        error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("storage fault: %s %s: %v", f.Op, f.Collection, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

// Is reports a match against ErrFault so callers can classify without
// knowing the backend.
func (f *Fault) Is(target error) bool { return target == ErrFault }

// NewFault builds a Fault for the given operation.
func NewFault(op, collection string, err error) error {
	return &Fault{Op: op, Collection: collection, Err: err}
}

// EncodeRecord marshals v into a Record with the given id.
func EncodeRecord(id string, v any) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Record{}, NewFault("encode", "", err)
	}
	return Record{ID: id, Data: data}, nil
}

// DecodeRecord unmarshals a record's document into v.
func DecodeRecord(rec Record, v any) error {
	if err := json.Unmarshal(rec.Data, v); err != nil {
		return NewFault("decode", "", err)
	}
	return nil
}
