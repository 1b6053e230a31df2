// Package redis implements the Store contract on a Redis hash per
// collection. Intended for deployments that already run Redis locally;
// List order is whatever HGETALL returns.
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/ignite/mailcore/internal/store"
)

const keyPrefix = "mailcore:"

// Store keeps each collection in the hash "mailcore:<collection>", one
// field per record id.
type Store struct {
	client *redis.Client
}

// New wraps an existing Redis client. The caller owns the client's
// lifecycle.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

// Open connects to the Redis server at addr and verifies the connection.
func Open(ctx context.Context, addr string) (*Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, store.NewFault("init", "", err)
	}
	return &Store{client: client}, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// List returns every record in the collection, unordered.
func (s *Store) List(ctx context.Context, collection string) ([]store.Record, error) {
	fields, err := s.client.HGetAll(ctx, keyPrefix+collection).Result()
	if err != nil {
		return nil, store.NewFault("list", collection, err)
	}
	recs := make([]store.Record, 0, len(fields))
	for id, data := range fields {
		recs = append(recs, store.Record{ID: id, Data: []byte(data)})
	}
	return recs, nil
}

// Put sets the record's hash field, inserting or fully replacing it.
func (s *Store) Put(ctx context.Context, collection string, rec store.Record) error {
	if err := s.client.HSet(ctx, keyPrefix+collection, rec.ID, []byte(rec.Data)).Err(); err != nil {
		return store.NewFault("put", collection, err)
	}
	return nil
}

// Remove deletes the record's hash field. Deleting an absent field is a
// no-op on the Redis side already.
func (s *Store) Remove(ctx context.Context, collection string, id string) error {
	if err := s.client.HDel(ctx, keyPrefix+collection, id).Err(); err != nil {
		return store.NewFault("remove", collection, err)
	}
	return nil
}
