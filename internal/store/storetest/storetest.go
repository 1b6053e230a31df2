// Package storetest holds the behavioral contract every Store backend must
// satisfy. Backend test files call Run with a factory for a fresh store.
package storetest

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ignite/mailcore/internal/store"
)

// Factory returns a fresh, empty store for one subtest.
type Factory func(t *testing.T) store.Store

// Run exercises the Store contract against the given backend.
func Run(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("empty collection lists empty", func(t *testing.T) {
		s := newStore(t)
		recs, err := s.List(ctx, "campaigns")
		require.NoError(t, err)
		require.Empty(t, recs)
	})

	t.Run("put then list round-trips", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, "campaigns", rec("c1", `{"name":"Launch"}`)))
		require.NoError(t, s.Put(ctx, "campaigns", rec("c2", `{"name":"Digest"}`)))

		recs, err := s.List(ctx, "campaigns")
		require.NoError(t, err)
		require.Len(t, recs, 2)
		byID := index(recs)
		require.JSONEq(t, `{"name":"Launch"}`, string(byID["c1"]))
		require.JSONEq(t, `{"name":"Digest"}`, string(byID["c2"]))
	})

	t.Run("put replaces by id", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, "accounts", rec("a1", `{"name":"Ada"}`)))
		require.NoError(t, s.Put(ctx, "accounts", rec("a1", `{"name":"Grace"}`)))

		recs, err := s.List(ctx, "accounts")
		require.NoError(t, err)
		require.Len(t, recs, 1)
		require.JSONEq(t, `{"name":"Grace"}`, string(recs[0].Data))
	})

	t.Run("remove deletes only the given id", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, "accounts", rec("a1", `{}`)))
		require.NoError(t, s.Put(ctx, "accounts", rec("a2", `{}`)))
		require.NoError(t, s.Remove(ctx, "accounts", "a1"))

		recs, err := s.List(ctx, "accounts")
		require.NoError(t, err)
		require.Len(t, recs, 1)
		require.Equal(t, "a2", recs[0].ID)
	})

	t.Run("remove of absent id is a no-op", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, "accounts", rec("a1", `{}`)))
		require.NoError(t, s.Remove(ctx, "accounts", "ghost"))

		recs, err := s.List(ctx, "accounts")
		require.NoError(t, err)
		require.Len(t, recs, 1)
	})

	t.Run("collections are independent", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, "accounts", rec("x", `{"kind":"account"}`)))
		require.NoError(t, s.Put(ctx, "campaigns", rec("x", `{"kind":"campaign"}`)))
		require.NoError(t, s.Remove(ctx, "accounts", "x"))

		recs, err := s.List(ctx, "campaigns")
		require.NoError(t, err)
		require.Len(t, recs, 1)
		require.JSONEq(t, `{"kind":"campaign"}`, string(recs[0].Data))
	})
}

// RunOrdered adds the insertion-order guarantee for backends that make it
// (file, memory, sqlite).
func RunOrdered(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("list preserves insertion order", func(t *testing.T) {
		s := newStore(t)
		ids := []string{"c3", "c1", "c2"}
		for _, id := range ids {
			require.NoError(t, s.Put(ctx, "campaigns", rec(id, `{}`)))
		}
		// Replacing an existing record must not move it.
		require.NoError(t, s.Put(ctx, "campaigns", rec("c1", `{"v":2}`)))

		recs, err := s.List(ctx, "campaigns")
		require.NoError(t, err)
		got := make([]string, len(recs))
		for i, r := range recs {
			got[i] = r.ID
		}
		require.Equal(t, ids, got)
		require.False(t, sort.StringsAreSorted(got)) // guards against accidental id ordering
	})
}

func rec(id, data string) store.Record {
	return store.Record{ID: id, Data: json.RawMessage(data)}
}

func index(recs []store.Record) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(recs))
	for _, r := range recs {
		out[r.ID] = r.Data
	}
	return out
}
