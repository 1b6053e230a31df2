package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/mailcore/internal/domain"
	"github.com/ignite/mailcore/internal/session"
	"github.com/ignite/mailcore/internal/store"
	"github.com/ignite/mailcore/internal/store/file"
	"github.com/ignite/mailcore/internal/store/memory"
)

func putAccount(t *testing.T, st store.Store, id, email string) {
	t.Helper()
	rec, err := store.EncodeRecord(id, domain.Account{
		ID:    id,
		Email: email,
		Name:  "Test",
		Role:  domain.RoleUser,
	})
	require.NoError(t, err)
	require.NoError(t, st.Put(context.Background(), store.CollectionAccounts, rec))
}

func TestEstablishCurrentClear(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	m := session.NewManager(st)

	current, err := m.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current, "fresh store has nobody logged in")

	putAccount(t, st, "a1", "a@x.com")
	require.NoError(t, m.Establish(ctx, "a1"))

	current, err = m.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "a1", current.ID)
	assert.Equal(t, "a@x.com", current.Email)

	require.NoError(t, m.Clear(ctx))
	current, err = m.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	// Clearing twice is fine.
	require.NoError(t, m.Clear(ctx))
}

func TestEstablishReplacesPriorSession(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	m := session.NewManager(st)
	putAccount(t, st, "a1", "a@x.com")
	putAccount(t, st, "a2", "b@x.com")

	require.NoError(t, m.Establish(ctx, "a1"))
	require.NoError(t, m.Establish(ctx, "a2"))

	current, err := m.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "a2", current.ID)
}

func TestDanglingReferenceResolvesToNone(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	m := session.NewManager(st)
	putAccount(t, st, "a1", "a@x.com")

	require.NoError(t, m.Establish(ctx, "a1"))
	require.NoError(t, st.Remove(ctx, store.CollectionAccounts, "a1"))

	current, err := m.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestSessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	st, err := file.New(dir)
	require.NoError(t, err)
	putAccount(t, st, "a1", "a@x.com")
	require.NoError(t, session.NewManager(st).Establish(ctx, "a1"))

	// A fresh store on the same directory stands in for a process restart.
	reopened, err := file.New(dir)
	require.NoError(t, err)
	current, err := session.NewManager(reopened).Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "a1", current.ID)
}
