// Package session tracks the process-wide "current user". The session is a
// single persisted record holding a weak reference to an account by id, so
// a login survives process restarts until an explicit logout. Resolving the
// reference happens on every read; if the referenced account is gone, the
// session is treated as absent.
package session

import (
	"context"
	"time"

	"github.com/ignite/mailcore/internal/domain"
	"github.com/ignite/mailcore/internal/store"
)

// The session collection holds at most one record, under this id.
const recordID = "current"

// Manager reads and writes the persisted session.
type Manager struct {
	store store.Store
}

// NewManager creates a session manager on the given store.
func NewManager(st store.Store) *Manager {
	return &Manager{store: st}
}

// Current resolves the persisted session into the account it references,
// redacted. Returns (nil, nil) when nobody is logged in or the referenced
// account no longer exists.
func (m *Manager) Current(ctx context.Context) (*domain.PublicAccount, error) {
	sess, err := m.read(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}

	recs, err := m.store.List(ctx, store.CollectionAccounts)
	if err != nil {
		return nil, err
	}
	for _, rec := range recs {
		if rec.ID != sess.AccountID {
			continue
		}
		var acc domain.Account
		if err := store.DecodeRecord(rec, &acc); err != nil {
			return nil, err
		}
		pub := acc.Public()
		return &pub, nil
	}
	// Dangling reference: the account was deleted out from under the
	// session. Nobody is logged in.
	return nil, nil
}

// Establish persists a session referencing the given account.
func (m *Manager) Establish(ctx context.Context, accountID string) error {
	rec, err := store.EncodeRecord(recordID, domain.Session{
		AccountID:     accountID,
		EstablishedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return m.store.Put(ctx, store.CollectionSession, rec)
}

// Clear destroys the persisted session. Clearing an absent session is a
// no-op.
func (m *Manager) Clear(ctx context.Context) error {
	return m.store.Remove(ctx, store.CollectionSession, recordID)
}

func (m *Manager) read(ctx context.Context) (*domain.Session, error) {
	recs, err := m.store.List(ctx, store.CollectionSession)
	if err != nil {
		return nil, err
	}
	for _, rec := range recs {
		if rec.ID == recordID {
			var sess domain.Session
			if err := store.DecodeRecord(rec, &sess); err != nil {
				return nil, err
			}
			return &sess, nil
		}
	}
	return nil, nil
}
