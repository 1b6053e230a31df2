// Package prefs stores per-account settings blobs: email notification
// preferences and API integration configuration. Settings are keyed by
// account id and carry no invariants beyond that ownership; accounts that
// never saved anything get defaults.
package prefs

import (
	"context"

	"github.com/ignite/mailcore/internal/domain"
	"github.com/ignite/mailcore/internal/store"
)

// Service reads and writes settings records.
type Service struct {
	store store.Store
}

// NewService creates a prefs service backed by the given store.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// EmailSettings returns the account's notification preferences, or the
// defaults if none were ever saved.
func (s *Service) EmailSettings(ctx context.Context, accountID string) (domain.EmailSettings, error) {
	settings := domain.DefaultEmailSettings(accountID)
	found, err := s.get(ctx, store.CollectionEmailSettings, accountID, &settings)
	if err != nil {
		return domain.EmailSettings{}, err
	}
	if !found {
		return domain.DefaultEmailSettings(accountID), nil
	}
	return settings, nil
}

// SaveEmailSettings persists the account's notification preferences.
func (s *Service) SaveEmailSettings(ctx context.Context, settings domain.EmailSettings) error {
	rec, err := store.EncodeRecord(settings.AccountID, settings)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, store.CollectionEmailSettings, rec)
}

// APISettings returns the account's API configuration, or the defaults if
// none were ever saved.
func (s *Service) APISettings(ctx context.Context, accountID string) (domain.APISettings, error) {
	settings := domain.DefaultAPISettings(accountID)
	found, err := s.get(ctx, store.CollectionAPISettings, accountID, &settings)
	if err != nil {
		return domain.APISettings{}, err
	}
	if !found {
		return domain.DefaultAPISettings(accountID), nil
	}
	return settings, nil
}

// SaveAPISettings persists the account's API configuration.
func (s *Service) SaveAPISettings(ctx context.Context, settings domain.APISettings) error {
	rec, err := store.EncodeRecord(settings.AccountID, settings)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, store.CollectionAPISettings, rec)
}

// Purge drops both settings records for an account. Called when the
// account is deleted; purging an account with no settings is a no-op.
func (s *Service) Purge(ctx context.Context, accountID string) error {
	if err := s.store.Remove(ctx, store.CollectionEmailSettings, accountID); err != nil {
		return err
	}
	return s.store.Remove(ctx, store.CollectionAPISettings, accountID)
}

func (s *Service) get(ctx context.Context, collection, id string, v any) (bool, error) {
	recs, err := s.store.List(ctx, collection)
	if err != nil {
		return false, err
	}
	for _, rec := range recs {
		if rec.ID == id {
			if err := store.DecodeRecord(rec, v); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}
