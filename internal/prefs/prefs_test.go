package prefs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/mailcore/internal/domain"
	"github.com/ignite/mailcore/internal/prefs"
	"github.com/ignite/mailcore/internal/store/memory"
)

func TestDefaultsWhenNothingSaved(t *testing.T) {
	ctx := context.Background()
	svc := prefs.NewService(memory.New())

	email, err := svc.EmailSettings(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, email.DailyDigest)
	assert.True(t, email.SecurityAlerts)
	assert.False(t, email.MarketingEmails)
	assert.Equal(t, "daily", email.EmailFrequency)

	api, err := svc.APISettings(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, 1000, api.RateLimitPerHour)
	assert.False(t, api.EnableWebhooks)
}

func TestSaveRoundTripsPerAccount(t *testing.T) {
	ctx := context.Background()
	svc := prefs.NewService(memory.New())

	mine := domain.DefaultEmailSettings("a1")
	mine.MarketingEmails = true
	mine.EmailFrequency = "weekly"
	require.NoError(t, svc.SaveEmailSettings(ctx, mine))

	got, err := svc.EmailSettings(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, got.MarketingEmails)
	assert.Equal(t, "weekly", got.EmailFrequency)

	// Another account still sees defaults.
	other, err := svc.EmailSettings(ctx, "a2")
	require.NoError(t, err)
	assert.False(t, other.MarketingEmails)

	api := domain.DefaultAPISettings("a1")
	api.APIKey = "mk_live_123"
	api.EnableWebhooks = true
	api.WebhookURL = "https://hooks.example.com/mail"
	require.NoError(t, svc.SaveAPISettings(ctx, api))

	gotAPI, err := svc.APISettings(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "mk_live_123", gotAPI.APIKey)
	assert.True(t, gotAPI.EnableWebhooks)
}

func TestPurge(t *testing.T) {
	ctx := context.Background()
	svc := prefs.NewService(memory.New())

	settings := domain.DefaultEmailSettings("a1")
	settings.DailyDigest = false
	require.NoError(t, svc.SaveEmailSettings(ctx, settings))
	require.NoError(t, svc.Purge(ctx, "a1"))

	got, err := svc.EmailSettings(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, got.DailyDigest, "purged account falls back to defaults")

	// Purging an account with no settings is a no-op.
	require.NoError(t, svc.Purge(ctx, "ghost"))
}
