package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/mailcore/internal/domain"
	"github.com/ignite/mailcore/internal/ledger"
	"github.com/ignite/mailcore/internal/store/memory"
)

func newService(t *testing.T) *ledger.Service {
	t.Helper()
	return ledger.NewService(memory.New())
}

func TestCreateStartsAsDraft(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	c, err := svc.Create(ctx, "Summer Launch", "Big news inside", 2500)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignDraft, c.Status)
	assert.Equal(t, 2500, c.Recipients)
	assert.Zero(t, c.Sent)
	assert.Zero(t, c.Opened)
	assert.Zero(t, c.Clicked)
	assert.Zero(t, c.Bounced)
	assert.Nil(t, c.ScheduledAt)
	assert.False(t, c.CreatedAt.IsZero())

	_, err = svc.Create(ctx, "", "subject", 10)
	assert.ErrorContains(t, err, "name is required")
	_, err = svc.Create(ctx, "name", "", 10)
	assert.ErrorContains(t, err, "subject is required")
	_, err = svc.Create(ctx, "name", "subject", -1)
	assert.ErrorContains(t, err, "non-negative")
}

func TestLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	c, err := svc.Create(ctx, "Launch", "Hello", 100)
	require.NoError(t, err)

	c, err = svc.Transition(ctx, c.ID, domain.CampaignScheduled)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignScheduled, c.Status)
	require.NotNil(t, c.ScheduledAt)
	scheduledAt := *c.ScheduledAt

	c, err = svc.Transition(ctx, c.ID, domain.CampaignActive)
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignActive, c.Status)
	require.NotNil(t, c.ScheduledAt, "leaving scheduled keeps the stamp")
	assert.Equal(t, scheduledAt, *c.ScheduledAt)

	c, err = svc.RecordDelivery(ctx, c.ID, ledger.DeliveryDelta{Sent: 50, Opened: 30, Clicked: 10, Bounced: 2})
	require.NoError(t, err)
	assert.Equal(t, 50.0, c.Progress())
	assert.Equal(t, 60.0, c.OpenRate())
	assert.Equal(t, 20.0, c.ClickRate())
}

func TestTransitionEdges(t *testing.T) {
	ctx := context.Background()

	// Walk a campaign into each starting state, then try every target.
	paths := map[domain.CampaignStatus][]domain.CampaignStatus{
		domain.CampaignDraft:     {},
		domain.CampaignScheduled: {domain.CampaignScheduled},
		domain.CampaignActive:    {domain.CampaignScheduled, domain.CampaignActive},
		domain.CampaignPaused:    {domain.CampaignScheduled, domain.CampaignActive, domain.CampaignPaused},
		domain.CampaignCompleted: {domain.CampaignScheduled, domain.CampaignActive, domain.CampaignCompleted},
	}
	legal := map[domain.CampaignStatus][]domain.CampaignStatus{
		domain.CampaignDraft:     {domain.CampaignScheduled},
		domain.CampaignScheduled: {domain.CampaignActive},
		domain.CampaignActive:    {domain.CampaignPaused, domain.CampaignCompleted},
		domain.CampaignPaused:    {domain.CampaignActive},
		domain.CampaignCompleted: {},
	}
	all := []domain.CampaignStatus{
		domain.CampaignDraft, domain.CampaignScheduled, domain.CampaignActive,
		domain.CampaignPaused, domain.CampaignCompleted,
	}

	for from, path := range paths {
		for _, target := range all {
			t.Run(string(from)+"->"+string(target), func(t *testing.T) {
				svc := newService(t)
				c, err := svc.Create(ctx, "Edges", "s", 10)
				require.NoError(t, err)
				for _, step := range path {
					c, err = svc.Transition(ctx, c.ID, step)
					require.NoError(t, err)
				}
				require.Equal(t, from, c.Status)

				got, err := svc.Transition(ctx, c.ID, target)
				if contains(legal[from], target) {
					require.NoError(t, err)
					assert.Equal(t, target, got.Status)
				} else {
					assert.ErrorIs(t, err, ledger.ErrIllegalTransition)
					unchanged, gerr := svc.Get(ctx, c.ID)
					require.NoError(t, gerr)
					assert.Equal(t, from, unchanged.Status, "failed transition must not change status")
				}
			})
		}
	}
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	c, err := svc.Create(ctx, "Launch", "s", 10)
	require.NoError(t, err)

	_, err = svc.Transition(ctx, c.ID, domain.CampaignStatus("archived"))
	assert.ErrorIs(t, err, ledger.ErrIllegalTransition)

	_, err = svc.Transition(ctx, "ghost", domain.CampaignActive)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestRecordDeliveryInvariants(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	c, err := svc.Create(ctx, "Launch", "s", 100)
	require.NoError(t, err)
	_, err = svc.Transition(ctx, c.ID, domain.CampaignScheduled)
	require.NoError(t, err)
	_, err = svc.Transition(ctx, c.ID, domain.CampaignActive)
	require.NoError(t, err)

	deltas := []ledger.DeliveryDelta{
		{Sent: 40, Opened: 50, Clicked: 45, Bounced: 41}, // engagement beyond sent clamps
		{Sent: 30, Opened: 10, Clicked: 5, Bounced: 0},
		{Sent: 30, Opened: 100, Clicked: 100, Bounced: 100},
	}
	for _, d := range deltas {
		c, err = svc.RecordDelivery(ctx, c.ID, d)
		require.NoError(t, err)
		assert.LessOrEqual(t, c.Sent, c.Recipients)
		assert.LessOrEqual(t, c.Opened, c.Sent)
		assert.LessOrEqual(t, c.Clicked, c.Sent)
		assert.LessOrEqual(t, c.Bounced, c.Sent)
		assert.LessOrEqual(t, c.OpenRate(), 100.0)
		assert.LessOrEqual(t, c.ClickRate(), 100.0)
	}
	assert.Equal(t, 100, c.Sent)
}

func TestRecordDeliveryOverflow(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	c, err := svc.Create(ctx, "Launch", "s", 10)
	require.NoError(t, err)
	_, err = svc.Transition(ctx, c.ID, domain.CampaignScheduled)
	require.NoError(t, err)
	_, err = svc.Transition(ctx, c.ID, domain.CampaignActive)
	require.NoError(t, err)

	_, err = svc.RecordDelivery(ctx, c.ID, ledger.DeliveryDelta{Sent: 8})
	require.NoError(t, err)

	_, err = svc.RecordDelivery(ctx, c.ID, ledger.DeliveryDelta{Sent: 3})
	assert.ErrorIs(t, err, ledger.ErrCounterOverflow)

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Sent, "overflowing delivery must not mutate counters")
}

func TestRecordDeliveryRejectsDraftAndNegatives(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	c, err := svc.Create(ctx, "Launch", "s", 10)
	require.NoError(t, err)

	_, err = svc.RecordDelivery(ctx, c.ID, ledger.DeliveryDelta{Sent: 1})
	assert.ErrorIs(t, err, ledger.ErrIllegalTransition)

	_, err = svc.RecordDelivery(ctx, c.ID, ledger.DeliveryDelta{Sent: -1})
	assert.ErrorIs(t, err, ledger.ErrNegativeDelta)
}

func TestDeleteIsUnconditional(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	c, err := svc.Create(ctx, "Launch", "s", 10)
	require.NoError(t, err)
	_, err = svc.Transition(ctx, c.ID, domain.CampaignScheduled)
	require.NoError(t, err)
	_, err = svc.Transition(ctx, c.ID, domain.CampaignActive)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, c.ID))
	_, err = svc.Get(ctx, c.ID)
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "ghost"), ledger.ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	first, err := svc.Create(ctx, "First", "s", 10)
	require.NoError(t, err)
	second, err := svc.Create(ctx, "Second", "s", 10)
	require.NoError(t, err)

	campaigns, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, campaigns, 2)
	assert.Equal(t, second.ID, campaigns[0].ID)
	assert.Equal(t, first.ID, campaigns[1].ID)
}

func contains(list []domain.CampaignStatus, s domain.CampaignStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
