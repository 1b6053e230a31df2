package ledger

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/mailcore/internal/domain"
	"github.com/ignite/mailcore/internal/store"
)

// transitions lists the legal edges of the campaign state machine.
var transitions = map[domain.CampaignStatus][]domain.CampaignStatus{
	domain.CampaignDraft:     {domain.CampaignScheduled},
	domain.CampaignScheduled: {domain.CampaignActive},
	domain.CampaignActive:    {domain.CampaignPaused, domain.CampaignCompleted},
	domain.CampaignPaused:    {domain.CampaignActive},
	domain.CampaignCompleted: nil,
}

// Service implements campaign business logic over the record store.
type Service struct {
	store store.Store
}

// NewService creates a ledger backed by the given store.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Create persists a new campaign in draft status with all counters zero.
func (s *Service) Create(ctx context.Context, name, subject string, recipients int) (*domain.Campaign, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if subject == "" {
		return nil, fmt.Errorf("subject is required")
	}
	if recipients < 0 {
		return nil, fmt.Errorf("recipients must be non-negative")
	}

	c := domain.Campaign{
		ID:         uuid.New().String(),
		Name:       name,
		Subject:    subject,
		Status:     domain.CampaignDraft,
		Recipients: recipients,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Get returns a single campaign.
func (s *Service) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all campaigns, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Campaign, error) {
	campaigns, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	// Reverse first so campaigns created within the same timestamp tick
	// still come out newest-first; the stable sort preserves that order.
	for i, j := 0, len(campaigns)-1; i < j; i, j = i+1, j-1 {
		campaigns[i], campaigns[j] = campaigns[j], campaigns[i]
	}
	sort.SliceStable(campaigns, func(i, j int) bool {
		return campaigns[i].CreatedAt.After(campaigns[j].CreatedAt)
	})
	return campaigns, nil
}

// Transition moves a campaign along one edge of the state machine. Entering
// scheduled stamps ScheduledAt; leaving it does not clear the stamp. Any
// request that is not a listed edge fails with ErrIllegalTransition and
// changes nothing.
func (s *Service) Transition(ctx context.Context, id string, target domain.CampaignStatus) (*domain.Campaign, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrIllegalTransition, target)
	}
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !legal(c.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, c.Status, target)
	}

	c.Status = target
	if target == domain.CampaignScheduled {
		now := time.Now().UTC()
		c.ScheduledAt = &now
	}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	log.Printf("[ledger.Service] Campaign %s: status -> %s", id, target)
	return &c, nil
}

// DeliveryDelta holds counter increments for one RecordDelivery call.
type DeliveryDelta struct {
	Sent    int
	Opened  int
	Clicked int
	Bounced int
}

// RecordDelivery applies counter increments. Sent is capped by the
// recipient count (exceeding it is ErrCounterOverflow); opened, clicked,
// and bounced are clamped to sent so no derived ratio can pass 100%.
// Drafts have no deliveries, so recording against one is illegal.
func (s *Service) RecordDelivery(ctx context.Context, id string, d DeliveryDelta) (*domain.Campaign, error) {
	if d.Sent < 0 || d.Opened < 0 || d.Clicked < 0 || d.Bounced < 0 {
		return nil, ErrNegativeDelta
	}
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status == domain.CampaignDraft {
		return nil, fmt.Errorf("%w: draft campaigns have no deliveries", ErrIllegalTransition)
	}
	if c.Sent+d.Sent > c.Recipients {
		return nil, ErrCounterOverflow
	}

	c.Sent += d.Sent
	c.Opened = clamp(c.Opened+d.Opened, c.Sent)
	c.Clicked = clamp(c.Clicked+d.Clicked, c.Sent)
	c.Bounced = clamp(c.Bounced+d.Bounced, c.Sent)

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes a campaign unconditionally, whatever its status.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return s.store.Remove(ctx, store.CollectionCampaigns, id)
}

func legal(from, to domain.CampaignStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func clamp(v, max int) int {
	if v > max {
		return max
	}
	return v
}

func (s *Service) load(ctx context.Context) ([]domain.Campaign, error) {
	recs, err := s.store.List(ctx, store.CollectionCampaigns)
	if err != nil {
		return nil, err
	}
	campaigns := make([]domain.Campaign, 0, len(recs))
	for _, rec := range recs {
		var c domain.Campaign
		if err := store.DecodeRecord(rec, &c); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, nil
}

func (s *Service) find(ctx context.Context, id string) (domain.Campaign, error) {
	campaigns, err := s.load(ctx)
	if err != nil {
		return domain.Campaign{}, err
	}
	for _, c := range campaigns {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Campaign{}, ErrNotFound
}

func (s *Service) save(ctx context.Context, c domain.Campaign) error {
	rec, err := store.EncodeRecord(c.ID, c)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, store.CollectionCampaigns, rec)
}
