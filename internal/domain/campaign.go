package domain

import (
	"math"
	"time"
)

// CampaignStatus enumerates the lifecycle states of a campaign.
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignScheduled CampaignStatus = "scheduled"
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
)

// Valid reports whether s is a recognized campaign status.
func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignDraft, CampaignScheduled, CampaignActive, CampaignPaused, CampaignCompleted:
		return true
	}
	return false
}

// Campaign represents an email campaign with its delivery counters.
type Campaign struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Subject string         `json:"subject"`
	Status  CampaignStatus `json:"status"`

	// Target audience size. Sent never exceeds it.
	Recipients int `json:"recipients"`

	// Delivery counters. Monotonically non-decreasing once the campaign
	// leaves draft; Opened/Clicked/Bounced never exceed Sent.
	Sent    int `json:"sent"`
	Opened  int `json:"opened"`
	Clicked int `json:"clicked"`
	Bounced int `json:"bounced"`

	CreatedAt   time.Time  `json:"created_at"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// IsTerminal returns true if the campaign is in a final state.
func (c *Campaign) IsTerminal() bool {
	return c.Status == CampaignCompleted
}

// Progress is the percentage of the audience reached: sent/recipients x 100,
// 0 when the campaign has no recipients.
func (c *Campaign) Progress() float64 {
	if c.Recipients == 0 {
		return 0
	}
	return roundPct(float64(c.Sent) / float64(c.Recipients))
}

// OpenRate is opened/sent x 100, 0 when nothing has been sent.
func (c *Campaign) OpenRate() float64 {
	if c.Sent == 0 {
		return 0
	}
	return roundPct(float64(c.Opened) / float64(c.Sent))
}

// ClickRate is clicked/sent x 100, 0 when nothing has been sent.
func (c *Campaign) ClickRate() float64 {
	if c.Sent == 0 {
		return 0
	}
	return roundPct(float64(c.Clicked) / float64(c.Sent))
}

// BounceRate is bounced/sent x 100, 0 when nothing has been sent.
func (c *Campaign) BounceRate() float64 {
	if c.Sent == 0 {
		return 0
	}
	return roundPct(float64(c.Bounced) / float64(c.Sent))
}

// roundPct converts a ratio to a percentage rounded to one decimal place.
// Every derived metric uses this one rule.
func roundPct(ratio float64) float64 {
	return math.Round(ratio*1000) / 10
}
