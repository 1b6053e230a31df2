package domain

// EmailSettings holds an account's notification preferences.
type EmailSettings struct {
	AccountID             string `json:"account_id"`
	DailyDigest           bool   `json:"daily_digest"`
	CampaignNotifications bool   `json:"campaign_notifications"`
	MarketingEmails       bool   `json:"marketing_emails"`
	SecurityAlerts        bool   `json:"security_alerts"`
	EmailFrequency        string `json:"email_frequency"`
}

// DefaultEmailSettings returns the preferences a fresh account starts with.
func DefaultEmailSettings(accountID string) EmailSettings {
	return EmailSettings{
		AccountID:             accountID,
		DailyDigest:           true,
		CampaignNotifications: true,
		MarketingEmails:       false,
		SecurityAlerts:        true,
		EmailFrequency:        "daily",
	}
}

// APISettings holds an account's API integration configuration.
type APISettings struct {
	AccountID        string `json:"account_id"`
	APIKey           string `json:"api_key"`
	WebhookURL       string `json:"webhook_url"`
	RateLimitPerHour int    `json:"rate_limit_per_hour"`
	EnableWebhooks   bool   `json:"enable_webhooks"`
}

// DefaultAPISettings returns the API configuration a fresh account starts with.
func DefaultAPISettings(accountID string) APISettings {
	return APISettings{
		AccountID:        accountID,
		RateLimitPerHour: 1000,
	}
}
