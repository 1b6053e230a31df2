package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Per-account preferences",
	}
	cmd.AddCommand(newSettingsEmailCmd())
	cmd.AddCommand(newSettingsAPICmd())
	return cmd
}

func newSettingsEmailCmd() *cobra.Command {
	var (
		digest    string
		campaigns string
		marketing string
		security  string
		frequency string
	)

	cmd := &cobra.Command{
		Use:   "email",
		Short: "Show or change email notification preferences",
		Example: `  mailcore settings email
  mailcore settings email --marketing on --frequency weekly`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			current, err := currentAccount(ctx, a)
			if err != nil {
				return err
			}
			settings, err := a.prefs.EmailSettings(ctx, current.ID)
			if err != nil {
				return err
			}

			changed := false
			for _, f := range []struct {
				value  string
				target *bool
			}{
				{digest, &settings.DailyDigest},
				{campaigns, &settings.CampaignNotifications},
				{marketing, &settings.MarketingEmails},
				{security, &settings.SecurityAlerts},
			} {
				if f.value == "" {
					continue
				}
				on, err := parseToggle(f.value)
				if err != nil {
					return err
				}
				*f.target = on
				changed = true
			}
			if frequency != "" {
				settings.EmailFrequency = frequency
				changed = true
			}

			if changed {
				if err := a.prefs.SaveEmailSettings(ctx, settings); err != nil {
					return err
				}
				fmt.Println("Email settings saved")
			}
			fmt.Printf("daily digest:          %s\n", onOff(settings.DailyDigest))
			fmt.Printf("campaign notifications: %s\n", onOff(settings.CampaignNotifications))
			fmt.Printf("marketing emails:      %s\n", onOff(settings.MarketingEmails))
			fmt.Printf("security alerts:       %s\n", onOff(settings.SecurityAlerts))
			fmt.Printf("frequency:             %s\n", settings.EmailFrequency)
			return nil
		},
	}

	cmd.Flags().StringVar(&digest, "digest", "", "Daily digest: on or off")
	cmd.Flags().StringVar(&campaigns, "campaigns", "", "Campaign notifications: on or off")
	cmd.Flags().StringVar(&marketing, "marketing", "", "Marketing emails: on or off")
	cmd.Flags().StringVar(&security, "security", "", "Security alerts: on or off")
	cmd.Flags().StringVar(&frequency, "frequency", "", "Digest frequency (daily, weekly, monthly)")

	return cmd
}

func newSettingsAPICmd() *cobra.Command {
	var (
		apiKey     string
		webhookURL string
		rateLimit  int
		webhooks   string
	)

	cmd := &cobra.Command{
		Use:   "api",
		Short: "Show or change API integration settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			current, err := currentAccount(ctx, a)
			if err != nil {
				return err
			}
			settings, err := a.prefs.APISettings(ctx, current.ID)
			if err != nil {
				return err
			}

			changed := false
			if apiKey != "" {
				settings.APIKey = apiKey
				changed = true
			}
			if webhookURL != "" {
				settings.WebhookURL = webhookURL
				changed = true
			}
			if cmd.Flags().Changed("rate-limit") {
				settings.RateLimitPerHour = rateLimit
				changed = true
			}
			if webhooks != "" {
				on, err := parseToggle(webhooks)
				if err != nil {
					return err
				}
				settings.EnableWebhooks = on
				changed = true
			}

			if changed {
				if err := a.prefs.SaveAPISettings(ctx, settings); err != nil {
					return err
				}
				fmt.Println("API settings saved")
			}
			fmt.Printf("api key:     %s\n", maskKey(settings.APIKey))
			fmt.Printf("webhook url: %s\n", settings.WebhookURL)
			fmt.Printf("rate limit:  %d/hour\n", settings.RateLimitPerHour)
			fmt.Printf("webhooks:    %s\n", onOff(settings.EnableWebhooks))
			return nil
		},
	}

	cmd.Flags().StringVar(&apiKey, "key", "", "API key")
	cmd.Flags().StringVar(&webhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().IntVar(&rateLimit, "rate-limit", 0, "Requests per hour")
	cmd.Flags().StringVar(&webhooks, "webhooks", "", "Webhooks: on or off")

	return cmd
}

func parseToggle(v string) (bool, error) {
	switch v {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", v)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "********"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
