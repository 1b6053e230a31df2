package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ignite/mailcore/internal/domain"
	"github.com/ignite/mailcore/internal/ledger"
)

func newCampaignsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "campaigns",
		Aliases: []string{"campaign"},
		Short:   "Manage email campaigns",
	}

	cmd.AddCommand(newCampaignsCreateCmd())
	cmd.AddCommand(newCampaignsListCmd())
	cmd.AddCommand(newCampaignsShowCmd())
	cmd.AddCommand(newCampaignsTransitionCmd("schedule", domain.CampaignScheduled, "Schedule a draft campaign"))
	cmd.AddCommand(newCampaignsTransitionCmd("start", domain.CampaignActive, "Start a scheduled or paused campaign"))
	cmd.AddCommand(newCampaignsTransitionCmd("pause", domain.CampaignPaused, "Pause an active campaign"))
	cmd.AddCommand(newCampaignsTransitionCmd("complete", domain.CampaignCompleted, "Complete an active campaign"))
	cmd.AddCommand(newCampaignsDeliveryCmd())
	cmd.AddCommand(newCampaignsRmCmd())

	return cmd
}

func newCampaignsCreateCmd() *cobra.Command {
	var (
		name       string
		subject    string
		recipients int
	)

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a campaign in draft",
		Example: `  mailcore campaigns create --name "Summer Launch" --subject "Big news" --recipients 2500`,
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
			c, err := a.ledger.Create(ctx, name, subject, recipients)
			if err != nil {
				return err
			}
			if err := a.directory.RecordUsage(ctx, current.ID, 0, 1); err != nil {
				return err
			}
			fmt.Printf("Created campaign %s (draft)\n", c.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Campaign name (required)")
	cmd.Flags().StringVar(&subject, "subject", "", "Email subject (required)")
	cmd.Flags().IntVar(&recipients, "recipients", 0, "Target audience size")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("subject")

	return cmd
}

func newCampaignsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List campaigns, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			campaigns, err := a.ledger.List(ctx)
			if err != nil {
				return err
			}
			for _, c := range campaigns {
				printCampaign(c)
			}
			return nil
		},
	}
}

func newCampaignsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <campaign-id>",
		Short: "Show one campaign with its derived metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			c, err := a.ledger.Get(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Name:       %s\n", c.Name)
			fmt.Printf("Subject:    %s\n", c.Subject)
			fmt.Printf("Status:     %s\n", c.Status)
			if c.ScheduledAt != nil {
				fmt.Printf("Scheduled:  %s\n", c.ScheduledAt.Format("2006-01-02 15:04 MST"))
			}
			fmt.Printf("Recipients: %d\n", c.Recipients)
			fmt.Printf("Sent:       %d (%.1f%%)\n", c.Sent, c.Progress())
			fmt.Printf("Opened:     %d (%.1f%%)\n", c.Opened, c.OpenRate())
			fmt.Printf("Clicked:    %d (%.1f%%)\n", c.Clicked, c.ClickRate())
			fmt.Printf("Bounced:    %d (%.1f%%)\n", c.Bounced, c.BounceRate())
			return nil
		},
	}
}

func newCampaignsTransitionCmd(use string, target domain.CampaignStatus, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <campaign-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			c, err := a.ledger.Transition(ctx, args[0], target)
			if err != nil {
				return err
			}
			fmt.Printf("Campaign %s is now %s\n", c.ID, c.Status)
			return nil
		},
	}
}

func newCampaignsDeliveryCmd() *cobra.Command {
	var delta ledger.DeliveryDelta

	cmd := &cobra.Command{
		Use:     "delivery <campaign-id>",
		Short:   "Record delivery counter increments",
		Example: `  mailcore campaigns delivery <id> --sent 50 --opened 30 --clicked 10 --bounced 2`,
		Args:    cobra.ExactArgs(1),
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
			c, err := a.ledger.RecordDelivery(ctx, args[0], delta)
			if err != nil {
				return err
			}
			if err := a.directory.RecordUsage(ctx, current.ID, delta.Sent, 0); err != nil {
				return err
			}
			printCampaign(*c)
			return nil
		},
	}

	cmd.Flags().IntVar(&delta.Sent, "sent", 0, "Emails sent since last report")
	cmd.Flags().IntVar(&delta.Opened, "opened", 0, "Opens since last report")
	cmd.Flags().IntVar(&delta.Clicked, "clicked", 0, "Clicks since last report")
	cmd.Flags().IntVar(&delta.Bounced, "bounced", 0, "Bounces since last report")

	return cmd
}

func newCampaignsRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <campaign-id>",
		Short: "Delete a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.ledger.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("Campaign deleted")
			return nil
		},
	}
}
