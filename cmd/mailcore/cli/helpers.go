package cli

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/ignite/mailcore/internal/domain"
)

// promptPassword reads a password from the terminal without echo, falling
// back to the --password flag value when it was given.
func promptPassword(flagValue, label string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Printf("%s: ", label)
	pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()
	return string(pwBytes), nil
}

// currentAccount resolves the session or fails the command.
func currentAccount(ctx context.Context, a *app) (*domain.PublicAccount, error) {
	current, err := a.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("not logged in (run 'mailcore login' first)")
	}
	return current, nil
}

func printAccount(a domain.PublicAccount) {
	fmt.Printf("%s  %-28s  %-20s  %-5s  emails:%d campaigns:%d\n",
		a.ID, a.Email, a.Name, a.Role, a.EmailsSent, a.CampaignsCount)
}

func printCampaign(c domain.Campaign) {
	fmt.Printf("%s  %-24s  %-9s  sent %d/%d  open %.1f%%  click %.1f%%\n",
		c.ID, c.Name, c.Status, c.Sent, c.Recipients, c.OpenRate(), c.ClickRate())
}
