package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ignite/mailcore/internal/domain"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts (admin view)",
	}

	cmd.AddCommand(newUsersListCmd())
	cmd.AddCommand(newUsersAddCmd())
	cmd.AddCommand(newUsersRmCmd())

	return cmd
}

func newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := requireAdmin(ctx, a); err != nil {
				return err
			}
			accounts, err := a.directory.List(ctx)
			if err != nil {
				return err
			}
			for _, acc := range accounts {
				printAccount(acc)
			}
			return nil
		},
	}
}

func newUsersAddCmd() *cobra.Command {
	var (
		email    string
		password string
		name     string
		role     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an account with an explicit role",
		Example: `  mailcore users add --email new@example.com --name "New User"
  mailcore users add --email ops@example.com --name "Ops" --role admin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := requireAdmin(ctx, a); err != nil {
				return err
			}
			pw, err := promptPassword(password, "Password")
			if err != nil {
				return err
			}
			acc, err := a.directory.Create(ctx, email, pw, name, domain.Role(role))
			if err != nil {
				return err
			}
			fmt.Printf("Created %s (%s)\n", acc.Email, acc.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted if omitted)")
	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&role, "role", "user", "Role: admin or user")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newUsersRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <account-id>",
		Short: "Delete an account",
		Long:  "Deletes an account by id. Deleting the account you are logged in as is refused.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := requireAdmin(ctx, a); err != nil {
				return err
			}
			if err := a.directory.Delete(ctx, args[0]); err != nil {
				return err
			}
			if err := a.prefs.Purge(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("Account deleted")
			return nil
		},
	}
}

// requireAdmin gates the admin-only commands. The services themselves do
// not enforce roles; that is the collaborator's job, and here the CLI is
// the collaborator.
func requireAdmin(ctx context.Context, a *app) error {
	current, err := currentAccount(ctx, a)
	if err != nil {
		return err
	}
	if !current.IsAdmin() {
		return fmt.Errorf("%s is not an admin", current.Email)
	}
	return nil
}
