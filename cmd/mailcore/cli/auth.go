package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd() *cobra.Command {
	var (
		email    string
		password string
		name     string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Long:  "Creates a new account. The first account ever registered becomes the admin.",
		Example: `  mailcore register --email you@example.com --name "You"
  mailcore register --email you@example.com --name "You" --password secret`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			pw, err := promptPassword(password, "Password")
			if err != nil {
				return err
			}
			acc, err := a.directory.Register(ctx, email, pw, name)
			if err != nil {
				return err
			}
			fmt.Printf("Registered %s as %s\n", acc.Email, acc.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted if omitted)")
	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newLoginCmd() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and establish the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			pw, err := promptPassword(password, "Password")
			if err != nil {
				return err
			}
			acc, err := a.directory.Authenticate(ctx, email, pw)
			if err != nil {
				return err
			}
			fmt.Printf("Logged in as %s (%s)\n", acc.Email, acc.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted if omitted)")
	cmd.MarkFlagRequired("email")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Destroy the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.sessions.Clear(ctx); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently logged-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			current, err := a.sessions.Current(ctx)
			if err != nil {
				return err
			}
			if current == nil {
				fmt.Println("Not logged in")
				return nil
			}
			printAccount(*current)
			return nil
		},
	}
}
