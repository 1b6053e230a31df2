package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ignite/mailcore/internal/directory"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your own profile",
	}
	cmd.AddCommand(newProfileUpdateCmd())
	return cmd
}

func newProfileUpdateCmd() *cobra.Command {
	var (
		name            string
		email           string
		currentPassword string
		newPassword     string
		changePassword  bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update name, email, or password",
		Example: `  mailcore profile update --name "New Name"
  mailcore profile update --change-password  # prompts for both passwords`,
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

			in := directory.UpdateProfileInput{Name: name, Email: email}
			if changePassword || newPassword != "" {
				in.CurrentPassword, err = promptPassword(currentPassword, "Current password")
				if err != nil {
					return err
				}
				in.NewPassword, err = promptPassword(newPassword, "New password")
				if err != nil {
					return err
				}
			}

			updated, err := a.directory.UpdateProfile(ctx, current.ID, in)
			if err != nil {
				return err
			}
			fmt.Println("Profile updated")
			printAccount(*updated)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().StringVar(&email, "email", "", "New email address")
	cmd.Flags().StringVar(&currentPassword, "current-password", "", "Current password (prompted if omitted)")
	cmd.Flags().StringVar(&newPassword, "new-password", "", "New password")
	cmd.Flags().BoolVar(&changePassword, "change-password", false, "Change the password, prompting for both")

	return cmd
}

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account lifecycle",
	}
	cmd.AddCommand(newAccountCloseCmd())
	return cmd
}

func newAccountCloseCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "close",
		Short: "Delete your own account and log out",
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

			if !yes {
				fmt.Printf("Delete account %s and all its settings? [y/N] ", current.Email)
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
					fmt.Println("Aborted")
					return nil
				}
			}

			if err := a.directory.Close(ctx, current.ID); err != nil {
				return err
			}
			if err := a.prefs.Purge(ctx, current.ID); err != nil {
				return err
			}
			fmt.Println("Account closed")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
