// =============================================================================
// Smart Bookshop POS - Password Command
// =============================================================================
//
// COMMAND USAGE:
//   bookshop password change --current OLD --new NEW --confirm NEW
//
// The current password is checked by the credential store itself, so this
// command does not go through the login gate.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	currentPassword string
	newPassword     string
	confirmPassword string
)

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Manage the staff password",
}

var passwordChangeCmd = &cobra.Command{
	Use:         "change",
	Short:       "Change the staff password",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationAuth: "skip"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		if err := app.Credentials.Change(currentPassword, newPassword, confirmPassword); err != nil {
			app.Logger.Warn("password change rejected", "err", err)
			return err
		}
		app.Logger.Info("password changed")
		fmt.Fprintln(cmd.OutOrStdout(), "Password updated successfully.")
		return nil
	},
}

func init() {
	passwordChangeCmd.Flags().StringVar(&currentPassword, "current", "", "Current password")
	passwordChangeCmd.Flags().StringVar(&newPassword, "new", "", "New password")
	passwordChangeCmd.Flags().StringVar(&confirmPassword, "confirm", "", "New password again")

	passwordCmd.AddCommand(passwordChangeCmd)
	rootCmd.AddCommand(passwordCmd)
}
