package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/autocrud/pkg/users"
)

// userResetPasswordCmd represents the user reset-password command
var userResetPasswordCmd = &cobra.Command{
	Use:   "reset-password <email>",
	Short: "Reset a user's password",
	Long: `Reset the password of an existing user. The new password is read
from stdin.

Example:
  echo "$PASSWORD" | autocrudctl user reset-password alice@example.com`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		password, err := readPassword(os.Stdin)
		if err != nil {
			fail("%v", err)
		}
		store, err := usersStore()
		if err != nil {
			fail("Unable to connect to DB: %v", err)
		}
		if err := users.ResetPassword(store, args[0], password); err != nil {
			fail("Failed to reset password for %s: %v", args[0], err)
		}
		fmt.Printf("Password reset for %s\n", args[0])
	},
}

func init() {
	userCmd.AddCommand(userResetPasswordCmd)
}
