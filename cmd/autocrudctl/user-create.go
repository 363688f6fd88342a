package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/autocrud/pkg/users"
)

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create <email>",
	Short: "Create a login account",
	Long: `Create a login account. The password is read from stdin.

Example:
  echo "$PASSWORD" | autocrudctl user create alice@example.com --role Manager`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		role, _ := cmd.Flags().GetString("role")

		password, err := readPassword(os.Stdin)
		if err != nil {
			fail("%v", err)
		}
		store, err := usersStore()
		if err != nil {
			fail("Unable to connect to DB: %v", err)
		}
		u, err := users.Create(store, args[0], role, password)
		if err != nil {
			fail("Failed to create user %s: %v", args[0], err)
		}
		fmt.Printf("Created user %s (%s) with role %s\n", u.Email, u.ID, u.Role)
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().StringP("role", "r", "Viewer", "role of the new user")
}
