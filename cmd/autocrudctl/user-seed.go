package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/autocrud/pkg/users"
)

// userSeedCmd represents the user seed command
var userSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the demo users on an empty database",
	Long: `Create admin@example.com, manager@example.com and viewer@example.com.

Users are only created when the users table is empty. The password is
taken from seed_password (AUTOCRUD_SEED_PASSWORD).

Example:
  AUTOCRUD_SEED_PASSWORD=changeme autocrudctl user seed`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fail("%v", err)
		}
		if cfg.SeedPassword == "" {
			fail("seed_password (AUTOCRUD_SEED_PASSWORD) is required")
		}
		store, err := usersStore()
		if err != nil {
			fail("Unable to connect to DB: %v", err)
		}
		n, err := users.Seed(store, []byte(cfg.SeedPassword))
		if err != nil {
			fail("Failed to seed users: %v", err)
		}
		fmt.Printf("Created %d users\n", n)
	},
}

func init() {
	userCmd.AddCommand(userSeedCmd)
}
