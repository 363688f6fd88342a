package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	gormstore "github.com/doodlesbykumbi/autocrud/pkg/server/store/gorm"
)

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage login accounts",
	Long:  `Seed, create and reset the passwords of login accounts.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'user' requires a subcommand (seed, create, reset-password)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
}

func usersStore() (*gormstore.UsersStore, error) {
	database, err := connect()
	if err != nil {
		return nil, err
	}
	return gormstore.NewUsersStore(database), nil
}
