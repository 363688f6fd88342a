package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autocrudctl",
	Short: "Run and manage the autocrud server",
	Long: `autocrudctl runs the autocrud API server and manages its database,
model definitions, users and configuration.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
