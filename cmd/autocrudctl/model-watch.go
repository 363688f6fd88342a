package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/autocrud/pkg/registry"
)

// modelWatchCmd represents the model watch command
var modelWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the models directory and load definitions as they change",
	Long: `Watch the models directory and load definitions as they change.

Every definition file written to the directory is validated, its table is
created, and it is recorded in the model_files table. Invalid files are
reported and skipped.

Example:
  autocrudctl model watch`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := watchModels(); err != nil {
			fail("Failed to watch models: %v", err)
		}
	},
}

func init() {
	modelCmd.AddCommand(modelWatchCmd)
}

func watchModels() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := connect()
	if err != nil {
		return err
	}
	publisher, dir := newPublisher(cfg, database)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return registry.Watch(ctx, dir, publisher)
}
