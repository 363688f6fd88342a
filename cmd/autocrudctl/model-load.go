package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/autocrud/pkg/audit"
	"github.com/doodlesbykumbi/autocrud/pkg/registry"
)

// modelLoadCmd represents the model load command
var modelLoadCmd = &cobra.Command{
	Use:   "load <file>...",
	Short: "Provision and store one or more model definition files",
	Long: `Provision and store one or more model definition files.

Each file is validated, its table is created if missing, and the
definition is recorded in the model_files table so that the server
serves it on its next start.

Example:
  autocrudctl model load models/products.json models/orders.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := loadModels(cmd.Context(), args); err != nil {
			fail("Failed to load models: %v", err)
		}
	},
}

func init() {
	modelCmd.AddCommand(modelLoadCmd)
}

func loadModels(ctx context.Context, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := connect()
	if err != nil {
		return err
	}
	publisher, _ := newPublisher(cfg, database)

	for _, path := range paths {
		def, err := registry.ReadFile(path)
		if err != nil {
			return err
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if err := publisher.Install(ctx, *def, abs); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		audit.Log(audit.ModelEvent{UserID: "autocrudctl", Model: def.Name, TableName: def.TableName, Operation: "load", Success: true})
		fmt.Printf("Loaded model %s (/api/%s)\n", def.Name, def.RouteName())
	}
	return nil
}
