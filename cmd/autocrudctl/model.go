package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/autocrud/pkg/config"
	"github.com/doodlesbykumbi/autocrud/pkg/provision"
	"github.com/doodlesbykumbi/autocrud/pkg/registry"
	gormstore "github.com/doodlesbykumbi/autocrud/pkg/server/store/gorm"
)

// modelCmd represents the model command
var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Manage model definitions",
	Long:  `Load, list, document and scaffold model definition files.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'model' requires a subcommand (load, list, docs, init, watch)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(modelCmd)
}

// newPublisher wires a publisher against the database and the configured
// models directory.
func newPublisher(cfg *config.AutocrudConfig, database *gorm.DB) (*registry.Publisher, *registry.Dir) {
	dir := registry.NewDir(cfg.ModelsDir)
	files := gormstore.NewModelFilesStore(database)
	return registry.NewPublisher(registry.New(), provision.NewGormProvisioner(database), files, dir), dir
}
