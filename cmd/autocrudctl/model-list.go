package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/autocrud/pkg/registry"
)

// modelListCmd represents the model list command
var modelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the definitions in the models directory",
	Long: `List the definitions in the models directory.

Files that fail to parse or validate are reported and skipped.

Example:
  autocrudctl model list
  autocrudctl model list --dir ./models`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		if err := listModels(dir); err != nil {
			fail("Failed to list models: %v", err)
		}
	},
}

func init() {
	modelCmd.AddCommand(modelListCmd)
	modelListCmd.Flags().StringP("dir", "d", "", "models directory (defaults to the configured models_dir)")
}

func listModels(path string) error {
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path = cfg.ModelsDir
	}

	loaded, err := registry.NewDir(path).Load()
	if err != nil {
		return err
	}
	if len(loaded) == 0 {
		fmt.Printf("No models found in %s\n", path)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tROUTE\tFIELDS\tPUBLISHED\tFILE")
	for _, l := range loaded {
		fmt.Fprintf(w, "%s\t/api/%s\t%d\t%v\t%s\n", l.Model.Name, l.Model.RouteName(), len(l.Model.Fields), l.Model.Published, l.Path)
	}
	return w.Flush()
}
