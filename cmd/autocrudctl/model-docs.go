package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/autocrud/pkg/docs"
	"github.com/doodlesbykumbi/autocrud/pkg/registry"
)

// modelDocsCmd represents the model docs command
var modelDocsCmd = &cobra.Command{
	Use:   "docs <file>",
	Short: "Render documentation for a model definition",
	Long: `Render documentation for a model definition file.

Example:
  autocrudctl model docs models/products.json
  autocrudctl model docs models/products.json --format html > products.html`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		if err := renderDocs(args[0], format); err != nil {
			fail("Failed to render docs: %v", err)
		}
	},
}

func init() {
	modelCmd.AddCommand(modelDocsCmd)
	modelDocsCmd.Flags().StringP("format", "f", "markdown", "Output format (markdown or html)")
}

func renderDocs(path, format string) error {
	def, err := registry.ReadFile(path)
	if err != nil {
		return err
	}

	switch format {
	case "markdown", "md":
		fmt.Print(docs.Markdown(*def))
	case "html":
		out, err := docs.HTML(*def)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}
