package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jinzhu/inflection"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/autocrud/pkg/definition"
)

// modelInitCmd represents the model init command
var modelInitCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Write a starter definition file for a new model",
	Long: `Write a starter definition file for a new model.

The table name defaults to the snake_case plural of the model name. The
generated file has an owner field and a role map that lets Admin do
everything, Manager create and update, and Viewer read.

Example:
  autocrudctl model init Product
  autocrudctl model init OrderItem --dir ./models`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		force, _ := cmd.Flags().GetBool("force")

		path, err := initModel(args[0], dir, force)
		if err != nil {
			fail("Failed to create model: %v", err)
		}
		fmt.Println(path)
	},
}

func init() {
	modelCmd.AddCommand(modelInitCmd)
	modelInitCmd.Flags().StringP("dir", "d", ".", "directory to write the definition to")
	modelInitCmd.Flags().Bool("force", false, "overwrite an existing file")
}

func initModel(name, dir string, force bool) (string, error) {
	def := scaffold(name)
	if err := def.Validate(); err != nil {
		return "", err
	}

	data, err := def.MarshalFile()
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, def.TableName+".json")
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return "", err
	}
	return path, nil
}

func scaffold(name string) definition.Model {
	return definition.Model{
		Name:        name,
		TableName:   inflection.Plural(snakeCase(name)),
		Description: name + " records",
		OwnerField:  "ownerId",
		Fields: []definition.Field{
			{Name: "name", Type: "string", Required: true},
			{Name: "ownerId", Type: "string"},
		},
		RBAC: map[string][]string{
			"Admin":   {"create", "read", "update", "delete"},
			"Manager": {"create", "read", "update"},
			"Viewer":  {"read"},
		},
	}
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
