package registry

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/doodlesbykumbi/autocrud/pkg/definition"
)

// Dir is the directory published definitions are written to and loaded from.
type Dir struct {
	path string
}

// Loaded is a definition read from a file.
type Loaded struct {
	Model definition.Model
	Path  string
}

// NewDir creates a Dir for path. The directory is created on first write.
func NewDir(path string) *Dir {
	return &Dir{path: path}
}

// Path returns the directory path.
func (d *Dir) Path() string {
	return d.path
}

// FilePath returns the file a model is written to.
func (d *Dir) FilePath(name string) string {
	return filepath.Join(d.path, name+".json")
}

// Ensure creates the directory if it does not exist.
func (d *Dir) Ensure() error {
	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return fmt.Errorf("failed to create models directory %s: %w", d.path, err)
	}
	return nil
}

// Load reads every definition file in the directory, sorted by file name.
// Files that fail to parse or validate are logged and skipped. A missing
// directory yields no definitions.
func (d *Dir) Load() ([]Loaded, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read models directory %s: %w", d.path, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := definition.FormatForPath(e.Name()); ok {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var out []Loaded
	for _, name := range names {
		path := filepath.Join(d.path, name)
		def, err := ReadFile(path)
		if err != nil {
			log.Printf("Skipping model file %s: %v", path, err)
			continue
		}
		out = append(out, Loaded{Model: *def, Path: path})
	}
	return out, nil
}

// ReadFile parses and validates one definition file.
func ReadFile(path string) (*definition.Model, error) {
	def, err := definition.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// Write stores def as <dir>/<name>.json, replacing any previous file.
func (d *Dir) Write(def definition.Model) (string, error) {
	if err := d.Ensure(); err != nil {
		return "", err
	}
	data, err := def.MarshalFile()
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(d.path, "."+def.Name+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to write model file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write model file: %w", err)
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write model file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write model file: %w", err)
	}

	path := d.FilePath(def.Name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to write model file: %w", err)
	}
	return path, nil
}
