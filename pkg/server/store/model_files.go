package store

import "github.com/doodlesbykumbi/autocrud/pkg/model"

// ModelFilesStore persists published model definitions
type ModelFilesStore interface {
	// UpsertModelFile inserts or replaces the row for file.Name.
	UpsertModelFile(file *model.ModelFile) error

	// ListModelFiles returns every persisted definition ordered by name.
	ListModelFiles() ([]model.ModelFile, error)
}
