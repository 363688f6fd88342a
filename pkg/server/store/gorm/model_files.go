package gorm

import (
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/autocrud/pkg/model"
	"github.com/doodlesbykumbi/autocrud/pkg/server/store"
)

// Ensure ModelFilesStore implements store.ModelFilesStore
var _ store.ModelFilesStore = (*ModelFilesStore)(nil)

// ModelFilesStore implements store.ModelFilesStore using GORM
type ModelFilesStore struct {
	db *gorm.DB
}

// NewModelFilesStore creates a new ModelFilesStore
func NewModelFilesStore(db *gorm.DB) *ModelFilesStore {
	return &ModelFilesStore{db: db}
}

// UpsertModelFile inserts or replaces the row for file.Name.
func (s *ModelFilesStore) UpsertModelFile(file *model.ModelFile) error {
	return s.db.Exec(`
		INSERT INTO model_files (name, content, file_path, created_at, updated_at)
		VALUES (?, ?::jsonb, ?, NOW(), NOW())
		ON CONFLICT (name) DO UPDATE
		SET content = EXCLUDED.content, file_path = EXCLUDED.file_path, updated_at = NOW()
	`, file.Name, file.Content, file.FilePath).Error
}

// ListModelFiles returns every persisted definition ordered by name.
func (s *ModelFilesStore) ListModelFiles() ([]model.ModelFile, error) {
	files := []model.ModelFile{}
	if err := s.db.Order("name").Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}
