package model

import "time"

// ModelFile is the persisted copy of a published model definition.
type ModelFile struct {
	Name      string    `gorm:"column:name;primaryKey"`
	Content   string    `gorm:"column:content;type:jsonb;not null"`
	FilePath  string    `gorm:"column:file_path;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (ModelFile) TableName() string {
	return "model_files"
}
