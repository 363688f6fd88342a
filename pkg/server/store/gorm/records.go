package gorm

import (
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/autocrud/pkg/model"
	"github.com/doodlesbykumbi/autocrud/pkg/server/store"
)

// Ensure RecordsStore implements store.RecordsStore
var _ store.RecordsStore = (*RecordsStore)(nil)

const recordColumns = "id, model_name, data, owner_id, created_at, updated_at"

// RecordsStore implements store.RecordsStore using GORM
type RecordsStore struct {
	db  *gorm.DB
	now func() time.Time
	id  func() string
}

// NewRecordsStore creates a new RecordsStore
func NewRecordsStore(db *gorm.DB) *RecordsStore {
	return &RecordsStore{
		db:  db,
		now: time.Now,
		id:  func() string { return ulid.Make().String() },
	}
}

// CreateRecord stores data under a new ULID and returns the stored record.
func (s *RecordsStore) CreateRecord(modelName string, data model.JSONMap, ownerID *string) (*model.Record, error) {
	if data == nil {
		data = model.JSONMap{}
	}
	now := s.now().UTC()
	rec := &model.Record{
		ID:        s.id(),
		ModelName: modelName,
		Data:      data,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.db.Exec(
		`INSERT INTO records (`+recordColumns+`) VALUES (?, ?, ?::jsonb, ?, ?, ?)`,
		rec.ID, rec.ModelName, rec.Data, rec.OwnerID, rec.CreatedAt, rec.UpdatedAt,
	).Error
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// GetRecord retrieves a record of the model.
func (s *RecordsStore) GetRecord(modelName string, id string) (*model.Record, error) {
	var rec model.Record
	tx := s.db.Where("id = ? AND model_name = ?", id, modelName).First(&rec)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrRecordNotFound
		}
		return nil, tx.Error
	}
	return &rec, nil
}

// ListRecords returns records of the model in id order.
func (s *RecordsStore) ListRecords(modelName string, opts store.ListOptions) ([]model.Record, error) {
	query := s.db.Where("model_name = ?", modelName)
	if opts.OwnerID != "" {
		query = query.Where("owner_id = ?", opts.OwnerID)
	}
	query = query.Order("id")
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	records := []model.Record{}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateRecord shallow-merges patch into the stored data in one statement.
func (s *RecordsStore) UpdateRecord(modelName string, id string, patch model.JSONMap, ownerField string) (*model.Record, error) {
	if patch == nil {
		patch = model.JSONMap{}
	}
	now := s.now().UTC()

	var tx *gorm.DB
	var rec model.Record
	if ownerField != "" {
		tx = s.db.Raw(
			`UPDATE records SET data = data || ?::jsonb, owner_id = COALESCE((data || ?::jsonb) ->> ?, owner_id), updated_at = ? `+
				`WHERE id = ? AND model_name = ? RETURNING `+recordColumns,
			patch, patch, ownerField, now, id, modelName,
		).Scan(&rec)
	} else {
		tx = s.db.Raw(
			`UPDATE records SET data = data || ?::jsonb, updated_at = ? `+
				`WHERE id = ? AND model_name = ? RETURNING `+recordColumns,
			patch, now, id, modelName,
		).Scan(&rec)
	}
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 || rec.ID == "" {
		return nil, store.ErrRecordNotFound
	}
	return &rec, nil
}

// DeleteRecord removes a record.
func (s *RecordsStore) DeleteRecord(modelName string, id string) error {
	tx := s.db.Exec(`DELETE FROM records WHERE id = ? AND model_name = ?`, id, modelName)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrRecordNotFound
	}
	return nil
}
