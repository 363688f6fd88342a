package store

import (
	"errors"

	"github.com/doodlesbykumbi/autocrud/pkg/model"
)

// ErrRecordNotFound is returned when a record doesn't exist for the model
var ErrRecordNotFound = errors.New("record not found")

// ListOptions narrows a record listing
type ListOptions struct {
	// Limit caps the number of records returned; zero means no limit
	Limit int
	// Offset skips records in id order
	Offset int
	// OwnerID restricts the listing to records with this owner
	OwnerID string
}

// RecordsStore abstracts the shared record store
type RecordsStore interface {
	// CreateRecord stores data under a new ULID and returns the stored record.
	CreateRecord(modelName string, data model.JSONMap, ownerID *string) (*model.Record, error)

	// GetRecord retrieves a record of the model.
	// Returns ErrRecordNotFound if it doesn't exist or belongs to another model.
	GetRecord(modelName string, id string) (*model.Record, error)

	// ListRecords returns records of the model in id order.
	ListRecords(modelName string, opts ListOptions) ([]model.Record, error)

	// UpdateRecord shallow-merges patch into the stored data in one statement.
	// When ownerField is set, owner_id follows the merged value of that field.
	// Returns ErrRecordNotFound if the record doesn't exist.
	UpdateRecord(modelName string, id string, patch model.JSONMap, ownerField string) (*model.Record, error)

	// DeleteRecord removes a record.
	// Returns ErrRecordNotFound if the record doesn't exist.
	DeleteRecord(modelName string, id string) error
}
