// Package store provides storage abstractions for the autocrud server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints to be decoupled from the specific database implementation.
// Implementations backed by GORM live in the gorm subpackage; tests use
// testify mocks.
//
// # Available Stores
//
//   - RecordsStore: the shared JSON record store
//   - UsersStore: login principals
//   - ModelFilesStore: persisted copies of published definitions
//   - HealthStore: database connectivity
//
// # Usage
//
//	records := gorm.NewRecordsStore(db)
//	rec, err := records.GetRecord("Book", id)
//	if err != nil {
//	    if errors.Is(err, store.ErrRecordNotFound) {
//	        // Handle not found
//	    }
//	}
package store
