// Package model defines the database models for autocrud.
//
// # Tables
//
//   - users: login principals with bcrypt password hashes
//   - records: the shared record store; every model's records live here as
//     jsonb, keyed by a ULID
//   - model_files: persisted copies of published model definitions
//
// Per-model tables created at publish time are not represented here; their
// shape comes from the model definition.
package model
