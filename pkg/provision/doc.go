// Package provision creates the relational table backing a published model.
//
// The generated DDL is idempotent (CREATE TABLE IF NOT EXISTS). Identifiers
// are validated and quoted; defaults are rendered from typed values so that
// no definition text reaches the statement unquoted.
package provision
