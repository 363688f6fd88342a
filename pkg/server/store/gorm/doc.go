// Package gorm provides GORM-based implementations of the store interfaces
// defined in the parent store package.
//
// Statements that depend on Postgres features (jsonb merge, RETURNING,
// ON CONFLICT) are written as raw SQL; simple lookups use the query builder.
package gorm
