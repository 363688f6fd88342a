// Package rbac evaluates role based permissions on dynamic models.
//
// Each model carries a table mapping role names to granted actions
// (create, read, update, delete, all). The Admin role bypasses the table.
// For update and delete on a model with an owner field, a record owned by
// someone else is refused with ErrNotOwner unless the caller is Admin.
package rbac
