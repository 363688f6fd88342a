// Package definition describes the runtime data models served by autocrud.
//
// A model definition lists the fields of a record type, the field that holds
// the owning user's id (if any) and, per role, the actions that role may
// perform. Definitions are written by administrators through the admin API or
// dropped as files into the models directory.
//
// # Definition Format
//
// Definitions are JSON (or YAML) documents:
//
//	{
//	  "name": "Product",
//	  "tableName": "products",
//	  "description": "Things we sell",
//	  "ownerField": "ownerId",
//	  "fields": [
//	    {"name": "title", "type": "string", "required": true},
//	    {"name": "price", "type": "number", "default": 0}
//	  ],
//	  "rbac": {"Manager": ["create", "read"], "Viewer": ["read"]}
//	}
//
// # Field Types
//
//   - string: free text
//   - number: integer
//   - boolean: true or false
//   - date: ISO-8601 text
//   - relation: id of a record in another model
//
// # Actions
//
// The rbac table maps a role to any of create, read, update, delete, or the
// wildcard all.
package definition
