// Package registry tracks model definitions and their lifecycle.
//
// Models are created as drafts and are not served until published. Publishing
// provisions the model's table, writes <name>.json into the models directory,
// persists the definition to the model_files table and makes the model
// visible to the record routes. At startup the registry is filled from the
// models directory and then from persisted definitions.
package registry
