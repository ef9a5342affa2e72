// Package factory creates model content from sample data.
//
// InferSchema derives a schema from an example value: integers become
// "integer" with format int32 or int64, other numbers "number"/"double",
// strings "string" (with format "date" or "date-time" when they look like
// one), null a "string", arrays and objects are described recursively.
//
// SchemaDefinitionFromExample adds such a schema as a named definition of
// an OpenAPI 2 (definitions), OpenAPI 3 or AsyncAPI 2 (components.schemas)
// document. DefinitionCommand returns the same change as an undoable
// command.
package factory
