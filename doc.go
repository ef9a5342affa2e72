// Package oasmodel is an in-memory, versioned document model for OpenAPI 2,
// OpenAPI 3 and AsyncAPI 2 descriptions.
//
// Descriptions are parsed into a typed node tree, traversed and validated
// through pluggable visitor dispatch, and edited through reversible
// commands. This package is a thin facade over the packages that do the
// work:
//
//   - value: ordered generic values exchanged with the text codecs
//   - model: nodes, documents and their ownership rules
//   - nodepath: stable string addresses for nodes
//   - catalog: the node kinds and fields of each document type
//   - walker: dispatch tables and pre-order traversal
//   - parser: type detection, JSON/YAML codec, reader and writer
//   - validator: the rule engine, with validator/rules for built-in and
//     expression rules
//   - command: undoable edits and history
//   - factory: schema definitions inferred from examples
//
// # Quick Start
//
// Read and validate a description:
//
//	doc, err := oasmodel.ReadDocumentFromText(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	pending, err := oasmodel.ValidateDocument(ctx, doc, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	problems, err := pending.Wait()
//
// Edit it and undo the edit:
//
//	info, _ := doc.ResolveString("/info")
//	cmd, _ := command.SetProperty(info, "title", "Pet Store")
//	_ = cmd.Execute(doc)
//	_ = cmd.Undo(doc)
package oasmodel
