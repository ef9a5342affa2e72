// Package parser turns JSON or YAML descriptions into model documents and
// back.
//
// Parsing happens in two steps. [ParseText] decodes text into a generic
// value (see package value) keeping mapping order. [Detect] inspects the
// "openapi", "swagger" or "asyncapi" marker to pick the document type, and
// a [Reader] builds the node tree, dispatching each node kind through a
// walker.Table. The [Writer] does the reverse, and [MarshalJSON] and
// [MarshalYAML] produce text.
//
// # Quick Start
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("openapi.yaml"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Type(), result.Version)
//
// # Round trip
//
// Reading then writing a document yields a value equal to the input:
// declared properties keep the input's order, unknown and "x-" properties
// are kept in each node's extension bag, and sequences keep their order.
package parser
