// Package walker routes operations to handlers by node kind, dialect and
// major version, and traverses document trees.
//
// # Dispatch
//
// A [Table] maps a [Key] of (kind, dialect, major version) to a handler of
// any type. Lookup falls back from the exact triple to the kind in any
// major version of the dialect, then to the kind in every dialect, so a new
// dialect or version adds table entries rather than new traversal code:
//
//	t := walker.NewTable[walker.Visitor]("lint").
//	    On(model.KindSchema, checkSchema).
//	    On(model.KindServer, checkOAS3Server, model.OpenAPI3)
//
// The reader, writer and validator all specialize through tables.
//
// # Traversal
//
// [Walk] visits nodes depth-first in pre-order, properties in order and
// then entries, so ancestors are always seen before descendants. Visitors
// return an [Action]:
//
//   - [Continue]: continue traversing children and siblings normally
//   - [SkipChildren]: skip all children of the current node, continue with siblings
//   - [Stop]: stop the entire walk immediately
//
// Nodes without a route are passed through, or fail the walk with an error
// matching oaserrors.ErrUnsupportedNodeKind under [WithStrict]. Extension
// properties are raw values and are never visited.
package walker
