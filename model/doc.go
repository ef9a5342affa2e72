// Package model holds the typed document tree shared by every dialect.
//
// A Document owns a root Node. Each Node has a Kind (its role, such as
// "schema" or "response"), the DocumentType of its document, an ordered
// list of properties and an extension bag. A property holds a generic
// value (see package value), a single child node, a List of children or a
// Registry of keyed children. Kinds whose keys are user-chosen, such as the
// paths of an OpenAPI document, keep those children in their own entries
// registry.
//
// # Ownership
//
// Every non-root node has exactly one parent. Attaching a node that already
// has a parent, attaching a node beneath itself, or attaching a node of a
// different document type fails. Detach removes a node and returns the
// Position it held so it can be re-attached exactly there; the node stays a
// valid standalone tree. Clone produces an independent standalone copy.
//
// # Paths
//
// Node.Path and Document.Resolve convert between nodes and nodepath.Path
// values, so that for every rooted node n:
//
//	p, _ := n.Path()
//	m, _ := n.Document().Resolve(p) // m == n
package model
