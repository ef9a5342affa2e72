// Package rules holds the built-in validation rules and the expression-rule
// loader.
//
// [Builtin] returns the standard set:
//
//	R-001    document has no info object
//	R-002    info has no title
//	R-003    declared version is not a published one
//	R-004    info has no version
//	INF-003  contact email is malformed
//	AAI-001  AsyncAPI id is not an RFC 3986 absolute URI
//	REF-001  local $ref does not resolve
//
// Further rules can be written in Go against validator.Rule, or declared as
// expr-lang assertions with [Expr] and loaded from YAML with [LoadFile].
package rules
