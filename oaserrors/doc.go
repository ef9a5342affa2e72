// Package oaserrors provides structured error types for the oasmodel library.
//
// Import path: github.com/erraggy/oasmodel/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish structural failures (which are always surfaced)
// from unsupported operations (which tooling may choose to skip).
//
// # Error Types
//
//   - [StructuralError]: malformed or unresolvable node paths, ownership violations
//   - [UnsupportedError]: dispatch misses, cross-type clones, unknown document types
//   - [CommandError]: command lifecycle misuse
//   - [ParseError]: YAML/JSON parsing failures
//   - [ConfigError]: Invalid configuration or input options
//
// Validation findings are never errors; they are returned as data by the
// validator package.
//
// # Sentinel Errors
//
//   - [ErrStructural]: Matches any [StructuralError]
//   - [ErrInvalidState], [ErrNodeNotFound], [ErrMalformedPath]: match by Reason
//   - [ErrUnsupported]: Matches any [UnsupportedError]
//   - [ErrUnsupportedNodeKind], [ErrUnsupportedConversion], [ErrUnrecognizedDocumentType]: match by Reason
//   - [ErrCommandInvariant]: Matches any [CommandError]
//   - [ErrParse], [ErrConfig]
//
// # Usage Examples
//
//	var unsupported *oaserrors.UnsupportedError
//	if errors.As(err, &unsupported) {
//	    fmt.Printf("no handler for %s\n", unsupported.Kind)
//	}
package oaserrors
