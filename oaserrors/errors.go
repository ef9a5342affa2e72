// Package oaserrors provides structured error types for oasmodel.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - StructuralError: malformed or unresolvable node paths, broken parent/child cardinality
//   - UnsupportedError: no handler for a (kind, dialect, version), incompatible document types
//   - CommandError: command lifecycle misuse (double execute, undo before execute)
//   - ParseError: YAML/JSON parsing failures
//   - ConfigError: Invalid configuration or input options
//
// # Usage with errors.Is
//
//	node, err := doc.Resolve(path)
//	if errors.Is(err, oaserrors.ErrNodeNotFound) {
//	    // path no longer points at anything
//	}
package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrStructural indicates a structural failure in the node tree or a node path.
	ErrStructural = errors.New("structural error")

	// ErrInvalidState indicates a node is not in a state that permits the operation,
	// for example computing the path of a node that is not rooted in a document.
	ErrInvalidState = errors.New("invalid state")

	// ErrNodeNotFound indicates a node path did not resolve to a node.
	ErrNodeNotFound = errors.New("node not found")

	// ErrMalformedPath indicates a node path string could not be parsed.
	ErrMalformedPath = errors.New("malformed node path")

	// ErrUnsupported indicates no handler or conversion exists for the request.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrUnsupportedNodeKind indicates dispatch found no handler for a node.
	ErrUnsupportedNodeKind = errors.New("unsupported node kind")

	// ErrUnsupportedConversion indicates a node cannot move between document types.
	ErrUnsupportedConversion = errors.New("unsupported conversion")

	// ErrUnrecognizedDocumentType indicates document type detection failed.
	ErrUnrecognizedDocumentType = errors.New("unrecognized document type")

	// ErrCommandInvariant indicates a command was used outside its lifecycle.
	ErrCommandInvariant = errors.New("command invariant violation")

	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// StructuralReason refines a StructuralError.
type StructuralReason int

const (
	// ReasonCardinality is a parent/child ownership violation.
	ReasonCardinality StructuralReason = iota
	// ReasonInvalidState is an operation on a node in the wrong state.
	ReasonInvalidState
	// ReasonNodeNotFound is a path that does not resolve.
	ReasonNodeNotFound
	// ReasonMalformedPath is a path string that does not parse.
	ReasonMalformedPath
)

// StructuralError represents a broken tree invariant or an unusable node path.
// Structural errors are always surfaced and never silently recovered.
type StructuralError struct {
	// Path is the node path involved, if known
	Path string
	// Reason classifies the failure
	Reason StructuralReason
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *StructuralError) Error() string {
	var msg string
	switch e.Reason {
	case ReasonInvalidState:
		msg = "invalid state"
	case ReasonNodeNotFound:
		msg = "node not found"
	case ReasonMalformedPath:
		msg = "malformed node path"
	default:
		msg = "structural error"
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *StructuralError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrStructural, and the sentinel for the specific Reason.
func (e *StructuralError) Is(target error) bool {
	switch target {
	case ErrStructural:
		return true
	case ErrInvalidState:
		return e.Reason == ReasonInvalidState
	case ErrNodeNotFound:
		return e.Reason == ReasonNodeNotFound
	case ErrMalformedPath:
		return e.Reason == ReasonMalformedPath
	}
	return false
}

// UnsupportedReason refines an UnsupportedError.
type UnsupportedReason int

const (
	// ReasonNodeKind means no handler is registered for the node.
	ReasonNodeKind UnsupportedReason = iota
	// ReasonConversion means the source and target document types differ.
	ReasonConversion
	// ReasonDocumentType means the document type could not be detected.
	ReasonDocumentType
)

// UnsupportedError represents a request the engine has no route for.
// It is distinct from StructuralError so tooling can decide to skip or fail.
type UnsupportedError struct {
	// Operation names the operation that was attempted (e.g., "read", "validate")
	Operation string
	// Kind is the node kind involved, if any
	Kind string
	// DocumentType is the document type involved (e.g., "openapi3"), if any
	DocumentType string
	// Target is the target document type for conversions
	Target string
	// Reason classifies the failure
	Reason UnsupportedReason
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *UnsupportedError) Error() string {
	var msg string
	switch e.Reason {
	case ReasonConversion:
		msg = "unsupported conversion"
		if e.DocumentType != "" && e.Target != "" {
			msg += fmt.Sprintf(" (%s -> %s)", e.DocumentType, e.Target)
		}
	case ReasonDocumentType:
		msg = "unrecognized document type"
	default:
		msg = "unsupported node kind"
		if e.Kind != "" {
			msg += " " + e.Kind
		}
		if e.DocumentType != "" {
			msg += " for " + e.DocumentType
		}
	}
	if e.Operation != "" {
		msg = e.Operation + ": " + msg
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *UnsupportedError) Is(target error) bool {
	switch target {
	case ErrUnsupported:
		return true
	case ErrUnsupportedNodeKind:
		return e.Reason == ReasonNodeKind
	case ErrUnsupportedConversion:
		return e.Reason == ReasonConversion
	case ErrUnrecognizedDocumentType:
		return e.Reason == ReasonDocumentType
	}
	return false
}

// CommandError represents a programmer error in the command lifecycle.
// It is fatal for the command instance and never retried.
type CommandError struct {
	// Command is the command type (e.g., "ReplaceNode")
	Command string
	// Message describes the violation
	Message string
}

// Error returns a human-readable error message.
func (e *CommandError) Error() string {
	msg := "command invariant violation"
	if e.Command != "" {
		msg += " in " + e.Command
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *CommandError) Is(target error) bool {
	return target == ErrCommandInvariant
}

// ParseError represents a failure to parse a document's text.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
