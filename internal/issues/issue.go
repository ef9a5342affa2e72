// Package issues provides the validation problem record shared by the model
// and validator packages.
package issues

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/erraggy/oasmodel/internal/severity"
)

// Problem represents a single rule violation found during validation.
// Problems are data, never errors.
type Problem struct {
	// ErrorCode identifies the rule that reported the problem (e.g., "R-003")
	ErrorCode string `json:"errorCode" yaml:"errorCode"`
	// NodePath is the path of the node the problem was reported on
	NodePath string `json:"nodePath" yaml:"nodePath"`
	// Severity indicates the severity level of the problem
	Severity severity.Severity `json:"severity" yaml:"severity"`
	// Message is a human-readable description of the problem
	Message string `json:"message" yaml:"message"`
	// Context carries rule-specific detail such as the offending property
	Context map[string]string `json:"context,omitempty" yaml:"context,omitempty"`
}

// String returns a formatted string representation of the problem.
// Uses different symbols based on severity level:
// - "✗" for High severity
// - "⚠" for Medium severity
// - "ℹ" for Low severity
func (p Problem) String() string {
	var symbol string
	switch p.Severity {
	case severity.SeverityHigh:
		symbol = "✗"
	case severity.SeverityMedium:
		symbol = "⚠"
	case severity.SeverityLow:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	result := fmt.Sprintf("%s [%s] %s: %s", symbol, p.ErrorCode, p.NodePath, p.Message)
	if len(p.Context) > 0 {
		keys := slices.Sorted(maps.Keys(p.Context))
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+p.Context[k])
		}
		result += fmt.Sprintf("\n    Context: %s", strings.Join(parts, ", "))
	}
	return result
}

// Property returns the "property" context entry, the field within the node
// that the problem concerns. It is empty when the problem concerns the node itself.
func (p Problem) Property() string {
	return p.Context["property"]
}
