// Package severity provides severity level constants and utilities
// for validation problems reported by the validator package.
//
// The levels, from most to least severe:
//   - SeverityHigh: the document violates its declared specification
//   - SeverityMedium: likely mistakes that tools can still work around
//   - SeverityLow: style and best-practice findings
//   - SeverityIgnore: the rule is disabled and reports nothing
package severity

import "fmt"

// Severity indicates the severity level of a validation problem.
type Severity int

const (
	// SeverityHigh indicates a spec violation that makes the document invalid.
	SeverityHigh Severity = iota

	// SeverityMedium indicates a probable mistake that does not block processing.
	SeverityMedium

	// SeverityLow indicates a best-practice or style finding.
	SeverityLow

	// SeverityIgnore disables reporting for a rule.
	SeverityIgnore
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	case SeverityLow:
		return "low"
	case SeverityIgnore:
		return "ignore"
	default:
		return "unknown"
	}
}

// Parse converts a severity name into a Severity.
func Parse(s string) (Severity, error) {
	switch s {
	case "high":
		return SeverityHigh, nil
	case "medium":
		return SeverityMedium, nil
	case "low":
		return SeverityLow, nil
	case "ignore":
		return SeverityIgnore, nil
	}
	return SeverityHigh, fmt.Errorf("severity: unknown level %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
