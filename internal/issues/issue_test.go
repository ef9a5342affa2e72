package issues

import (
	"testing"

	"github.com/erraggy/oasmodel/internal/severity"
	"github.com/stretchr/testify/assert"
)

func TestProblemString(t *testing.T) {
	tests := []struct {
		name        string
		problem     Problem
		contains    []string
		notContains []string
	}{
		{
			name: "high severity with basic fields",
			problem: Problem{
				ErrorCode: "R-003",
				NodePath:  "/",
				Message:   "Invalid version",
				Severity:  severity.SeverityHigh,
			},
			contains:    []string{"✗", "[R-003]", "/", "Invalid version"},
			notContains: []string{"Context:"},
		},
		{
			name: "medium severity",
			problem: Problem{
				ErrorCode: "INF-003",
				NodePath:  "/info/contact",
				Message:   "Invalid email",
				Severity:  severity.SeverityMedium,
			},
			contains: []string{"⚠", "/info/contact"},
		},
		{
			name: "low severity with context",
			problem: Problem{
				ErrorCode: "AAI-001",
				NodePath:  "/",
				Message:   "Invalid id",
				Severity:  severity.SeverityLow,
				Context:   map[string]string{"property": "id", "value": "x"},
			},
			contains: []string{"ℹ", "Context: property=id, value=x"},
		},
		{
			name:     "unknown severity",
			problem:  Problem{Severity: severity.Severity(42)},
			contains: []string{"?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.problem.String()
			for _, s := range tt.contains {
				assert.Contains(t, result, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, result, s)
			}
		})
	}
}

func TestProblemProperty(t *testing.T) {
	p := Problem{Context: map[string]string{"property": "id"}}
	assert.Equal(t, "id", p.Property())
	assert.Empty(t, Problem{}.Property())
}
