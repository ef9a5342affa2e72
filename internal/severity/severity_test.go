package severity

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		name     string
		severity Severity
		expected string
	}{
		{"high level", SeverityHigh, "high"},
		{"medium level", SeverityMedium, "medium"},
		{"low level", SeverityLow, "low"},
		{"ignore level", SeverityIgnore, "ignore"},

		// Edge cases: Invalid severity values
		{"unknown negative", Severity(-1), "unknown"},
		{"unknown large value", Severity(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.severity.String()
			assert.Equal(t, tt.expected, result, "Severity(%d).String() = %q, want %q", tt.severity, result, tt.expected)
		})
	}
}

func TestParse(t *testing.T) {
	for _, sev := range []Severity{SeverityHigh, SeverityMedium, SeverityLow, SeverityIgnore} {
		got, err := Parse(sev.String())
		require.NoError(t, err)
		assert.Equal(t, sev, got)
		assert.Equal(t, strings.ToLower(sev.String()), sev.String())
	}

	_, err := Parse("critical")
	assert.Error(t, err)
}

func TestSeverityJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		S Severity `json:"s"`
	}{SeverityLow})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"low"}`, string(data))

	var out struct {
		S Severity `json:"s"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"s":"medium"}`), &out))
	assert.Equal(t, SeverityMedium, out.S)

	assert.Error(t, json.Unmarshal([]byte(`{"s":"loud"}`), &out))
}
