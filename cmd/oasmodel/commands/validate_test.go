package commands

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasmodel/internal/testutil"
	"github.com/erraggy/oasmodel/validator"
)

const invalidVersionAPI = `openapi: 3.0.9
info:
  title: Very Simple API
  version: 1.0.0
`

func TestSetupValidateFlags(t *testing.T) {
	fs, flags := SetupValidateFlags()

	t.Run("default values", func(t *testing.T) {
		assert.False(t, flags.Quiet)
		assert.False(t, flags.Abort)
		assert.Equal(t, FormatText, flags.Format)
		assert.Empty(t, flags.RulesFile)
		assert.Empty(t, flags.Severities)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"-q", "--format", "json", "--severity", "R-004=low", "--severity", "R-003=ignore", "--rules", "r.yaml", "test.yaml"}
		require.NoError(t, fs.Parse(args))

		assert.True(t, flags.Quiet)
		assert.Equal(t, "json", flags.Format)
		assert.Equal(t, "r.yaml", flags.RulesFile)
		assert.Equal(t, validator.Severities{"R-004": validator.SeverityLow, "R-003": validator.SeverityIgnore}, flags.Severities)
		assert.Equal(t, "test.yaml", fs.Arg(0))
	})

	t.Run("bad severity", func(t *testing.T) {
		fs2, _ := SetupValidateFlags()
		fs2.SetOutput(io.Discard)
		assert.Error(t, fs2.Parse([]string{"--severity", "R-004"}))
		assert.Error(t, fs2.Parse([]string{"--severity", "R-004=fatal"}))
	})
}

func TestHandleValidate_Args(t *testing.T) {
	captureStreams(t, "")
	assert.Error(t, HandleValidate([]string{}))
	assert.NoError(t, HandleValidate([]string{"--help"}))
	assert.Error(t, HandleValidate([]string{"--format", "invalid", "test.yaml"}))
	assert.Error(t, HandleValidate([]string{"/nonexistent/api.yaml"}))
}

func TestHandleValidate_Valid(t *testing.T) {
	_, errOut := captureStreams(t, "")
	path := testutil.WriteTemp(t, "api.yaml", testutil.DetailedOAS3)

	require.NoError(t, HandleValidate([]string{"--no-color", path}))
	assert.Contains(t, errOut.String(), "Document Type: openapi3")
	assert.Contains(t, errOut.String(), "✓ Validation passed")
}

func TestHandleValidate_Problems(t *testing.T) {
	_, errOut := captureStreams(t, invalidVersionAPI)

	err := HandleValidate([]string{"-"})
	assert.ErrorIs(t, err, ErrProblemsFound)
	assert.Contains(t, errOut.String(), "Specification: <stdin>")
	assert.Contains(t, errOut.String(), `[R-003] high /: Unsupported specification version "3.0.9"`)
	assert.Contains(t, errOut.String(), "✗ Validation failed: 1 problem(s)")
}

func TestHandleValidate_Quiet(t *testing.T) {
	_, errOut := captureStreams(t, invalidVersionAPI)

	assert.ErrorIs(t, HandleValidate([]string{"-q", "-"}), ErrProblemsFound)
	assert.NotContains(t, errOut.String(), "Document Validator")
	assert.Contains(t, errOut.String(), "Validation failed")
}

func TestHandleValidate_JSON(t *testing.T) {
	out, _ := captureStreams(t, invalidVersionAPI)

	assert.ErrorIs(t, HandleValidate([]string{"--format", "json", "-"}), ErrProblemsFound)

	var report struct {
		DocumentType string `json:"documentType"`
		Valid        bool   `json:"valid"`
		Problems     []struct {
			ErrorCode string `json:"errorCode"`
			NodePath  string `json:"nodePath"`
			Severity  string `json:"severity"`
		} `json:"problems"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, "openapi3", report.DocumentType)
	assert.False(t, report.Valid)
	require.Len(t, report.Problems, 1)
	assert.Equal(t, "R-003", report.Problems[0].ErrorCode)
	assert.Equal(t, "/", report.Problems[0].NodePath)
	assert.Equal(t, "high", report.Problems[0].Severity)
}

func TestHandleValidate_SeverityOverride(t *testing.T) {
	captureStreams(t, invalidVersionAPI)
	assert.NoError(t, HandleValidate([]string{"--severity", "R-003=ignore", "-"}))
}

func TestHandleValidate_RulesFile(t *testing.T) {
	_, errOut := captureStreams(t, testutil.SimpleOAS3)
	rules := testutil.WriteTemp(t, "rules.yaml", `rules:
  - code: INFO-900
    name: Missing Description
    severity: low
    kinds: [info]
    assert: '"description" in node'
    messageTemplate: API is missing a description.
`)

	assert.ErrorIs(t, HandleValidate([]string{"--rules", rules, "-"}), ErrProblemsFound)
	assert.Contains(t, errOut.String(), "[INFO-900] low /info: API is missing a description.")

	assert.Error(t, HandleValidate([]string{"--rules", "/nonexistent/rules.yaml", "-"}))
}
