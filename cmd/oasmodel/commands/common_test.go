package commands

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasmodel/internal/severity"
	"github.com/erraggy/oasmodel/internal/testutil"
	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/parser"
)

// captureStreams redirects the command streams for the duration of the test
// and returns the stdout and stderr buffers.
func captureStreams(t *testing.T, input string) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	savedIn, savedOut, savedErr := stdin, stdout, stderr
	stdin, stdout, stderr = strings.NewReader(input), &out, &errOut
	t.Cleanup(func() { stdin, stdout, stderr = savedIn, savedOut, savedErr })
	return &out, &errOut
}

func TestValidateOutputFormat(t *testing.T) {
	for _, f := range []string{FormatText, FormatJSON, FormatYAML} {
		assert.NoError(t, ValidateOutputFormat(f))
	}
	assert.Error(t, ValidateOutputFormat("xml"))
	assert.Error(t, ValidateOutputFormat(FormatText, FormatJSON, FormatYAML))
	assert.NoError(t, ValidateOutputFormat(FormatJSON, FormatJSON, FormatYAML))
}

func TestOutputStructured(t *testing.T) {
	out, _ := captureStreams(t, "")
	data := map[string]any{"valid": true}

	require.NoError(t, OutputStructured(data, FormatJSON))
	assert.Equal(t, "{\n  \"valid\": true\n}\n", out.String())

	out.Reset()
	require.NoError(t, OutputStructured(data, FormatYAML))
	assert.Equal(t, "valid: true\n", out.String())

	assert.Error(t, OutputStructured(data, FormatText))
}

func TestFormatSpecPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatSpecPath(StdinFilePath))
	assert.Equal(t, "api.yaml", FormatSpecPath("api.yaml"))
}

func TestParseInput(t *testing.T) {
	captureStreams(t, testutil.SimpleAsyncAPI2)

	result, err := ParseInput(StdinFilePath, parser.NopLogger{})
	require.NoError(t, err)
	assert.Equal(t, model.AsyncAPI2, result.Type())
	assert.Equal(t, "<stdin>", result.SourcePath)

	path := testutil.WriteTemp(t, "api.yaml", testutil.DetailedOAS2)
	result, err = ParseInput(path, NewLogger(false))
	require.NoError(t, err)
	assert.Equal(t, model.OpenAPI2, result.Type())
	assert.Equal(t, path, result.SourcePath)
}

func TestNewLogger(t *testing.T) {
	_, errOut := captureStreams(t, "")
	assert.IsType(t, parser.NopLogger{}, NewLogger(false))

	NewLogger(true).Debug("parsed document", "type", "openapi3")
	assert.Contains(t, errOut.String(), "level=DEBUG")
	assert.Contains(t, errOut.String(), "type=openapi3")
}

func TestPalette(t *testing.T) {
	plain := newPalette(io.Discard, false)
	assert.False(t, plain.enabled)
	assert.Equal(t, "high", plain.severity(severity.SeverityHigh))

	colored := palette{enabled: true}
	got := colored.paint("x", color.FgRed)
	assert.NotEqual(t, "x", got)
	assert.Contains(t, got, "x")
}
