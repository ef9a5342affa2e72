package commands

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasmodel/internal/testutil"
	"github.com/erraggy/oasmodel/parser"
	"github.com/erraggy/oasmodel/value"
)

func TestHandleRoundtrip_ConvertsFormat(t *testing.T) {
	out, _ := captureStreams(t, testutil.SimpleOAS3)

	require.NoError(t, HandleRoundtrip([]string{"--format", "yaml", "-"}))
	assert.True(t, strings.HasPrefix(out.String(), "openapi: 3.0.2\ninfo:\n"))
	assert.Contains(t, out.String(), "title: Very Simple API")
	assert.Contains(t, out.String(), "version: 1.0.0")
}

func TestHandleRoundtrip_Output(t *testing.T) {
	captureStreams(t, "")
	in := testutil.WriteTemp(t, "api.yaml", testutil.DetailedAsyncAPI2)
	target := in + ".json"

	require.NoError(t, HandleRoundtrip([]string{"--format", "json", "-o", target, in}))
	data, err := os.ReadFile(target)
	require.NoError(t, err)

	written, err := parser.ParseText(data)
	require.NoError(t, err)
	original, err := parser.ParseText([]byte(testutil.DetailedAsyncAPI2))
	require.NoError(t, err)
	assert.True(t, value.Equal(original, written))
}

func TestHandleRoundtrip_Check(t *testing.T) {
	t.Run("faithful", func(t *testing.T) {
		out, errOut := captureStreams(t, testutil.SimpleOAS2)
		require.NoError(t, HandleRoundtrip([]string{"--check", "-"}))
		assert.Empty(t, out.String())
		assert.Contains(t, errOut.String(), "round trip is faithful")
	})

	t.Run("reordered extension", func(t *testing.T) {
		out, _ := captureStreams(t, "openapi: 3.0.3\nx-owner: team-a\ninfo:\n  title: T\n  version: '1'\n")
		err := HandleRoundtrip([]string{"--check", "-"})
		assert.ErrorIs(t, err, ErrProblemsFound)
		assert.Contains(t, out.String(), "- x-owner: team-a\n")
		assert.Contains(t, out.String(), "+ x-owner: team-a\n")
		assert.Contains(t, out.String(), "  openapi: 3.0.3\n")
	})
}

func TestHandleRoundtrip_Errors(t *testing.T) {
	captureStreams(t, "title: nothing\n")
	assert.NoError(t, HandleRoundtrip([]string{"--help"}))
	assert.Error(t, HandleRoundtrip([]string{}))
	assert.Error(t, HandleRoundtrip([]string{"--format", "xml", "-"}))
	assert.Error(t, HandleRoundtrip([]string{"-"}))
}

func TestLineDiff(t *testing.T) {
	assert.Empty(t, lineDiff("a\nb\n", "a\nb\n", palette{}))
	assert.Equal(t, "  a\n- b\n+ c\n", lineDiff("a\nb\n", "a\nc\n", palette{}))
}
