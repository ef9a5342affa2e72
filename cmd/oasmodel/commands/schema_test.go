package commands

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasmodel/internal/testutil"
	"github.com/erraggy/oasmodel/oaserrors"
	"github.com/erraggy/oasmodel/parser"
)

func TestHandleSchema(t *testing.T) {
	out, errOut := captureStreams(t, testutil.SimpleOAS3)

	require.NoError(t, HandleSchema([]string{"--name", "Pet", "--example", `{"id": 1, "name": "Rex"}`, "-"}))
	assert.Contains(t, errOut.String(), "Added #/components/schemas/Pet")

	result, err := parser.Parse(out.Bytes())
	require.NoError(t, err)
	pet, err := result.Document.ResolveString(`/components/schemas["Pet"]`)
	require.NoError(t, err)
	assert.Equal(t, "Root Type for Pet", pet.Text("title"))
	assert.Equal(t, "object", pet.Text("type"))
}

func TestHandleSchema_ExampleFile(t *testing.T) {
	captureStreams(t, "")
	doc := testutil.WriteTemp(t, "swagger.json", testutil.SimpleOAS2)
	example := testutil.WriteTemp(t, "order.yaml", "id: 7\nplaced: 2024-05-01T10:00:00Z\n")
	target := doc + ".out"

	require.NoError(t, HandleSchema([]string{"--name", "Order", "--example-file", example, "-o", target, doc}))
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	result, err := parser.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, parser.SourceFormatJSON, result.SourceFormat)

	placed, err := result.Document.ResolveString(`/definitions["Order"]/properties["placed"]`)
	require.NoError(t, err)
	assert.Equal(t, "date-time", placed.Text("format"))
}

func TestHandleSchema_Errors(t *testing.T) {
	captureStreams(t, testutil.DetailedOAS3)
	path := testutil.WriteTemp(t, "api.yaml", testutil.DetailedOAS3)

	assert.NoError(t, HandleSchema([]string{"--help"}))
	assert.Error(t, HandleSchema([]string{"--example", "{}", path}), "missing name")
	assert.Error(t, HandleSchema([]string{"--name", "X", path}), "missing example")
	assert.Error(t, HandleSchema([]string{"--name", "X", "--example", "{}", "--example-file", "e.json", path}))
	assert.Error(t, HandleSchema([]string{"--name", "X", "--example-file", "/nonexistent/e.json", path}))

	err := HandleSchema([]string{"--name", "Pet", "--example", "{}", path})
	assert.ErrorIs(t, err, oaserrors.ErrStructural)
}
