package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasmodel/internal/testutil"
)

const invalidVersionAPI = `openapi: 3.0.9
info:
  title: Very Simple API
  contact:
    email: not-an-email
`

func TestDetectTool(t *testing.T) {
	_, output, err := handleDetect(context.Background(), &mcp.CallToolRequest{}, detectInput{
		Spec: specInput{Content: testutil.SimpleOAS3},
	})
	require.NoError(t, err)
	assert.Equal(t, "openapi3", output.DocumentType)
	assert.Equal(t, "3.0.2", output.Version)
	assert.Equal(t, "json", output.Format)
	assert.Equal(t, "Very Simple API", output.Title)
	assert.Equal(t, "1.0.0", output.APIVersion)
	assert.Equal(t, 2, output.NodeCount)
	assert.Equal(t, []kindCount{{Kind: "document", Count: 1}, {Kind: "info", Count: 1}}, output.Kinds)
}

func TestDetectTool_AllTypes(t *testing.T) {
	for want, text := range map[string]string{
		"openapi2":  testutil.DetailedOAS2,
		"openapi3":  testutil.DetailedOAS3,
		"asyncapi2": testutil.DetailedAsyncAPI2,
	} {
		t.Run(want, func(t *testing.T) {
			_, output, err := handleDetect(context.Background(), &mcp.CallToolRequest{}, detectInput{
				Spec: specInput{Content: text},
			})
			require.NoError(t, err)
			assert.Equal(t, want, output.DocumentType)
			assert.Equal(t, "yaml", output.Format)
			require.NotEmpty(t, output.Kinds)
			assert.Greater(t, output.NodeCount, len(output.Kinds))
			for i := 1; i < len(output.Kinds); i++ {
				assert.GreaterOrEqual(t, output.Kinds[i-1].Count, output.Kinds[i].Count)
			}
		})
	}
}

func TestDetectTool_Error(t *testing.T) {
	result, _, err := handleDetect(context.Background(), &mcp.CallToolRequest{}, detectInput{
		Spec: specInput{Content: `{"title": "nothing"}`},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestValidateTool_ValidDocument(t *testing.T) {
	_, output, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, validateInput{
		Spec: specInput{Content: testutil.DetailedOAS3},
	})
	require.NoError(t, err)
	assert.True(t, output.Valid)
	assert.Equal(t, "openapi3", output.DocumentType)
	assert.Equal(t, "3.1.0", output.Version)
	assert.Zero(t, output.ProblemCount)
	assert.Empty(t, output.Problems)
}

func TestValidateTool_Problems(t *testing.T) {
	_, output, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, validateInput{
		Spec: specInput{Content: invalidVersionAPI},
	})
	require.NoError(t, err)
	assert.False(t, output.Valid)
	require.Equal(t, 3, output.ProblemCount)
	assert.Equal(t, 3, output.Returned)
	assert.Equal(t, validateProblem{
		Code:     "R-003",
		Path:     "/",
		Severity: "high",
		Message:  `Unsupported specification version "3.0.9" (latest known is 3.2.0).`,
	}, output.Problems[0])
	assert.Equal(t, "R-004", output.Problems[1].Code)
	assert.Equal(t, "/info", output.Problems[1].Path)
	assert.Equal(t, "INF-003", output.Problems[2].Code)
	assert.Equal(t, "/info/contact", output.Problems[2].Path)
	assert.Equal(t, "medium", output.Problems[2].Severity)
}

func TestValidateTool_SeverityOverrides(t *testing.T) {
	_, output, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, validateInput{
		Spec:       specInput{Content: invalidVersionAPI},
		Severities: map[string]string{"R-003": "ignore", "INF-003": "low"},
	})
	require.NoError(t, err)
	require.Len(t, output.Problems, 2)
	assert.Equal(t, "R-004", output.Problems[0].Code)
	assert.Equal(t, "low", output.Problems[1].Severity)

	result, _, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, validateInput{
		Spec:       specInput{Content: invalidVersionAPI},
		Severities: map[string]string{"R-003": "fatal"},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestValidateTool_Pagination(t *testing.T) {
	_, output, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, validateInput{
		Spec:   specInput{Content: invalidVersionAPI},
		Offset: 1,
		Limit:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, output.ProblemCount)
	assert.Equal(t, 1, output.Returned)
	assert.Equal(t, "R-004", output.Problems[0].Code)
}

func TestValidateTool_RulesFile(t *testing.T) {
	path := testutil.WriteTemp(t, "rules.yaml", `severities:
  R-003: ignore
rules:
  - code: INFO-900
    name: Missing Description
    severity: low
    kinds: [info]
    property: description
    assert: '"description" in node'
    messageTemplate: API is missing a description.
`)
	saved := cfg.RulesFile
	cfg.RulesFile = path
	t.Cleanup(func() { cfg.RulesFile = saved })

	_, output, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, validateInput{
		Spec: specInput{Content: testutil.SimpleOAS3},
	})
	require.NoError(t, err)
	require.Len(t, output.Problems, 1)
	assert.Equal(t, validateProblem{
		Code:     "INFO-900",
		Path:     "/info",
		Severity: "low",
		Message:  "API is missing a description.",
	}, output.Problems[0])
}

func TestValidateTool_LeavesCachedDocumentClean(t *testing.T) {
	documents.reset()
	input := validateInput{Spec: specInput{Content: invalidVersionAPI}}
	_, _, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	cached, err := input.Spec.resolve()
	require.NoError(t, err)
	assert.Empty(t, cached.Document.ProblemCodes())
}

func TestResolvePathTool(t *testing.T) {
	_, output, err := handleResolvePath(context.Background(), &mcp.CallToolRequest{}, resolvePathInput{
		Spec: specInput{Content: testutil.DetailedOAS3},
		Path: `/components/schemas["Pet"]`,
	})
	require.NoError(t, err)
	assert.Equal(t, `/components/schemas["Pet"]`, output.Path)
	assert.Equal(t, "schema", output.Kind)
	assert.Equal(t, "Pet", output.Name)
	assert.Contains(t, output.Properties, "required")
	assert.Contains(t, output.Content, `"x-go-type": "model.Pet"`)

	_, output, err = handleResolvePath(context.Background(), &mcp.CallToolRequest{}, resolvePathInput{
		Spec: specInput{Content: testutil.DetailedOAS3},
		Path: "/info",
		YAML: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "info", output.Kind)
	assert.Contains(t, output.Content, "title: Pet Store")
}

func TestResolvePathTool_Errors(t *testing.T) {
	for name, path := range map[string]string{
		"missing node":   `/components/schemas["Nope"]`,
		"malformed path": "components",
	} {
		t.Run(name, func(t *testing.T) {
			result, _, err := handleResolvePath(context.Background(), &mcp.CallToolRequest{}, resolvePathInput{
				Spec: specInput{Content: testutil.DetailedOAS3},
				Path: path,
			})
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
		})
	}
}

func TestSchemaFromExampleTool(t *testing.T) {
	documents.reset()
	input := schemaFromExampleInput{
		Spec:            specInput{Content: testutil.SimpleOAS3},
		Name:            "Pet",
		Example:         `{"id": 1, "born": "2020-01-02"}`,
		IncludeDocument: true,
	}
	_, output, err := handleSchemaFromExample(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Equal(t, "#/components/schemas/Pet", output.Ref)
	assert.Equal(t, `/components/schemas["Pet"]`, output.Path)
	assert.Contains(t, output.Schema, `"title": "Root Type for Pet"`)
	assert.Contains(t, output.Schema, `"format": "date"`)
	assert.Contains(t, output.Document, `"components"`)

	// The cached document is not edited.
	cached, err := input.Spec.resolve()
	require.NoError(t, err)
	assert.Nil(t, cached.Document.Root().Child("components"))
}

func TestSchemaFromExampleTool_OpenAPI2(t *testing.T) {
	_, output, err := handleSchemaFromExample(context.Background(), &mcp.CallToolRequest{}, schemaFromExampleInput{
		Spec:    specInput{Content: testutil.SimpleOAS2},
		Name:    "Pet",
		Example: "name: Rex",
	})
	require.NoError(t, err)
	assert.Equal(t, "#/definitions/Pet", output.Ref)
	assert.Equal(t, `/definitions["Pet"]`, output.Path)
	assert.Empty(t, output.Document)
}

func TestSchemaFromExampleTool_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input schemaFromExampleInput
	}{
		{"missing name", schemaFromExampleInput{Spec: specInput{Content: testutil.SimpleOAS3}, Example: "{}"}},
		{"existing name", schemaFromExampleInput{Spec: specInput{Content: testutil.DetailedOAS3}, Name: "Pet", Example: "{}"}},
		{"bad example", schemaFromExampleInput{Spec: specInput{Content: testutil.SimpleOAS3}, Name: "Pet", Example: "{"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := handleSchemaFromExample(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
		})
	}
}
