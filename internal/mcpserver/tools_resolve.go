package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasmodel/parser"
)

type resolvePathInput struct {
	Spec specInput `json:"spec"             jsonschema:"The document to navigate"`
	Path string    `json:"path"             jsonschema:"Node path, e.g. /info or /components/schemas[\"Pet\"]"`
	YAML bool      `json:"yaml,omitempty"   jsonschema:"Render the node as YAML instead of JSON"`
}

type resolvePathOutput struct {
	Path       string   `json:"path"`
	Kind       string   `json:"kind"`
	Name       string   `json:"name,omitempty"`
	Properties []string `json:"properties,omitempty"`
	Content    string   `json:"content"`
}

func handleResolvePath(_ context.Context, _ *mcp.CallToolRequest, input resolvePathInput) (*mcp.CallToolResult, resolvePathOutput, error) {
	result, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), resolvePathOutput{}, nil
	}
	n, err := result.Document.ResolveString(input.Path)
	if err != nil {
		return errResult(err), resolvePathOutput{}, nil
	}
	p, err := n.Path()
	if err != nil {
		return errResult(err), resolvePathOutput{}, nil
	}

	v, err := parser.NewWriter().Write(n)
	if err != nil {
		return errResult(err), resolvePathOutput{}, nil
	}
	format := parser.SourceFormatJSON
	if input.YAML {
		format = parser.SourceFormatYAML
	}
	text, err := parser.MarshalText(v, format)
	if err != nil {
		return errResult(err), resolvePathOutput{}, nil
	}

	return nil, resolvePathOutput{
		Path:       p.String(),
		Kind:       string(n.Kind()),
		Name:       n.Name(),
		Properties: n.PropertyNames(),
		Content:    string(text),
	}, nil
}
