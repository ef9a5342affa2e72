package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasmodel/factory"
	"github.com/erraggy/oasmodel/parser"
)

type schemaFromExampleInput struct {
	Spec            specInput `json:"spec"                       jsonschema:"The document to add the definition to"`
	Name            string    `json:"name"                       jsonschema:"Name of the new schema definition"`
	Example         string    `json:"example"                    jsonschema:"Example value as JSON or YAML text"`
	IncludeDocument bool      `json:"include_document,omitempty" jsonschema:"Return the updated document in its source format"`
}

type schemaFromExampleOutput struct {
	Ref      string `json:"ref"`
	Path     string `json:"path"`
	Schema   string `json:"schema"`
	Document string `json:"document,omitempty"`
}

func handleSchemaFromExample(_ context.Context, _ *mcp.CallToolRequest, input schemaFromExampleInput) (*mcp.CallToolResult, schemaFromExampleOutput, error) {
	result, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), schemaFromExampleOutput{}, nil
	}
	doc := result.Document.Clone()

	n, err := factory.SchemaDefinitionFromExample(doc, input.Name, input.Example)
	if err != nil {
		return errResult(err), schemaFromExampleOutput{}, nil
	}
	p, err := n.Path()
	if err != nil {
		return errResult(err), schemaFromExampleOutput{}, nil
	}
	w := parser.NewWriter()
	v, err := w.Write(n)
	if err != nil {
		return errResult(err), schemaFromExampleOutput{}, nil
	}
	schema, err := parser.MarshalJSON(v, "  ")
	if err != nil {
		return errResult(err), schemaFromExampleOutput{}, nil
	}

	output := schemaFromExampleOutput{
		Ref:    factory.SchemaRef(doc.Type(), input.Name),
		Path:   p.String(),
		Schema: string(schema),
	}
	if input.IncludeDocument {
		dv, err := w.WriteDocument(doc)
		if err != nil {
			return errResult(err), schemaFromExampleOutput{}, nil
		}
		text, err := parser.MarshalText(dv, result.SourceFormat)
		if err != nil {
			return errResult(err), schemaFromExampleOutput{}, nil
		}
		output.Document = string(text)
	}
	return nil, output, nil
}
