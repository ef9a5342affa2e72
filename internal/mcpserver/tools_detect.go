package mcpserver

import (
	"context"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasmodel/walker"
)

type detectInput struct {
	Spec specInput `json:"spec" jsonschema:"The document to inspect"`
}

type kindCount struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

type detectOutput struct {
	DocumentType string      `json:"document_type"`
	Version      string      `json:"version"`
	Format       string      `json:"format"`
	Title        string      `json:"title,omitempty"`
	APIVersion   string      `json:"api_version,omitempty"`
	NodeCount    int         `json:"node_count"`
	Kinds        []kindCount `json:"kinds,omitempty"`
}

func handleDetect(_ context.Context, _ *mcp.CallToolRequest, input detectInput) (*mcp.CallToolResult, detectOutput, error) {
	result, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), detectOutput{}, nil
	}
	doc := result.Document
	output := detectOutput{
		DocumentType: doc.Type().String(),
		Version:      result.Version,
		Format:       string(result.SourceFormat),
	}
	if info := doc.Root().Child("info"); info != nil {
		output.Title = info.Text("title")
		output.APIVersion = info.Text("version")
	}

	nodes, err := walker.Collect(doc.Root(), nil)
	if err != nil {
		return errResult(err), detectOutput{}, nil
	}
	output.NodeCount = len(nodes)
	counts := make(map[string]int)
	for _, ni := range nodes {
		counts[string(ni.Node.Kind())]++
	}
	output.Kinds = makeSlice[kindCount](len(counts))
	for k, n := range counts {
		output.Kinds = append(output.Kinds, kindCount{Kind: k, Count: n})
	}
	// Most frequent first, ties alphabetically.
	slices.SortFunc(output.Kinds, func(a, b kindCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Kind, b.Kind)
	})
	return nil, output, nil
}
