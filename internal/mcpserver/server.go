// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasmodel capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasmodel"
)

const serverInstructions = `oasmodel MCP server: detects, validates and navigates OpenAPI 2, OpenAPI 3 and AsyncAPI 2 documents, and derives schema definitions from examples.

Configuration: all defaults are configurable via OASMODEL_* environment variables set in your MCP client config.

Key settings:
- OASMODEL_CACHE_ENABLED (default: true): disable document caching entirely
- OASMODEL_CACHE_FILE_TTL (default: 15m): cache TTL for local files
- OASMODEL_CACHE_CONTENT_TTL (default: 15m): cache TTL for inline content
- OASMODEL_PROBLEM_LIMIT (default: 100): default page size of the validate tool
- OASMODEL_RULES_FILE: YAML rule file with extra rules and severity overrides

Paths: node paths look like /paths["/pets"]/get/responses["200"] or /servers[0]. Named properties follow /, collection keys are quoted inside brackets and list items use a bracketed index.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		documents.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasmodel", Version: oasmodel.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "detect",
		Description: "Detect the type and version of an OpenAPI or AsyncAPI document. Returns the document type (openapi2, openapi3, asyncapi2), the declared version, the source format, the API title and version, and node counts per kind.",
	}, handleDetect)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate a document with the built-in rules and any rules from OASMODEL_RULES_FILE. Returns problems with error code, node path, severity and message. Use severities to override or ignore rule codes (values: high, medium, low, ignore). Use offset/limit to paginate.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_path",
		Description: "Resolve a node path in a document and return the node's kind and content. Paths use / for named properties, [\"key\"] for map entries and [index] for list items, e.g. /paths[\"/pets\"]/get or /components/schemas[\"Pet\"].",
	}, handleResolvePath)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "schema_from_example",
		Description: "Infer a named schema definition from an example JSON or YAML value and add it to the document (definitions for OpenAPI 2, components.schemas otherwise). Returns the schema, its $ref and, with include_document=true, the updated document.",
	}, handleSchemaFromExample)
}

// paginate returns the page of items starting at offset. A non-positive
// limit means cfg.ProblemLimit; no page is longer than cfg.MaxLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ProblemLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	n := min(limit, cfg.MaxLimit, len(items)-offset)
	return items[offset : offset+n]
}

// makeSlice returns nil for n == 0 so omitempty drops the field, and an
// empty slice with capacity n otherwise.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// pathPattern matches absolute filesystem paths under common roots. Node
// paths such as /components/schemas["Pet"] do not start with these roots.
var pathPattern = regexp.MustCompile(`/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[A-Za-z0-9._/-]*`)

// errResult reports err to the client with filesystem paths masked.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}
