package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasmodel"
	"github.com/erraggy/oasmodel/cmd/oasmodel/commands"
	"github.com/erraggy/oasmodel/internal/mcpserver"
)

// commandNames lists the top-level commands, used for typo suggestions.
var commandNames = []string{"validate", "resolve", "roundtrip", "schema", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasmodel v%s\n", oasmodel.Version())
		if len(args) > 0 && args[0] == "--long" {
			fmt.Print(oasmodel.BuildInfo())
		}
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "validate":
		err = commands.HandleValidate(args)
	case "resolve":
		err = commands.HandleResolve(args)
	case "roundtrip":
		err = commands.HandleRoundtrip(args)
	case "schema":
		err = commands.HandleSchema(args)
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err = mcpserver.Run(ctx)
		stop()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if !errors.Is(err, commands.ErrProblemsFound) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// suggestCommand returns the known command closest to input, or "" when
// none is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`oasmodel - OpenAPI and AsyncAPI document model tools

Usage:
  oasmodel <command> [options]

Commands:
  validate    Validate an OpenAPI 2, OpenAPI 3 or AsyncAPI 2 document
  resolve     Print the node at a node path
  roundtrip   Read a document into the model and write it back out
  schema      Add a schema definition inferred from an example value
  mcp         Run the MCP server over stdio
  version     Show version information (--long for build details)
  help        Show this help message

Examples:
  oasmodel validate openapi.yaml
  oasmodel resolve openapi.yaml '/components/schemas["Pet"]'
  oasmodel roundtrip --check asyncapi.yaml
  oasmodel schema --name Pet --example '{"id": 1}' openapi.yaml

Run 'oasmodel <command> --help' for more information on a command.`)
}
