package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/erraggy/oasmodel/command"
	"github.com/erraggy/oasmodel/factory"
	"github.com/erraggy/oasmodel/internal/options"
	"github.com/erraggy/oasmodel/parser"
)

// SchemaFlags contains flags for the schema command
type SchemaFlags struct {
	Name        string
	Example     string
	ExampleFile string
	Output      string
	Verbose     bool
}

// SetupSchemaFlags creates and configures a FlagSet for the schema command.
func SetupSchemaFlags() (*flag.FlagSet, *SchemaFlags) {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	flags := &SchemaFlags{}

	fs.StringVar(&flags.Name, "name", "", "name of the new schema definition (required)")
	fs.StringVar(&flags.Example, "example", "", "example value as inline JSON or YAML")
	fs.StringVar(&flags.ExampleFile, "example-file", "", "file holding the example value")
	fs.StringVar(&flags.Output, "o", "", "write the document to a file instead of stdout")
	fs.StringVar(&flags.Output, "output", "", "write the document to a file instead of stdout")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log parsing and editing details to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasmodel schema --name <name> (--example <value> | --example-file <file>) [flags] <file|->\n\n")
		Writef(fs.Output(), "Infer a schema definition from an example value and add it to the document.\n")
		Writef(fs.Output(), "OpenAPI 2 documents receive it under definitions, others under components.schemas.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasmodel schema --name Pet --example '{\"id\": 1, \"name\": \"Rex\"}' openapi.yaml\n")
		Writef(fs.Output(), "  oasmodel schema --name Order --example-file order.json -o openapi.yaml openapi.yaml\n")
	}

	return fs, flags
}

// HandleSchema executes the schema command
func HandleSchema(args []string) error {
	fs, flags := SetupSchemaFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("schema command requires exactly one file path or '-' for stdin")
	}
	if flags.Name == "" {
		return fmt.Errorf("schema command requires --name")
	}
	if err := options.ValidateSingleInputSource(
		"schema command requires --example or --example-file",
		"use only one of --example and --example-file",
		flags.Example != "", flags.ExampleFile != "",
	); err != nil {
		return err
	}
	example, err := readExample(flags)
	if err != nil {
		return err
	}
	specPath := fs.Arg(0)

	logger := NewLogger(flags.Verbose)
	result, err := ParseInput(specPath, logger)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", FormatSpecPath(specPath), err)
	}
	doc := result.Document

	cmd, err := factory.DefinitionCommand(doc, flags.Name, example)
	if err != nil {
		return err
	}
	history, err := command.NewHistory(doc, command.WithLogger(logger))
	if err != nil {
		return err
	}
	if _, err := history.Execute(cmd); err != nil {
		return err
	}

	written, err := parser.NewWriter().WriteDocument(doc)
	if err != nil {
		return err
	}
	text, err := parser.MarshalText(written, result.SourceFormat)
	if err != nil {
		return err
	}

	Writef(stderr, "Added %s\n", factory.SchemaRef(doc.Type(), flags.Name))
	if flags.Output != "" {
		if err := os.WriteFile(flags.Output, append(text, '\n'), 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", flags.Output, err)
		}
		return nil
	}
	Writef(stdout, "%s\n", trimNewline(text))
	return nil
}

func readExample(flags *SchemaFlags) (string, error) {
	if flags.Example != "" {
		return flags.Example, nil
	}
	if flags.ExampleFile == StdinFilePath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading example from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(filepath.Clean(flags.ExampleFile))
	if err != nil {
		return "", fmt.Errorf("reading example: %w", err)
	}
	return string(data), nil
}
