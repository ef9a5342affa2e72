package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/oasmodel/parser"
)

// ResolveFlags contains flags for the resolve command
type ResolveFlags struct {
	Format  string
	Quiet   bool
	Verbose bool
}

// SetupResolveFlags creates and configures a FlagSet for the resolve command.
func SetupResolveFlags() (*flag.FlagSet, *ResolveFlags) {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	flags := &ResolveFlags{}

	fs.StringVar(&flags.Format, "format", FormatYAML, "output format: json or yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: print only the node content")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: print only the node content")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log parsing details to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasmodel resolve [flags] <file|-> <node-path>\n\n")
		Writef(fs.Output(), "Print the node at a path. Named properties follow '/', map entries use a quoted\n")
		Writef(fs.Output(), "key in brackets and list items a bracketed index.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasmodel resolve openapi.yaml /info\n")
		Writef(fs.Output(), "  oasmodel resolve openapi.yaml '/paths[\"/pets\"]/get'\n")
		Writef(fs.Output(), "  oasmodel resolve --format json asyncapi.yaml '/servers[\"production\"]'\n")
	}

	return fs, flags
}

// HandleResolve executes the resolve command
func HandleResolve(args []string) error {
	fs, flags := SetupResolveFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("resolve command requires a file path (or '-') and a node path")
	}
	if err := ValidateOutputFormat(flags.Format, FormatJSON, FormatYAML); err != nil {
		return err
	}
	specPath, nodePath := fs.Arg(0), fs.Arg(1)

	result, err := ParseInput(specPath, NewLogger(flags.Verbose))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", FormatSpecPath(specPath), err)
	}
	n, err := result.Document.ResolveString(nodePath)
	if err != nil {
		return err
	}
	v, err := parser.NewWriter().Write(n)
	if err != nil {
		return err
	}
	text, err := parser.MarshalText(v, parser.SourceFormat(flags.Format))
	if err != nil {
		return err
	}

	if !flags.Quiet {
		Writef(stderr, "Kind: %s\n", n.Kind().DisplayName())
		if n.Name() != "" {
			Writef(stderr, "Name: %s\n", n.Name())
		}
	}
	Writef(stdout, "%s\n", trimNewline(text))
	return nil
}

func trimNewline(b []byte) string {
	for len(b) > 0 && b[len(b)-1] == '\n' {
		b = b[:len(b)-1]
	}
	return string(b)
}
