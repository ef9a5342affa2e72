package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/erraggy/oasmodel/parser"
)

// RoundtripFlags contains flags for the roundtrip command
type RoundtripFlags struct {
	Format  string
	Output  string
	Check   bool
	NoColor bool
	Verbose bool
}

// SetupRoundtripFlags creates and configures a FlagSet for the roundtrip command.
func SetupRoundtripFlags() (*flag.FlagSet, *RoundtripFlags) {
	fs := flag.NewFlagSet("roundtrip", flag.ContinueOnError)
	flags := &RoundtripFlags{}

	fs.StringVar(&flags.Format, "format", "", "output format: json or yaml (default: the source format)")
	fs.StringVar(&flags.Output, "o", "", "write the document to a file instead of stdout")
	fs.StringVar(&flags.Output, "output", "", "write the document to a file instead of stdout")
	fs.BoolVar(&flags.Check, "check", false, "print a diff of what reading and writing changed and fail if anything did")
	fs.BoolVar(&flags.NoColor, "no-color", false, "disable colored diff output")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log parsing details to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasmodel roundtrip [flags] <file|->\n\n")
		Writef(fs.Output(), "Read a document into the model and write it back out. Properties the model does\n")
		Writef(fs.Output(), "not know about are kept as extra properties, so a faithful round trip changes nothing.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasmodel roundtrip --format json openapi.yaml -o openapi.json\n")
		Writef(fs.Output(), "  oasmodel roundtrip --check asyncapi.yaml\n")
	}

	return fs, flags
}

// HandleRoundtrip executes the roundtrip command
func HandleRoundtrip(args []string) error {
	fs, flags := SetupRoundtripFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("roundtrip command requires exactly one file path or '-' for stdin")
	}
	if flags.Format != "" {
		if err := ValidateOutputFormat(flags.Format, FormatJSON, FormatYAML); err != nil {
			return err
		}
	}
	specPath := fs.Arg(0)

	result, err := ParseInput(specPath, NewLogger(flags.Verbose))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", FormatSpecPath(specPath), err)
	}
	format := result.SourceFormat
	if flags.Format != "" {
		format = parser.SourceFormat(flags.Format)
	}

	written, err := parser.NewWriter().WriteDocument(result.Document)
	if err != nil {
		return err
	}
	after, err := parser.MarshalText(written, format)
	if err != nil {
		return err
	}

	if flags.Check {
		before, err := parser.MarshalText(result.Data, format)
		if err != nil {
			return err
		}
		diff := lineDiff(string(before), string(after), newPalette(stdout, flags.NoColor))
		if diff == "" {
			Writef(stderr, "%s: round trip is faithful\n", FormatSpecPath(specPath))
			return nil
		}
		Writef(stdout, "%s", diff)
		return ErrProblemsFound
	}

	if flags.Output != "" {
		if err := os.WriteFile(flags.Output, append(after, '\n'), 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", flags.Output, err)
		}
		Writef(stderr, "Wrote %s\n", flags.Output)
		return nil
	}
	Writef(stdout, "%s\n", trimNewline(after))
	return nil
}

// lineDiff renders a unified-style line diff of before and after, or ""
// when they are equal.
func lineDiff(before, after string, p palette) string {
	if before == after {
		return ""
	}
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix, attr := "  ", color.Reset
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix, attr = "+ ", color.FgGreen
		case diffpatch.DiffDelete:
			prefix, attr = "- ", color.FgRed
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			text := prefix + strings.TrimSuffix(line, "\n")
			if d.Type != diffpatch.DiffEqual {
				text = p.paint(text, attr)
			}
			sb.WriteString(text)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
