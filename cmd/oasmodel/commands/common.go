// Package commands provides CLI command handlers for oasmodel.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasmodel/internal/severity"
	"github.com/erraggy/oasmodel/parser"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ErrProblemsFound is returned by commands whose outcome should fail the
// process without an additional error message, e.g. validation problems.
var ErrProblemsFound = errors.New("problems found")

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string, allowed ...string) error {
	if len(allowed) == 0 {
		allowed = []string{FormatText, FormatJSON, FormatYAML}
	}
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("invalid format '%s'. Valid formats: %s", format, strings.Join(allowed, ", "))
}

// OutputStructured writes data in the specified format (json or yaml) to stdout.
func OutputStructured(data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(stdout, "%s\n", strings.TrimRight(string(bytes), "\n"))
	return nil
}

// FormatSpecPath returns a display-friendly path for the document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// ParseInput parses the document at specPath, or stdin when specPath is
// StdinFilePath.
func ParseInput(specPath string, logger parser.Logger) (*parser.Result, error) {
	opts := []parser.Option{parser.WithLogger(logger)}
	if specPath == StdinFilePath {
		opts = append(opts, parser.WithReader(stdin), parser.WithSourceName(FormatSpecPath(specPath)))
	} else {
		opts = append(opts, parser.WithFilePath(specPath))
	}
	return parser.ParseWithOptions(opts...)
}

// NewLogger returns a debug logger writing to stderr when verbose is set,
// and a no-op logger otherwise.
func NewLogger(verbose bool) parser.Logger {
	if !verbose {
		return parser.NopLogger{}
	}
	h := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	return parser.NewSlogAdapter(slog.New(h))
}

// palette colors terminal output. It is a no-op unless w is a terminal.
type palette struct {
	enabled bool
}

func newPalette(w io.Writer, noColor bool) palette {
	f, ok := w.(*os.File)
	if !ok || noColor {
		return palette{}
	}
	return palette{enabled: isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())}
}

func (p palette) paint(s string, attrs ...color.Attribute) string {
	if !p.enabled {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

func (p palette) severity(s severity.Severity) string {
	switch s {
	case severity.SeverityHigh:
		return p.paint(s.String(), color.FgRed, color.Bold)
	case severity.SeverityMedium:
		return p.paint(s.String(), color.FgYellow)
	default:
		return p.paint(s.String(), color.FgCyan)
	}
}

func (p palette) ok(s string) string   { return p.paint(s, color.FgGreen) }
func (p palette) fail(s string) string { return p.paint(s, color.FgRed) }
