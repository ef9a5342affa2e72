package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/erraggy/oasmodel"
	"github.com/erraggy/oasmodel/internal/severity"
	"github.com/erraggy/oasmodel/parser"
	"github.com/erraggy/oasmodel/validator"
	"github.com/erraggy/oasmodel/validator/rules"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Quiet      bool
	Verbose    bool
	NoColor    bool
	Abort      bool
	Format     string
	RulesFile  string
	Severities validator.Severities
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{Severities: validator.Severities{}}

	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the validation result, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the validation result, no diagnostic messages")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log parsing and validation details to stderr")
	fs.BoolVar(&flags.NoColor, "no-color", false, "disable colored output")
	fs.BoolVar(&flags.Abort, "abort-on-rule-failure", false, "stop the whole pass when a rule fails instead of skipping that rule")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.RulesFile, "rules", "", "YAML rule file with extra rules and severity overrides")
	fs.Func("severity", "override a rule severity as CODE=LEVEL (high, medium, low, ignore); repeatable", func(s string) error {
		code, level, ok := strings.Cut(s, "=")
		if !ok || code == "" {
			return fmt.Errorf("expected CODE=LEVEL, got %q", s)
		}
		sev, err := severity.Parse(level)
		if err != nil {
			return err
		}
		flags.Severities[code] = sev
		return nil
	})

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasmodel validate [flags] <file|->\n\n")
		Writef(fs.Output(), "Validate an OpenAPI 2, OpenAPI 3 or AsyncAPI 2 document with the built-in rules.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasmodel validate openapi.yaml\n")
		Writef(fs.Output(), "  oasmodel validate --severity R-004=ignore asyncapi.yaml\n")
		Writef(fs.Output(), "  oasmodel validate --rules team-rules.yaml openapi.json\n")
		Writef(fs.Output(), "  cat openapi.yaml | oasmodel validate -q -\n")
		Writef(fs.Output(), "  oasmodel validate --format json openapi.yaml | jq '.problems'\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    No problems found\n")
		Writef(fs.Output(), "  1    Problems found or the document could not be read\n")
	}

	return fs, flags
}

// validateReport is the structured output of the validate command.
type validateReport struct {
	Specification string              `json:"specification" yaml:"specification"`
	DocumentType  string              `json:"documentType" yaml:"documentType"`
	Version       string              `json:"version" yaml:"version"`
	Valid         bool                `json:"valid" yaml:"valid"`
	Problems      []validator.Problem `json:"problems" yaml:"problems"`
	RuleFailures  []string            `json:"ruleFailures,omitempty" yaml:"ruleFailures,omitempty"`
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one file path or '-' for stdin")
	}
	specPath := fs.Arg(0)

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	logger := NewLogger(flags.Verbose)
	v, err := newValidator(flags, logger)
	if err != nil {
		return err
	}

	startTime := time.Now()
	result, err := ParseInput(specPath, logger)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", FormatSpecPath(specPath), err)
	}
	pending := v.ValidateDocument(context.Background(), result.Document)
	problems, err := pending.Wait()
	if err != nil {
		return fmt.Errorf("validating %s: %w", FormatSpecPath(specPath), err)
	}
	totalTime := time.Since(startTime)

	report := validateReport{
		Specification: FormatSpecPath(specPath),
		DocumentType:  result.Type().String(),
		Version:       result.Version,
		Valid:         len(problems) == 0,
		Problems:      problems,
	}
	for _, f := range pending.RuleFailures() {
		report.RuleFailures = append(report.RuleFailures, f.Error())
	}

	if flags.Format != FormatText {
		if err := OutputStructured(report, flags.Format); err != nil {
			return err
		}
	} else {
		writeValidateText(report, flags, totalTime)
	}

	if !report.Valid {
		return ErrProblemsFound
	}
	return nil
}

func newValidator(flags *ValidateFlags, logger parser.Logger) (*validator.Validator, error) {
	ruleSet := rules.Builtin()
	severities := validator.Severities{}
	if flags.RulesFile != "" {
		f, err := rules.LoadFile(flags.RulesFile)
		if err != nil {
			return nil, err
		}
		extra, err := f.Compile()
		if err != nil {
			return nil, err
		}
		ruleSet = append(ruleSet, extra...)
		severities = severities.Merge(f.Severities)
	}
	severities = severities.Merge(flags.Severities)

	policy := validator.IsolateRule
	if flags.Abort {
		policy = validator.AbortPass
	}
	return validator.New(
		validator.WithRules(ruleSet...),
		validator.WithSeverities(severities),
		validator.WithFailurePolicy(policy),
		validator.WithLogger(logger),
	)
}

func writeValidateText(report validateReport, flags *ValidateFlags, totalTime time.Duration) {
	p := newPalette(stderr, flags.NoColor)
	if !flags.Quiet {
		Writef(stderr, "Document Validator\n")
		Writef(stderr, "==================\n\n")
		Writef(stderr, "oasmodel version: %s\n", oasmodel.Version())
		Writef(stderr, "Specification: %s\n", report.Specification)
		Writef(stderr, "Document Type: %s\n", report.DocumentType)
		Writef(stderr, "Version: %s\n", report.Version)
		Writef(stderr, "Total Time: %v\n\n", totalTime)

		if len(report.Problems) > 0 {
			Writef(stderr, "Problems (%d):\n", len(report.Problems))
			for _, prob := range report.Problems {
				Writef(stderr, "  [%s] %s %s: %s\n", prob.ErrorCode, p.severity(prob.Severity), prob.NodePath, prob.Message)
			}
			Writef(stderr, "\n")
		}
		if len(report.RuleFailures) > 0 {
			Writef(stderr, "Rule Failures (%d):\n", len(report.RuleFailures))
			for _, f := range report.RuleFailures {
				Writef(stderr, "  %s\n", f)
			}
			Writef(stderr, "\n")
		}
	}

	if report.Valid {
		Writef(stderr, "%s\n", p.ok("✓ Validation passed"))
	} else {
		Writef(stderr, "%s\n", p.fail(fmt.Sprintf("✗ Validation failed: %d problem(s)", len(report.Problems))))
	}
}
