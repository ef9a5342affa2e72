package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasmodel/internal/severity"
	"github.com/erraggy/oasmodel/validator"
	"github.com/erraggy/oasmodel/validator/rules"
)

type validateInput struct {
	Spec       specInput         `json:"spec"                 jsonschema:"The document to validate"`
	Severities map[string]string `json:"severities,omitempty" jsonschema:"Severity overrides by error code (high, medium, low, ignore)"`
	Offset     int               `json:"offset,omitempty"     jsonschema:"Skip the first N problems (for pagination)"`
	Limit      int               `json:"limit,omitempty"      jsonschema:"Maximum number of problems to return (default 100)"`
}

type validateProblem struct {
	Code     string `json:"code"`
	Path     string `json:"path"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type validateOutput struct {
	Valid        bool              `json:"valid"`
	DocumentType string            `json:"document_type"`
	Version      string            `json:"version"`
	ProblemCount int               `json:"problem_count"`
	RuleFailures []string          `json:"rule_failures,omitempty"`
	Returned     int               `json:"returned"`
	Problems     []validateProblem `json:"problems,omitempty"`
}

func handleValidate(ctx context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	result, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	v, err := newValidator(input.Severities)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}
	// Problems attach to the nodes they were reported on; validate a copy so
	// the cached document stays untouched.
	doc := result.Document.Clone()
	pending := v.ValidateDocument(ctx, doc)
	problems, err := pending.WaitContext(ctx)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	output := validateOutput{
		Valid:        len(problems) == 0,
		DocumentType: doc.Type().String(),
		Version:      result.Version,
		ProblemCount: len(problems),
	}
	for _, f := range pending.RuleFailures() {
		output.RuleFailures = append(output.RuleFailures, f.Error())
	}
	page := paginate(problems, input.Offset, input.Limit)
	output.Problems = makeSlice[validateProblem](len(page))
	for _, p := range page {
		output.Problems = append(output.Problems, validateProblem{
			Code:     p.ErrorCode,
			Path:     p.NodePath,
			Severity: p.Severity.String(),
			Message:  p.Message,
		})
	}
	output.Returned = len(output.Problems)
	return nil, output, nil
}

// newValidator builds a validator with the built-in rules, the configured
// rule file and the given severity overrides, which win over the file's.
func newValidator(overrides map[string]string) (*validator.Validator, error) {
	ruleSet := rules.Builtin()
	severities := validator.Severities{}
	if cfg.RulesFile != "" {
		f, err := rules.LoadFile(cfg.RulesFile)
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
	for code, s := range overrides {
		sev, err := severity.Parse(s)
		if err != nil {
			return nil, err
		}
		severities[code] = sev
	}
	return validator.New(
		validator.WithRules(ruleSet...),
		validator.WithSeverities(severities),
	)
}
