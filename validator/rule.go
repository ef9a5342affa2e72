package validator

import (
	"fmt"
	"slices"

	"github.com/erraggy/oasmodel/internal/issues"
	"github.com/erraggy/oasmodel/internal/severity"
	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/walker"
)

// Severity indicates the severity level of a validation problem.
type Severity = severity.Severity

const (
	// SeverityHigh indicates a spec violation that makes the document invalid
	SeverityHigh = severity.SeverityHigh
	// SeverityMedium indicates a probable mistake
	SeverityMedium = severity.SeverityMedium
	// SeverityLow indicates a best-practice or style finding
	SeverityLow = severity.SeverityLow
	// SeverityIgnore disables a rule
	SeverityIgnore = severity.SeverityIgnore
)

// Problem is a single rule violation.
type Problem = issues.Problem

// RuleMeta describes a rule independently of its checks.
type RuleMeta struct {
	// Code identifies the rule in reported problems (e.g., "R-003")
	Code string `json:"code" yaml:"code"`
	// Name is a short human-readable title
	Name string `json:"name" yaml:"name"`
	// Category groups related rules (e.g., "Invalid Property Format")
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	// Severity is the default severity of reported problems
	Severity Severity `json:"severity" yaml:"severity"`
	// AppliesTo lists the document types the rule runs on; empty means all
	AppliesTo []model.DocumentType `json:"appliesTo,omitempty" yaml:"appliesTo,omitempty"`
	// MessageTemplate is a fmt format for problem messages
	MessageTemplate string `json:"messageTemplate" yaml:"messageTemplate"`
}

// Applies reports whether the rule runs on documents of type typ.
func (m RuleMeta) Applies(typ model.DocumentType) bool {
	return len(m.AppliesTo) == 0 || slices.Contains(m.AppliesTo, typ)
}

// Message renders the message template with args.
func (m RuleMeta) Message(args ...any) string {
	if len(args) == 0 {
		return m.MessageTemplate
	}
	return fmt.Sprintf(m.MessageTemplate, args...)
}

// CheckFunc inspects one node and reports violations through r. A returned
// error is a failure of the rule itself, not a finding.
//
// Checks must not mutate the document.
type CheckFunc func(r *Reporter, n *model.Node) error

// Rule is a set of per-kind checks sharing one code, severity and message.
type Rule struct {
	meta   RuleMeta
	checks *walker.Table[CheckFunc]
}

// NewRule creates a rule with no checks.
func NewRule(meta RuleMeta) *Rule {
	meta.AppliesTo = slices.Clone(meta.AppliesTo)
	return &Rule{
		meta:   meta,
		checks: walker.NewTable[CheckFunc](meta.Code, meta.AppliesTo...),
	}
}

// Meta returns the rule's metadata.
func (r *Rule) Meta() RuleMeta { return r.meta }

// Code returns the rule's error code.
func (r *Rule) Code() string { return r.meta.Code }

// On registers fn for nodes of kind. With types, fn runs only in those
// document types; more specific registrations win.
func (r *Rule) On(kind model.Kind, fn CheckFunc, types ...model.DocumentType) *Rule {
	r.checks.On(kind, fn, types...)
	return r
}

// OnDialect registers fn for nodes of kind in every version of dialect.
func (r *Rule) OnDialect(kind model.Kind, dialect model.Dialect, fn CheckFunc) *Rule {
	r.checks.OnDialect(kind, dialect, fn)
	return r
}

// Kinds returns the dispatch keys the rule has checks for.
func (r *Rule) Kinds() []walker.Key {
	return r.checks.Keys()
}

func (r *Rule) lookup(n *model.Node) (CheckFunc, bool) {
	return r.checks.Lookup(n.Kind(), n.Type())
}

// RuleFailure records a rule that stopped because its check failed or
// panicked.
type RuleFailure struct {
	Code string
	Path string
	Err  error
}

func (f RuleFailure) Error() string {
	return fmt.Sprintf("rule %s failed at %s: %v", f.Code, f.Path, f.Err)
}

func (f RuleFailure) Unwrap() error { return f.Err }
