package validator

import (
	"errors"
	"fmt"
	"slices"

	"github.com/erraggy/oasmodel/parser"
)

// FailurePolicy decides what happens when a check returns an error or panics.
type FailurePolicy int

const (
	// IsolateRule stops only the failing rule. Its earlier problems are kept
	// and every other rule still runs.
	IsolateRule FailurePolicy = iota
	// AbortPass stops the whole pass and reports the failure as its error.
	AbortPass
)

func (p FailurePolicy) String() string {
	switch p {
	case IsolateRule:
		return "isolate"
	case AbortPass:
		return "abort"
	}
	return fmt.Sprintf("FailurePolicy(%d)", int(p))
}

// Option is a function that configures a Validator
type Option func(*config) error

type config struct {
	rules      []*Rule
	extensions []Extension
	severities SeverityRegistry
	policy     FailurePolicy
	logger     parser.Logger
	metrics    *Metrics
}

func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		severities: defaultSeverities{},
		policy:     IsolateRule,
		logger:     parser.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	seen := make(map[string]bool, len(cfg.rules))
	for _, r := range cfg.rules {
		if seen[r.Code()] {
			return nil, fmt.Errorf("duplicate rule code %q", r.Code())
		}
		seen[r.Code()] = true
	}
	return cfg, nil
}

// WithRules appends rules to the set run by the validator. Within one node,
// rules run in the order they were added.
func WithRules(rules ...*Rule) Option {
	return func(cfg *config) error {
		if slices.Contains(rules, nil) {
			return errors.New("nil rule")
		}
		cfg.rules = append(cfg.rules, rules...)
		return nil
	}
}

// WithExtensions appends extension validators. Their problems follow the
// synchronous problems, in the order the extensions were added.
func WithExtensions(exts ...Extension) Option {
	return func(cfg *config) error {
		if slices.Contains(exts, nil) {
			return errors.New("nil extension")
		}
		cfg.extensions = append(cfg.extensions, exts...)
		return nil
	}
}

// WithSeverities sets the severity registry. A nil registry keeps each
// rule's default severity.
func WithSeverities(reg SeverityRegistry) Option {
	return func(cfg *config) error {
		if reg == nil {
			reg = defaultSeverities{}
		}
		cfg.severities = reg
		return nil
	}
}

// WithFailurePolicy sets how rule failures are handled.
// Default: IsolateRule
func WithFailurePolicy(p FailurePolicy) Option {
	return func(cfg *config) error {
		if p != IsolateRule && p != AbortPass {
			return fmt.Errorf("unknown failure policy %v", p)
		}
		cfg.policy = p
		return nil
	}
}

// WithLogger sets the logger. Rule failures are logged at warn level.
func WithLogger(l parser.Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			l = parser.NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}

// WithMetrics records pass outcomes, problems and timings into m.
func WithMetrics(m *Metrics) Option {
	return func(cfg *config) error {
		cfg.metrics = m
		return nil
	}
}
