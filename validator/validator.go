package validator

import (
	"context"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/nodepath"
	"github.com/erraggy/oasmodel/walker"
)

// Validator runs a fixed set of rules and extensions over documents.
// A Validator is immutable after New and may validate several documents
// concurrently, but each document must only see one pass at a time.
type Validator struct {
	cfg *config
}

// New creates a Validator.
func New(opts ...Option) (*Validator, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("validator: invalid options: %w", err)
	}
	return &Validator{cfg: cfg}, nil
}

// Rules returns the registered rules in registration order.
func (v *Validator) Rules() []*Rule {
	return slices.Clone(v.cfg.rules)
}

// ActiveRules returns the rules that would run on a document of type typ,
// after applicability filtering and severity overrides.
func (v *Validator) ActiveRules(typ model.DocumentType) []*Rule {
	var out []*Rule
	for _, ar := range v.activeRules(typ) {
		out = append(out, ar.rule)
	}
	return out
}

type activeRule struct {
	rule     *Rule
	severity Severity
	stopped  bool
}

func (v *Validator) activeRules(typ model.DocumentType) []*activeRule {
	var active []*activeRule
	for _, r := range v.cfg.rules {
		if !r.meta.Applies(typ) {
			continue
		}
		sev := v.cfg.severities.LookupSeverity(r.meta)
		if sev == SeverityIgnore {
			continue
		}
		active = append(active, &activeRule{rule: r, severity: sev})
	}
	return active
}

// ValidateDocument starts a validation pass over doc. Problems from an
// earlier pass are cleared first. The synchronous rules have finished when
// ValidateDocument returns; extensions continue in the background and are
// merged into the Pending result.
func (v *Validator) ValidateDocument(ctx context.Context, doc *model.Document) *Pending {
	p := newPending()
	doc.ClearProblems()

	start := time.Now()
	err := v.runRules(ctx, doc, p)
	v.cfg.metrics.observePhase("sync", start)

	if err != nil || len(v.cfg.extensions) == 0 {
		v.complete(doc, p, p.sync, err)
		return p
	}
	go v.runExtensions(ctx, doc, p)
	return p
}

// Validate runs a pass and waits for it.
func (v *Validator) Validate(ctx context.Context, doc *model.Document) ([]Problem, error) {
	return v.ValidateDocument(ctx, doc).WaitContext(ctx)
}

// runRules performs one pre-order traversal and, at each node, runs every
// active rule that has a check for the node's kind, in registration order.
func (v *Validator) runRules(ctx context.Context, doc *model.Document, p *Pending) error {
	found := []Problem{}
	defer func() { p.sync = found }()

	active := v.activeRules(doc.Type())
	if len(active) == 0 {
		return nil
	}

	var abort error
	visit := func(wc *walker.WalkContext, n *model.Node) walker.Action {
		for _, ar := range active {
			if ar.stopped {
				continue
			}
			check, ok := ar.rule.lookup(n)
			if !ok {
				continue
			}
			r := &Reporter{wc: wc, node: n, meta: ar.rule.meta, severity: ar.severity, found: &found}
			err := runCheck(check, r, n)
			if err == nil {
				continue
			}

			failure := RuleFailure{Code: ar.rule.Code(), Path: wc.PathString(), Err: err}
			p.failures = append(p.failures, failure)
			v.cfg.metrics.countRuleFailure(failure.Code)
			if v.cfg.policy == AbortPass {
				abort = failure
				return walker.Stop
			}
			ar.stopped = true
			v.cfg.logger.Warn("validation rule failed",
				"code", failure.Code,
				"path", failure.Path,
				"error", err)
		}
		return walker.Continue
	}

	table := walker.NewTable[walker.Visitor]("validate").Otherwise(visit)
	if err := walker.Walk(doc.Root(), table, walker.WithContext(ctx)); err != nil {
		return fmt.Errorf("validator: %w", err)
	}
	if abort != nil {
		return fmt.Errorf("validator: pass aborted: %w", abort)
	}
	return nil
}

func runCheck(check CheckFunc, r *Reporter, n *model.Node) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return check(r, n)
}

func (v *Validator) runExtensions(ctx context.Context, doc *model.Document, p *Pending) {
	start := time.Now()
	results := make([][]Problem, len(v.cfg.extensions))

	g, gctx := errgroup.WithContext(ctx)
	for i, ext := range v.cfg.extensions {
		g.Go(func() (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					err = fmt.Errorf("validator: extension %d panicked: %v", i, rec)
				}
			}()
			ps, err := ext.ValidateDocument(gctx, doc)
			if err != nil {
				return fmt.Errorf("validator: extension %d: %w", i, err)
			}
			results[i] = ps
			return nil
		})
	}
	err := g.Wait()
	v.cfg.metrics.observePhase("extensions", start)

	merged := slices.Clone(p.sync)
	for _, ps := range results {
		for _, prob := range ps {
			attach(doc, prob)
			merged = append(merged, prob)
		}
	}
	v.complete(doc, p, merged, err)
}

// attach records an extension problem on the node its path names, or on the
// root when the path does not resolve.
func attach(doc *model.Document, prob Problem) {
	target := doc.Root()
	if path, err := nodepath.Parse(prob.NodePath); err == nil {
		if n, err := doc.Resolve(path); err == nil {
			target = n
		}
	}
	target.AddProblem(prob)
}

func (v *Validator) complete(doc *model.Document, p *Pending, problems []Problem, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	v.cfg.metrics.countProblems(problems)
	v.cfg.metrics.countPass(doc.Type().String(), outcome)
	v.cfg.logger.Debug("validated document",
		"type", doc.Type().String(),
		"problems", len(problems),
		"rule_failures", len(p.failures),
		"outcome", outcome)
	p.finish(problems, err)
}
