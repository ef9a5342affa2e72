package validator

import (
	"context"
	"maps"

	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/walker"
)

// Reporter is handed to a check for one node. It gives read-only access to
// the traversal position and records problems against the current node.
type Reporter struct {
	wc       *walker.WalkContext
	node     *model.Node
	meta     RuleMeta
	severity Severity
	found    *[]Problem
}

// Context returns the pass context.
func (r *Reporter) Context() context.Context { return r.wc.Context() }

// Path returns the path of the current node.
func (r *Reporter) Path() string { return r.wc.PathString() }

// Walk exposes the traversal position (ancestors, depth, name).
func (r *Reporter) Walk() *walker.WalkContext { return r.wc }

// Meta returns the metadata of the running rule.
func (r *Reporter) Meta() RuleMeta { return r.meta }

// Report records a problem concerning property of the current node. The
// message is the rule's template rendered with args. An empty property means
// the node itself.
func (r *Reporter) Report(property string, args ...any) {
	var ctx map[string]string
	if property != "" {
		ctx = map[string]string{"property": property}
	}
	r.ReportContext(ctx, args...)
}

// ReportIfInvalid reports when valid is false.
func (r *Reporter) ReportIfInvalid(valid bool, property string, args ...any) {
	if !valid {
		r.Report(property, args...)
	}
}

// ReportContext records a problem with arbitrary context entries.
func (r *Reporter) ReportContext(ctx map[string]string, args ...any) {
	p := Problem{
		ErrorCode: r.meta.Code,
		NodePath:  r.wc.PathString(),
		Severity:  r.severity,
		Message:   r.meta.Message(args...),
	}
	if len(ctx) > 0 {
		p.Context = maps.Clone(ctx)
	}
	r.node.AddProblem(p)
	*r.found = append(*r.found, p)
}
