// Package validator runs validation rules over a document tree.
//
// A [Rule] pairs [RuleMeta] (error code, name, category, default severity,
// applicable document types and a message template) with per-kind checks.
// Checks are registered like any dispatch table entry, so a rule can apply
// one check everywhere and specialize it for a single document type:
//
//	rule := validator.NewRule(validator.RuleMeta{
//	    Code:            "R-002",
//	    Name:            "Missing API Title",
//	    Severity:        validator.SeverityHigh,
//	    MessageTemplate: "API is missing a title.",
//	}).On(model.KindInfo, func(r *validator.Reporter, n *model.Node) error {
//	    r.ReportIfInvalid(n.Has("title"), "title")
//	    return nil
//	})
//
// # Passes
//
// [Validator.ValidateDocument] filters the rules by applicability and by the
// [SeverityRegistry] (SeverityIgnore disables a rule), then walks the tree
// once in pre-order. At each node the active rules run in registration
// order, so problems are ordered by node first and rule second, and two
// passes over an unchanged document produce the same result.
//
// Every problem is attached to the node it concerns and can be read back
// with model.Document.Problems or ProblemCodes. A new pass clears the
// problems of the previous one.
//
// # Extensions
//
// An [Extension] may do slow or remote work. Extensions start once the
// synchronous rules have finished and run concurrently; the returned
// [Pending] merges their problems after the synchronous ones, in the order
// the extensions were registered. The first extension error is returned by
// [Pending.Wait]; it is never dropped.
//
// # Failures
//
// A check that returns an error or panics is a failure of the rule, not a
// finding. Under [IsolateRule] (the default) only that rule stops; under
// [AbortPass] the pass stops and Wait returns the failure.
package validator
