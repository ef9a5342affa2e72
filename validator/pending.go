package validator

import (
	"context"
	"slices"
)

// Pending is the deferred result of a validation pass. The synchronous
// problems are available immediately; extension problems arrive once every
// extension has finished.
//
// Until Done is closed the pass may still attach problems to the document,
// so the document must not be mutated before then. Pending itself is safe
// for concurrent use.
type Pending struct {
	sync     []Problem
	failures []RuleFailure

	done     chan struct{}
	problems []Problem
	err      error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func (p *Pending) finish(problems []Problem, err error) {
	p.problems = problems
	p.err = err
	close(p.done)
}

// Sync returns the problems reported by the synchronous rules, in traversal
// order. They are always a prefix of the merged result.
func (p *Pending) Sync() []Problem {
	return append([]Problem{}, p.sync...)
}

// RuleFailures lists rules that stopped early because a check failed.
func (p *Pending) RuleFailures() []RuleFailure {
	return slices.Clone(p.failures)
}

// Done is closed once the merged result is available.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the pass completes and returns the merged problems. The
// slice is never nil. If an extension fails, or the pass aborted, the error
// is returned together with whatever problems were collected.
func (p *Pending) Wait() ([]Problem, error) {
	<-p.done
	return append([]Problem{}, p.problems...), p.err
}

// WaitContext is like Wait but gives up when ctx is done.
func (p *Pending) WaitContext(ctx context.Context) ([]Problem, error) {
	select {
	case <-p.done:
		return p.Wait()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
