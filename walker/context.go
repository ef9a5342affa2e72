package walker

import (
	"context"
	"slices"

	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/nodepath"
)

// WalkContext provides contextual information about the current node being visited.
// It is only valid for the duration of the visitor call.
type WalkContext struct {
	node      *model.Node
	path      *nodepath.Builder
	ancestors []*model.Node
	ctx       context.Context
}

// Context returns the context.Context for cancellation and deadline propagation.
// Returns context.Background() if no context was set.
func (wc *WalkContext) Context() context.Context {
	if wc.ctx == nil {
		return context.Background()
	}
	return wc.ctx
}

// Path returns the path of the current node.
func (wc *WalkContext) Path() nodepath.Path {
	return wc.path.Path()
}

// PathString returns the path of the current node rendered as a string.
func (wc *WalkContext) PathString() string {
	return wc.path.String()
}

// Name is the key of the current node in its keyed collection, if any.
func (wc *WalkContext) Name() string {
	return wc.node.Name()
}

// Depth returns the number of ancestors between the walk root and the node.
func (wc *WalkContext) Depth() int {
	return len(wc.ancestors)
}

// Parent returns the nearest ancestor visited by this walk, or nil at the walk root.
func (wc *WalkContext) Parent() *model.Node {
	if len(wc.ancestors) == 0 {
		return nil
	}
	return wc.ancestors[len(wc.ancestors)-1]
}

// Ancestors returns the ancestors visited by this walk, nearest first.
func (wc *WalkContext) Ancestors() []*model.Node {
	out := slices.Clone(wc.ancestors)
	slices.Reverse(out)
	return out
}

// Nearest returns the nearest ancestor of kind k.
func (wc *WalkContext) Nearest(k model.Kind) (*model.Node, bool) {
	for i := len(wc.ancestors) - 1; i >= 0; i-- {
		if wc.ancestors[i].Kind() == k {
			return wc.ancestors[i], true
		}
	}
	return nil, false
}
