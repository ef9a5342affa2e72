package walker

import (
	"context"

	"github.com/erraggy/oasmodel/nodepath"
)

type config struct {
	ctx      context.Context
	strict   bool
	maxDepth int
	base     *nodepath.Path
}

func defaultConfig() *config {
	return &config{ctx: context.Background()}
}

// Option configures a walk.
type Option func(*config)

// WithStrict makes a node without a routed visitor fail the walk with an
// error matching oaserrors.ErrUnsupportedNodeKind.
func WithStrict() Option {
	return func(c *config) {
		c.strict = true
	}
}

// WithContext sets the context for cancellation and deadline propagation.
// The context is available to visitors via wc.Context().
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// WithMaxDepth stops descending below depth levels from the walk root.
// If depth is not positive, it is silently ignored.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// WithBasePath sets the path of the walk root so that WalkContext paths are
// document-absolute when walking a subtree.
func WithBasePath(p nodepath.Path) Option {
	return func(c *config) {
		c.base = &p
	}
}
