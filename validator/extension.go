package validator

import (
	"context"

	"github.com/erraggy/oasmodel/model"
)

// Extension is a caller-supplied validator that may do out-of-process work,
// such as fetching a remote reference. Extensions run concurrently after the
// synchronous rules and must treat the document as read-only.
type Extension interface {
	ValidateDocument(ctx context.Context, doc *model.Document) ([]Problem, error)
}

// ExtensionFunc adapts a function to Extension.
type ExtensionFunc func(ctx context.Context, doc *model.Document) ([]Problem, error)

// ValidateDocument implements Extension.
func (f ExtensionFunc) ValidateDocument(ctx context.Context, doc *model.Document) ([]Problem, error) {
	return f(ctx, doc)
}
