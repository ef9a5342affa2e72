package command

import (
	"fmt"

	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/nodepath"
	"github.com/erraggy/oasmodel/oaserrors"
	"github.com/erraggy/oasmodel/parser"
	"github.com/erraggy/oasmodel/value"
)

// Command is a reversible change to a document.
//
// A command records everything it needs (node paths, structural positions,
// serialized values) when it is built, so it can be executed against the
// document it was built from or against an equal copy. Execute and Undo
// must alternate, starting with Execute; anything else returns a
// CommandError wrapping oaserrors.ErrCommandInvariant.
type Command interface {
	// Type is the command name used in serialized envelopes.
	Type() string
	Execute(doc *model.Document) error
	Undo(doc *model.Document) error
}

// reader builds fresh nodes from snapshots on execute and undo.
var reader = parser.NewReader(nil)

// guard tracks whether a command is currently applied.
type guard struct {
	applied bool
}

func (g *guard) checkExecute(typ string) error {
	if g.applied {
		return &oaserrors.CommandError{Command: typ, Message: "already executed"}
	}
	return nil
}

func (g *guard) checkUndo(typ string) error {
	if !g.applied {
		return &oaserrors.CommandError{Command: typ, Message: "undo without a prior execute"}
	}
	return nil
}

// IsApplied reports whether the command has been executed and not undone.
func (g *guard) IsApplied() bool { return g.applied }

// Snapshot is a serialized node or property value. It encodes as plain JSON
// and decodes preserving mapping order.
type Snapshot struct {
	Value any
}

// MarshalJSON implements json.Marshaler.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	return parser.MarshalJSON(s.Value, "")
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	v, err := parser.ParseText(data)
	if err != nil {
		return err
	}
	s.Value = v
	return nil
}

func pathOf(n *model.Node) (nodepath.Path, error) {
	if n == nil {
		return nodepath.Path{}, &oaserrors.StructuralError{Reason: oaserrors.ReasonInvalidState, Message: "nil node"}
	}
	return n.Path()
}

// resolveKind resolves p and checks that it addresses a node of kind.
func resolveKind(doc *model.Document, p nodepath.Path, kind model.Kind) (*model.Node, error) {
	n, err := doc.Resolve(p)
	if err != nil {
		return nil, err
	}
	if n.Kind() != kind {
		return nil, &oaserrors.StructuralError{
			Path:    p.String(),
			Reason:  oaserrors.ReasonInvalidState,
			Message: fmt.Sprintf("expected a %s node, found %s", kind, n.Kind()),
		}
	}
	return n, nil
}

// childAt returns the child of parent at pos and checks its kind.
func childAt(parent *model.Node, parentPath nodepath.Path, pos model.Position, kind model.Kind) (*model.Node, error) {
	n := parent.ChildAt(pos)
	if n == nil {
		return nil, &oaserrors.StructuralError{
			Path:    parentPath.String(),
			Reason:  oaserrors.ReasonNodeNotFound,
			Message: fmt.Sprintf("no %s node at %+v", kind, pos),
		}
	}
	if n.Kind() != kind {
		return nil, &oaserrors.StructuralError{
			Path:    parentPath.String(),
			Reason:  oaserrors.ReasonInvalidState,
			Message: fmt.Sprintf("expected a %s node at %+v, found %s", kind, pos, n.Kind()),
		}
	}
	return n, nil
}

func readNode(doc *model.Document, kind model.Kind, snap Snapshot) (*model.Node, error) {
	return reader.ReadNode(doc.Type(), kind, value.Clone(snap.Value))
}

// swap replaces the node at p with one read from snap, keeping its position.
func swap(doc *model.Document, p nodepath.Path, kind model.Kind, snap Snapshot) error {
	target, err := resolveKind(doc, p, kind)
	if err != nil {
		return err
	}
	if target.IsRoot() {
		return &oaserrors.StructuralError{Path: p.String(), Message: "the document root cannot be replaced"}
	}
	n, err := readNode(doc, kind, snap)
	if err != nil {
		return err
	}
	parent := target.Parent()
	pos, err := target.Detach()
	if err != nil {
		return err
	}
	if err := n.Attach(parent, pos); err != nil {
		if restoreErr := target.Attach(parent, pos); restoreErr != nil {
			return fmt.Errorf("command: %w (restore failed: %v)", err, restoreErr)
		}
		return err
	}
	return nil
}

func checkCompatible(op string, target, n *model.Node) error {
	if n == nil {
		return &oaserrors.StructuralError{Reason: oaserrors.ReasonInvalidState, Message: "nil node"}
	}
	if n.Type() != target.Type() {
		return &oaserrors.UnsupportedError{
			Operation:    op,
			Reason:       oaserrors.ReasonConversion,
			Kind:         string(n.Kind()),
			DocumentType: n.Type().String(),
			Target:       target.Type().String(),
		}
	}
	return nil
}
