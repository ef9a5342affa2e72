package command

import (
	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/nodepath"
	"github.com/erraggy/oasmodel/oaserrors"
)

// AddNodeCommand attaches a new child node under a parent.
type AddNodeCommand struct {
	guard
	Parent   nodepath.Path  `json:"parent"`
	Position model.Position `json:"position"`
	Kind     model.Kind     `json:"kind"`
	Value    Snapshot       `json:"value"`
}

// AddNode builds a command attaching a copy of child under parent at pos.
// For map positions pos.Key is the new entry's key; out-of-range indexes are
// clamped when the command executes.
func AddNode(parent *model.Node, pos model.Position, child *model.Node) (*AddNodeCommand, error) {
	path, err := pathOf(parent)
	if err != nil {
		return nil, err
	}
	if err := checkCompatible("add", parent, child); err != nil {
		return nil, err
	}
	if pos.Shape == model.ShapeValue {
		return nil, &oaserrors.StructuralError{Path: path.String(), Message: "cannot add a node at a value position"}
	}
	if err := pos.Validate(); err != nil {
		return nil, err
	}
	if pos.Shape == model.ShapeMap && pos.Key == "" {
		return nil, &oaserrors.StructuralError{Path: path.String(), Message: "a keyed position needs a key"}
	}
	return &AddNodeCommand{
		Parent:   path,
		Position: pos,
		Kind:     child.Kind(),
		Value:    Snapshot{child.ToValue()},
	}, nil
}

// Type implements Command.
func (c *AddNodeCommand) Type() string { return "AddNode" }

// Execute implements Command.
func (c *AddNodeCommand) Execute(doc *model.Document) error {
	if err := c.checkExecute(c.Type()); err != nil {
		return err
	}
	parent, err := doc.Resolve(c.Parent)
	if err != nil {
		return err
	}
	n, err := readNode(doc, c.Kind, c.Value)
	if err != nil {
		return err
	}
	if err := n.Attach(parent, c.Position); err != nil {
		return err
	}
	// Record where the node actually landed so undo finds it after clamping.
	if pos, err := n.Position(); err == nil {
		c.Position = pos
	}
	c.applied = true
	return nil
}

// Undo implements Command.
func (c *AddNodeCommand) Undo(doc *model.Document) error {
	if err := c.checkUndo(c.Type()); err != nil {
		return err
	}
	parent, err := doc.Resolve(c.Parent)
	if err != nil {
		return err
	}
	n, err := childAt(parent, c.Parent, c.Position, c.Kind)
	if err != nil {
		return err
	}
	if _, err := n.Detach(); err != nil {
		return err
	}
	c.applied = false
	return nil
}

// RemoveNodeCommand detaches a node from its parent. Undo reattaches an
// equal node at the same position.
type RemoveNodeCommand struct {
	guard
	Parent   nodepath.Path  `json:"parent"`
	Position model.Position `json:"position"`
	Kind     model.Kind     `json:"kind"`
	Value    Snapshot       `json:"value"`
}

// RemoveNode builds a command removing n, which must be attached.
func RemoveNode(n *model.Node) (*RemoveNodeCommand, error) {
	if n == nil {
		return nil, &oaserrors.StructuralError{Reason: oaserrors.ReasonInvalidState, Message: "nil node"}
	}
	pos, err := n.Position()
	if err != nil {
		return nil, err
	}
	path, err := pathOf(n.Parent())
	if err != nil {
		return nil, err
	}
	return &RemoveNodeCommand{
		Parent:   path,
		Position: pos,
		Kind:     n.Kind(),
		Value:    Snapshot{n.ToValue()},
	}, nil
}

// Type implements Command.
func (c *RemoveNodeCommand) Type() string { return "RemoveNode" }

// Execute implements Command.
func (c *RemoveNodeCommand) Execute(doc *model.Document) error {
	if err := c.checkExecute(c.Type()); err != nil {
		return err
	}
	parent, err := doc.Resolve(c.Parent)
	if err != nil {
		return err
	}
	n, err := childAt(parent, c.Parent, c.Position, c.Kind)
	if err != nil {
		return err
	}
	pos, err := n.Detach()
	if err != nil {
		return err
	}
	c.Position = pos
	c.applied = true
	return nil
}

// Undo implements Command.
func (c *RemoveNodeCommand) Undo(doc *model.Document) error {
	if err := c.checkUndo(c.Type()); err != nil {
		return err
	}
	parent, err := doc.Resolve(c.Parent)
	if err != nil {
		return err
	}
	n, err := readNode(doc, c.Kind, c.Value)
	if err != nil {
		return err
	}
	if err := n.Attach(parent, c.Position); err != nil {
		return err
	}
	c.applied = false
	return nil
}

// RenameNodeCommand changes the key of a keyed node, keeping its position
// among its siblings.
type RenameNodeCommand struct {
	guard
	Parent nodepath.Path `json:"parent"`
	Field  string        `json:"field,omitempty"`
	From   string        `json:"from"`
	To     string        `json:"to"`
}

// RenameNode builds a command renaming the keyed node n to newName.
func RenameNode(n *model.Node, newName string) (*RenameNodeCommand, error) {
	if n == nil {
		return nil, &oaserrors.StructuralError{Reason: oaserrors.ReasonInvalidState, Message: "nil node"}
	}
	pos, err := n.Position()
	if err != nil {
		return nil, err
	}
	path, err := pathOf(n.Parent())
	if err != nil {
		return nil, err
	}
	if pos.Shape != model.ShapeMap {
		return nil, &oaserrors.StructuralError{
			Path:    path.String(),
			Reason:  oaserrors.ReasonInvalidState,
			Message: "only keyed nodes can be renamed",
		}
	}
	if newName == "" {
		return nil, &oaserrors.StructuralError{Path: path.String(), Message: "new name is empty"}
	}
	return &RenameNodeCommand{Parent: path, Field: pos.Field, From: pos.Key, To: newName}, nil
}

// Type implements Command.
func (c *RenameNodeCommand) Type() string { return "RenameNode" }

// Execute implements Command.
func (c *RenameNodeCommand) Execute(doc *model.Document) error {
	if err := c.checkExecute(c.Type()); err != nil {
		return err
	}
	if err := c.rename(doc, c.From, c.To); err != nil {
		return err
	}
	c.applied = true
	return nil
}

// Undo implements Command.
func (c *RenameNodeCommand) Undo(doc *model.Document) error {
	if err := c.checkUndo(c.Type()); err != nil {
		return err
	}
	if err := c.rename(doc, c.To, c.From); err != nil {
		return err
	}
	c.applied = false
	return nil
}

func (c *RenameNodeCommand) rename(doc *model.Document, from, to string) error {
	parent, err := doc.Resolve(c.Parent)
	if err != nil {
		return err
	}
	r := parent.Entries()
	if c.Field != "" {
		r = parent.Registry(c.Field)
	}
	if r == nil {
		return &oaserrors.StructuralError{
			Path:    c.Parent.String(),
			Reason:  oaserrors.ReasonNodeNotFound,
			Message: "no keyed collection to rename in",
		}
	}
	return r.Rename(from, to)
}
