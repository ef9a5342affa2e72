package command

import (
	"fmt"

	"github.com/erraggy/oasmodel/catalog"
	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/nodepath"
	"github.com/erraggy/oasmodel/oaserrors"
	"github.com/erraggy/oasmodel/value"
)

// SetPropertyCommand sets or removes a value property of a node. Names the
// node's kind does not declare, including x- extensions, live in the
// extension bag.
type SetPropertyCommand struct {
	guard
	Path     nodepath.Path `json:"path"`
	Kind     model.Kind    `json:"kind"`
	Name     string        `json:"name"`
	Delete   bool          `json:"delete,omitempty"`
	Value    Snapshot      `json:"value"`
	HadOld   bool          `json:"hadOld"`
	Old      Snapshot      `json:"old"`
	OldIndex int           `json:"oldIndex"` // ordinal restored on undo
}

// SetProperty builds a command storing v under name on n. v may be any
// value value.Normalize accepts.
func SetProperty(n *model.Node, name string, v any) (*SetPropertyCommand, error) {
	norm, err := value.Normalize(v)
	if err != nil {
		return nil, err
	}
	return newSetProperty(n, name, norm, false)
}

// DeleteProperty builds a command removing the value property name from n.
func DeleteProperty(n *model.Node, name string) (*SetPropertyCommand, error) {
	return newSetProperty(n, name, nil, true)
}

func newSetProperty(n *model.Node, name string, v any, del bool) (*SetPropertyCommand, error) {
	path, err := pathOf(n)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, &oaserrors.StructuralError{Path: path.String(), Message: "property name is empty"}
	}
	if err := checkValueProperty(n, name); err != nil {
		return nil, err
	}
	old, idx, had := getProperty(n, name)
	return &SetPropertyCommand{
		Path:     path,
		Kind:     n.Kind(),
		Name:     name,
		Delete:   del,
		Value:    Snapshot{v},
		HadOld:   had,
		Old:      Snapshot{value.Clone(old)},
		OldIndex: idx,
	}, nil
}

// Type implements Command.
func (c *SetPropertyCommand) Type() string { return "SetProperty" }

// Execute implements Command.
func (c *SetPropertyCommand) Execute(doc *model.Document) error {
	if err := c.checkExecute(c.Type()); err != nil {
		return err
	}
	n, err := resolveKind(doc, c.Path, c.Kind)
	if err != nil {
		return err
	}
	if c.Delete {
		deleteProperty(n, c.Name)
	} else if err := setProperty(n, -1, c.Name, value.Clone(c.Value.Value)); err != nil {
		return err
	}
	c.applied = true
	return nil
}

// Undo implements Command.
func (c *SetPropertyCommand) Undo(doc *model.Document) error {
	if err := c.checkUndo(c.Type()); err != nil {
		return err
	}
	n, err := resolveKind(doc, c.Path, c.Kind)
	if err != nil {
		return err
	}
	if c.HadOld {
		if err := setProperty(n, c.OldIndex, c.Name, value.Clone(c.Old.Value)); err != nil {
			return err
		}
	} else {
		deleteProperty(n, c.Name)
	}
	c.applied = false
	return nil
}

// inSlots reports whether name is stored among n's declared properties
// rather than in its extension bag.
func inSlots(n *model.Node, name string) bool {
	if catalog.IsExtension(name) {
		return false
	}
	if n.Has(name) {
		return true
	}
	cat, err := catalog.For(n.Type())
	if err != nil {
		return false
	}
	spec, ok := cat.Kind(n.Kind())
	if !ok {
		return false
	}
	_, ok = spec.Field(name)
	return ok
}

func checkValueProperty(n *model.Node, name string) error {
	if !inSlots(n, name) {
		return nil
	}
	if cur, ok := n.Get(name); ok {
		switch cur.(type) {
		case *model.Node, *model.List, *model.Registry:
			return &oaserrors.UnsupportedError{
				Operation: "set property",
				Kind:      string(n.Kind()),
				Message:   fmt.Sprintf("property %q holds child nodes", name),
			}
		}
		return nil
	}
	cat, err := catalog.For(n.Type())
	if err != nil {
		return err
	}
	if spec, ok := cat.Kind(n.Kind()); ok {
		if f, ok := spec.Field(name); ok && f.Shape != model.ShapeValue {
			return &oaserrors.UnsupportedError{
				Operation: "set property",
				Kind:      string(n.Kind()),
				Message:   fmt.Sprintf("property %q holds child nodes", name),
			}
		}
	}
	return nil
}

func getProperty(n *model.Node, name string) (any, int, bool) {
	if inSlots(n, name) {
		v, ok := n.Get(name)
		return v, n.PropertyIndex(name), ok
	}
	v, ok := n.Extension(name)
	return v, n.Extensions().IndexOf(name), ok
}

// setProperty stores v under name. A missing property is inserted at idx,
// or appended when idx is negative.
func setProperty(n *model.Node, idx int, name string, v any) error {
	if inSlots(n, name) {
		if idx < 0 {
			return n.Set(name, v)
		}
		return n.SetAt(idx, name, v)
	}
	if idx < 0 {
		n.SetExtension(name, v)
		return nil
	}
	n.Extensions().Insert(idx, name, v)
	return nil
}

func deleteProperty(n *model.Node, name string) {
	if inSlots(n, name) {
		n.Unset(name)
		return
	}
	n.DeleteExtension(name)
}
