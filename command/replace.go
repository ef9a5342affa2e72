package command

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/nodepath"
	"github.com/erraggy/oasmodel/oaserrors"
	"github.com/erraggy/oasmodel/parser"
	"github.com/erraggy/oasmodel/value"
)

// ReplaceNodeCommand swaps a node for a new definition at the same
// structural position: same property slot, list index or key.
type ReplaceNodeCommand struct {
	guard
	Path        nodepath.Path `json:"path"`
	Kind        model.Kind    `json:"kind"`
	Old         Snapshot      `json:"old"`
	Replacement Snapshot      `json:"replacement"`
}

// ReplaceNode builds a command replacing old with replacement. Both must
// have the same kind and document type; old must be attached in a document.
func ReplaceNode(old, replacement *model.Node) (*ReplaceNodeCommand, error) {
	path, err := pathOf(old)
	if err != nil {
		return nil, err
	}
	if old.IsRoot() {
		return nil, &oaserrors.StructuralError{Path: path.String(), Message: "the document root cannot be replaced"}
	}
	if err := checkCompatible("replace", old, replacement); err != nil {
		return nil, err
	}
	if replacement.Kind() != old.Kind() {
		return nil, &oaserrors.UnsupportedError{
			Operation:    "replace",
			Reason:       oaserrors.ReasonConversion,
			Kind:         string(replacement.Kind()),
			DocumentType: old.Type().String(),
			Target:       string(old.Kind()),
		}
	}
	return &ReplaceNodeCommand{
		Path:        path,
		Kind:        old.Kind(),
		Old:         Snapshot{old.ToValue()},
		Replacement: Snapshot{replacement.ToValue()},
	}, nil
}

// Type implements Command.
func (c *ReplaceNodeCommand) Type() string { return "ReplaceNode" }

// Execute implements Command.
func (c *ReplaceNodeCommand) Execute(doc *model.Document) error {
	if err := c.checkExecute(c.Type()); err != nil {
		return err
	}
	if err := swap(doc, c.Path, c.Kind, c.Replacement); err != nil {
		return err
	}
	c.applied = true
	return nil
}

// Undo implements Command.
func (c *ReplaceNodeCommand) Undo(doc *model.Document) error {
	if err := c.checkUndo(c.Type()); err != nil {
		return err
	}
	if err := swap(doc, c.Path, c.Kind, c.Old); err != nil {
		return err
	}
	c.applied = false
	return nil
}

// PatchNodeCommand applies a JSON Patch (RFC 6902) or JSON Merge Patch
// (RFC 7386) to the serialized form of a node and replaces the node with
// the result. The patch is applied when the command is built.
type PatchNodeCommand struct {
	guard
	Path    nodepath.Path `json:"path"`
	Kind    model.Kind    `json:"kind"`
	Merge   bool          `json:"merge,omitempty"`
	Patch   Snapshot      `json:"patch"`
	Old     Snapshot      `json:"old"`
	Patched Snapshot      `json:"patched"`
}

// PatchNode builds a command applying the RFC 6902 patch document to n.
func PatchNode(n *model.Node, patch []byte) (*PatchNodeCommand, error) {
	return newPatch(n, patch, false)
}

// MergePatchNode builds a command applying the RFC 7386 merge patch to n.
func MergePatchNode(n *model.Node, patch []byte) (*PatchNodeCommand, error) {
	return newPatch(n, patch, true)
}

func newPatch(n *model.Node, patch []byte, merge bool) (*PatchNodeCommand, error) {
	path, err := pathOf(n)
	if err != nil {
		return nil, err
	}
	old := n.ToValue()
	src, err := parser.MarshalJSON(old, "")
	if err != nil {
		return nil, err
	}

	var out []byte
	if merge {
		out, err = jsonpatch.MergePatch(src, patch)
	} else {
		var p jsonpatch.Patch
		if p, err = jsonpatch.DecodePatch(patch); err == nil {
			out, err = p.Apply(src)
		}
	}
	if err != nil {
		return nil, &oaserrors.StructuralError{Path: path.String(), Message: "patch failed", Cause: err}
	}

	patched, err := parser.ParseText(out)
	if err != nil {
		return nil, err
	}
	if _, ok := patched.(*value.Map); !ok {
		return nil, &oaserrors.StructuralError{Path: path.String(), Message: fmt.Sprintf("patch must leave a mapping, got %T", patched)}
	}
	patchValue, err := parser.ParseText(patch)
	if err != nil {
		return nil, err
	}
	return &PatchNodeCommand{
		Path:    path,
		Kind:    n.Kind(),
		Merge:   merge,
		Patch:   Snapshot{patchValue},
		Old:     Snapshot{old},
		Patched: Snapshot{keepOrder(patched, old)},
	}, nil
}

// Type implements Command.
func (c *PatchNodeCommand) Type() string { return "PatchNode" }

// Execute implements Command.
func (c *PatchNodeCommand) Execute(doc *model.Document) error {
	if err := c.checkExecute(c.Type()); err != nil {
		return err
	}
	if err := swap(doc, c.Path, c.Kind, c.Patched); err != nil {
		return err
	}
	c.applied = true
	return nil
}

// Undo implements Command.
func (c *PatchNodeCommand) Undo(doc *model.Document) error {
	if err := c.checkUndo(c.Type()); err != nil {
		return err
	}
	if err := swap(doc, c.Path, c.Kind, c.Old); err != nil {
		return err
	}
	c.applied = false
	return nil
}

// keepOrder reorders the mappings of patched so that keys also present in
// orig keep orig's order and new keys follow. The patch library decodes
// objects into Go maps, which loses the document's key order.
func keepOrder(patched, orig any) any {
	switch p := patched.(type) {
	case *value.Map:
		o, ok := orig.(*value.Map)
		if !ok {
			return p
		}
		out := value.NewMap(p.Len())
		for k, ov := range o.All() {
			if pv, ok := p.Get(k); ok {
				out.Set(k, keepOrder(pv, ov))
			}
		}
		for k, pv := range p.All() {
			if !out.Has(k) {
				out.Set(k, pv)
			}
		}
		return out
	case []any:
		o, _ := orig.([]any)
		out := make([]any, len(p))
		for i, item := range p {
			if i < len(o) {
				out[i] = keepOrder(item, o[i])
			} else {
				out[i] = item
			}
		}
		return out
	}
	return patched
}
