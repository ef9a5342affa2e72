package model

import (
	"iter"

	"github.com/erraggy/oasmodel/nodepath"
	"github.com/erraggy/oasmodel/oaserrors"
)

// Document is the root of one parsed description. It owns every node
// reachable from its root.
//
// A Document is a single-writer resource: it does no locking, and callers
// must serialize access, including between commands and validation passes.
type Document struct {
	typ  DocumentType
	root *Node
}

// NewDocument creates a document whose root is an empty node of rootKind.
func NewDocument(typ DocumentType, rootKind Kind) *Document {
	d := &Document{typ: typ}
	d.root = &Node{kind: rootKind, typ: typ, doc: d}
	return d
}

// AdoptRoot creates a document around an existing standalone node.
func AdoptRoot(root *Node) (*Document, error) {
	if root.parent != nil || root.doc != nil {
		return nil, &oaserrors.StructuralError{Message: "document root must be a standalone node"}
	}
	d := &Document{typ: root.typ, root: root}
	root.setDocument(d)
	return d, nil
}

// Type returns the document type.
func (d *Document) Type() DocumentType { return d.typ }

// Root returns the root node.
func (d *Document) Root() *Node { return d.root }

// Import returns a standalone deep copy of n that can be attached into d.
// Nodes of another document type cannot be imported.
func (d *Document) Import(n *Node) (*Node, error) {
	if n.typ != d.typ {
		return nil, &oaserrors.UnsupportedError{
			Operation:    "import",
			Reason:       oaserrors.ReasonConversion,
			Kind:         string(n.kind),
			DocumentType: n.typ.String(),
			Target:       d.typ.String(),
		}
	}
	return n.Clone(), nil
}

// Clone returns an independent deep copy of the document.
func (d *Document) Clone() *Document {
	c, _ := AdoptRoot(d.root.Clone())
	return c
}

// Resolve returns the node addressed by p.
func (d *Document) Resolve(p nodepath.Path) (*Node, error) {
	return resolve(d.root, p)
}

// ResolveString parses s and resolves it.
func (d *Document) ResolveString(s string) (*Node, error) {
	p, err := nodepath.Parse(s)
	if err != nil {
		return nil, err
	}
	return d.Resolve(p)
}

// Nodes iterates every node of the document in depth-first pre-order.
func (d *Document) Nodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		preorder(d.root, yield)
	}
}

func preorder(n *Node, yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for c := range n.Children() {
		if !preorder(c, yield) {
			return false
		}
	}
	return true
}

// Problems returns the problems attached to all nodes, in pre-order.
func (d *Document) Problems() []Problem {
	out := []Problem{}
	for n := range d.Nodes() {
		out = append(out, n.problems...)
	}
	return out
}

// ProblemCodes returns the error codes of all attached problems, in pre-order.
func (d *Document) ProblemCodes() []string {
	out := []string{}
	for n := range d.Nodes() {
		for _, p := range n.problems {
			out = append(out, p.ErrorCode)
		}
	}
	return out
}

// ClearProblems removes the problems attached to every node.
func (d *Document) ClearProblems() {
	for n := range d.Nodes() {
		n.problems = nil
	}
}
