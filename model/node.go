package model

import (
	"fmt"
	"iter"
	"slices"

	"github.com/erraggy/oasmodel/nodepath"
	"github.com/erraggy/oasmodel/oaserrors"
	"github.com/erraggy/oasmodel/value"
)

// slot is one named property of a node. val is a generic value, a *Node,
// a *List or a *Registry.
type slot struct {
	name string
	val  any
}

// Node is a typed element of a document tree.
//
// Parent and document references are non-owning. A node is attached when it
// has a parent, and rooted when it is reachable from a Document; detached
// nodes stay valid and can be attached elsewhere in a document of the same
// type.
type Node struct {
	kind   Kind
	typ    DocumentType
	doc    *Document
	parent *Node
	field  string // parent property holding this node, "" for parent entries
	name   string // key when held in a keyed collection

	slots    []slot
	entries  *Registry
	ext      *value.Map
	problems []Problem
}

// NewNode creates a standalone node of the given kind and document type.
func NewNode(kind Kind, typ DocumentType) *Node {
	return &Node{kind: kind, typ: typ}
}

// NewChild creates a standalone node of kind with the same document type as n.
// The node is not attached; use SetChild, List.Append, Registry.Put or Attach.
func (n *Node) NewChild(kind Kind) *Node {
	return NewNode(kind, n.typ)
}

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// Type returns the document type the node belongs to.
func (n *Node) Type() DocumentType { return n.typ }

// Document returns the owning document, or nil when the node is not rooted.
func (n *Node) Document() *Document { return n.doc }

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Field returns the parent property holding n. It is empty for the root,
// for detached nodes, and for nodes held in the parent's own entries.
func (n *Node) Field() string { return n.field }

// Name returns the key under which n is held in a keyed collection.
// Detached nodes keep their last name.
func (n *Node) Name() string { return n.name }

// IsRoot reports whether n is the root of a document.
func (n *Node) IsRoot() bool { return n.doc != nil && n.doc.root == n }

// IsAttached reports whether n has a parent.
func (n *Node) IsAttached() bool { return n.parent != nil }

func (n *Node) slotIndex(name string) int {
	for i := range n.slots {
		if n.slots[i].name == name {
			return i
		}
	}
	return -1
}

func (n *Node) setSlot(name string, v any) {
	if i := n.slotIndex(name); i >= 0 {
		n.slots[i].val = v
		return
	}
	n.slots = append(n.slots, slot{name: name, val: v})
}

// Get returns the raw property value: a generic value, *Node, *List or *Registry.
func (n *Node) Get(name string) (any, bool) {
	if i := n.slotIndex(name); i >= 0 {
		return n.slots[i].val, true
	}
	return nil, false
}

// Has reports whether the property is set.
func (n *Node) Has(name string) bool {
	return n.slotIndex(name) >= 0
}

// Text returns a string property, or "" when unset or not a string.
func (n *Node) Text(name string) string {
	v, _ := n.Get(name)
	s, _ := v.(string)
	return s
}

// PropertyNames returns the set property names in order.
func (n *Node) PropertyNames() []string {
	names := make([]string, len(n.slots))
	for i, s := range n.slots {
		names[i] = s.name
	}
	return names
}

// Properties iterates properties in order.
func (n *Node) Properties() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, s := range n.slots {
			if !yield(s.name, s.val) {
				return
			}
		}
	}
}

// Set stores a generic value property. Use SetChild, EnsureList or
// EnsureRegistry for node-valued properties.
func (n *Node) Set(name string, v any) error {
	switch v.(type) {
	case *Node, *List, *Registry:
		return &oaserrors.StructuralError{
			Message: fmt.Sprintf("property %q: Set accepts generic values only, got %T", name, v),
		}
	}
	n.releaseSlot(name)
	n.setSlot(name, v)
	return nil
}

// SetAt is Set for a property that is not yet present: it is inserted at
// ordinal i, clamped to the property count. An existing property keeps its
// position.
func (n *Node) SetAt(i int, name string, v any) error {
	if n.Has(name) {
		return n.Set(name, v)
	}
	if err := n.Set(name, v); err != nil {
		return err
	}
	last := len(n.slots) - 1
	s := n.slots[last]
	i = min(max(i, 0), last)
	copy(n.slots[i+1:], n.slots[i:last])
	n.slots[i] = s
	return nil
}

// PropertyIndex returns the ordinal of a property, or -1.
func (n *Node) PropertyIndex(name string) int {
	return n.slotIndex(name)
}

// Unset removes a property, detaching any nodes it held.
func (n *Node) Unset(name string) bool {
	i := n.slotIndex(name)
	if i < 0 {
		return false
	}
	n.releaseSlot(name)
	n.slots = slices.Delete(n.slots, i, i+1)
	return true
}

func (n *Node) releaseSlot(name string) {
	v, ok := n.Get(name)
	if !ok {
		return
	}
	switch t := v.(type) {
	case *Node:
		t.release()
	case *List:
		for _, c := range t.items {
			c.release()
		}
		t.owner = nil
	case *Registry:
		for _, k := range t.keys {
			t.items[k].release()
		}
		t.owner = nil
	}
}

// Child returns the single child node held by field, or nil.
func (n *Node) Child(field string) *Node {
	v, _ := n.Get(field)
	c, _ := v.(*Node)
	return c
}

// SetChild attaches child under field, replacing (and detaching) any previous value.
func (n *Node) SetChild(field string, child *Node) error {
	if err := checkField(field); err != nil {
		return err
	}
	if err := n.canAdopt(child); err != nil {
		return err
	}
	n.releaseSlot(field)
	n.setSlot(field, child)
	n.adopt(child, field, child.name)
	return nil
}

// CreateChild creates a node of kind and attaches it under field.
func (n *Node) CreateChild(field string, kind Kind) (*Node, error) {
	c := n.NewChild(kind)
	if err := n.SetChild(field, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns the ordered child collection held by field, or nil.
func (n *Node) List(field string) *List {
	v, _ := n.Get(field)
	l, _ := v.(*List)
	return l
}

// EnsureList returns the list held by field, creating an empty one if unset.
func (n *Node) EnsureList(field string) (*List, error) {
	if err := checkField(field); err != nil {
		return nil, err
	}
	v, ok := n.Get(field)
	if !ok {
		l := &List{owner: n, field: field}
		n.setSlot(field, l)
		return l, nil
	}
	if l, ok := v.(*List); ok {
		return l, nil
	}
	return nil, &oaserrors.StructuralError{Message: fmt.Sprintf("property %q holds %T, not a list", field, v)}
}

// Registry returns the keyed child collection held by field, or nil.
func (n *Node) Registry(field string) *Registry {
	v, _ := n.Get(field)
	r, _ := v.(*Registry)
	return r
}

// EnsureRegistry returns the keyed collection held by field, creating an empty one if unset.
func (n *Node) EnsureRegistry(field string) (*Registry, error) {
	if err := checkField(field); err != nil {
		return nil, err
	}
	v, ok := n.Get(field)
	if !ok {
		r := newRegistry(n, field)
		n.setSlot(field, r)
		return r, nil
	}
	if r, ok := v.(*Registry); ok {
		return r, nil
	}
	return nil, &oaserrors.StructuralError{Message: fmt.Sprintf("property %q holds %T, not a keyed collection", field, v)}
}

// Entries returns the node's own keyed children (path items of a paths
// node, responses of a responses node), or nil if it has none.
func (n *Node) Entries() *Registry { return n.entries }

// EnsureEntries returns the node's own keyed children, creating them if needed.
func (n *Node) EnsureEntries() *Registry {
	if n.entries == nil {
		n.entries = newRegistry(n, "")
	}
	return n.entries
}

// Extensions returns the extension bag: properties the node does not
// recognize, kept verbatim.
func (n *Node) Extensions() *value.Map {
	if n.ext == nil {
		n.ext = value.NewMap(0)
	}
	return n.ext
}

// ExtensionEntries iterates the extension bag without allocating it.
func (n *Node) ExtensionEntries() iter.Seq2[string, any] { return n.ext.All() }

// Extension returns one extension property.
func (n *Node) Extension(name string) (any, bool) {
	return n.ext.Get(name)
}

// SetExtension stores an extension property.
func (n *Node) SetExtension(name string, v any) {
	n.Extensions().Set(name, v)
}

// DeleteExtension removes an extension property.
func (n *Node) DeleteExtension(name string) bool {
	return n.ext.Delete(name)
}

// Children iterates direct child nodes in property order, then entries.
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, s := range n.slots {
			switch t := s.val.(type) {
			case *Node:
				if !yield(t) {
					return
				}
			case *List:
				for _, c := range t.items {
					if !yield(c) {
						return
					}
				}
			case *Registry:
				for _, k := range t.keys {
					if !yield(t.items[k]) {
						return
					}
				}
			}
		}
		if n.entries != nil {
			for _, k := range n.entries.keys {
				if !yield(n.entries.items[k]) {
					return
				}
			}
		}
	}
}

// canAdopt checks the ownership rules for attaching child under n.
func (n *Node) canAdopt(child *Node) error {
	if child == nil {
		return &oaserrors.StructuralError{Message: "cannot attach a nil node"}
	}
	if child.parent != nil || child.IsRoot() {
		return &oaserrors.StructuralError{Message: fmt.Sprintf("%s node already has a parent", child.kind)}
	}
	if child.typ != n.typ {
		return &oaserrors.UnsupportedError{
			Operation:    "attach",
			Reason:       oaserrors.ReasonConversion,
			Kind:         string(child.kind),
			DocumentType: child.typ.String(),
			Target:       n.typ.String(),
		}
	}
	for p := n; p != nil; p = p.parent {
		if p == child {
			return &oaserrors.StructuralError{Message: "attaching a node beneath itself would create a cycle"}
		}
	}
	return nil
}

func (n *Node) adopt(child *Node, field, name string) {
	child.parent = n
	child.field = field
	child.name = name
	child.setDocument(n.doc)
}

func (n *Node) release() {
	n.parent = nil
	n.field = ""
	n.setDocument(nil)
}

func (n *Node) setDocument(d *Document) {
	n.doc = d
	for c := range n.Children() {
		c.setDocument(d)
	}
}

// positionOf locates child within n.
func (n *Node) positionOf(child *Node) (Position, bool) {
	if child.parent != n {
		return Position{}, false
	}
	if child.field == "" {
		if n.entries == nil {
			return Position{}, false
		}
		idx := n.entries.IndexOf(child.name)
		return Position{Shape: ShapeMap, Key: child.name, Index: idx}, idx >= 0
	}
	i := n.slotIndex(child.field)
	if i < 0 {
		return Position{}, false
	}
	switch t := n.slots[i].val.(type) {
	case *Node:
		return Position{Field: child.field, Shape: ShapeNode, Index: i}, t == child
	case *List:
		idx := t.IndexOf(child)
		return Position{Field: child.field, Shape: ShapeList, Index: idx}, idx >= 0
	case *Registry:
		idx := t.IndexOf(child.name)
		return Position{Field: child.field, Shape: ShapeMap, Key: child.name, Index: idx}, idx >= 0
	}
	return Position{}, false
}

// Position returns the structural slot n occupies within its parent.
func (n *Node) Position() (Position, error) {
	if n.parent == nil {
		return Position{}, &oaserrors.StructuralError{
			Reason:  oaserrors.ReasonInvalidState,
			Message: fmt.Sprintf("%s node is not attached", n.kind),
		}
	}
	pos, ok := n.parent.positionOf(n)
	if !ok {
		return Position{}, &oaserrors.StructuralError{Message: fmt.Sprintf("%s node is missing from its parent", n.kind)}
	}
	return pos, nil
}

// ChildAt returns the child occupying pos, or nil. For ShapeNode only the
// field is consulted.
func (n *Node) ChildAt(pos Position) *Node {
	switch pos.Shape {
	case ShapeNode:
		return n.Child(pos.Field)
	case ShapeList:
		return n.List(pos.Field).At(pos.Index)
	case ShapeMap:
		r := n.entries
		if pos.Field != "" {
			r = n.Registry(pos.Field)
		}
		c, _ := r.Get(pos.Key)
		return c
	}
	return nil
}

// Detach removes n from its parent and returns the position it occupied.
// The node keeps its kind, properties and name and can be attached again.
func (n *Node) Detach() (Position, error) {
	pos, err := n.Position()
	if err != nil {
		return Position{}, err
	}
	p := n.parent
	switch pos.Shape {
	case ShapeNode:
		p.slots = slices.Delete(p.slots, pos.Index, pos.Index+1)
	case ShapeList:
		p.List(pos.Field).items = slices.Delete(p.List(pos.Field).items, pos.Index, pos.Index+1)
	case ShapeMap:
		r := p.entries
		if pos.Field != "" {
			r = p.Registry(pos.Field)
		}
		r.remove(pos.Key)
	}
	n.release()
	return pos, nil
}

// Attach inserts n into parent at pos. For ShapeNode, Index is the property
// ordinal; for lists and keyed collections it is the ordinal within the
// collection. Out-of-range indexes are clamped.
func (n *Node) Attach(parent *Node, pos Position) error {
	if err := pos.Validate(); err != nil {
		return err
	}
	if err := parent.canAdopt(n); err != nil {
		return err
	}
	switch pos.Shape {
	case ShapeNode:
		if parent.Has(pos.Field) {
			return &oaserrors.StructuralError{Message: fmt.Sprintf("property %q is already set", pos.Field)}
		}
		idx := min(max(pos.Index, 0), len(parent.slots))
		parent.slots = slices.Insert(parent.slots, idx, slot{name: pos.Field, val: n})
		parent.adopt(n, pos.Field, n.name)
		return nil
	case ShapeList:
		l, err := parent.EnsureList(pos.Field)
		if err != nil {
			return err
		}
		return l.Insert(pos.Index, n)
	case ShapeMap:
		var r *Registry
		if pos.Field == "" {
			r = parent.EnsureEntries()
		} else {
			var err error
			if r, err = parent.EnsureRegistry(pos.Field); err != nil {
				return err
			}
		}
		return r.Insert(pos.Index, pos.Key, n)
	}
	return &oaserrors.StructuralError{Message: fmt.Sprintf("cannot attach at shape %s", pos.Shape)}
}

// Clone returns a deep copy of the subtree rooted at n. The copy has the same
// kind, document type, name, properties and extensions, and no parent or
// document. Validation problems are not copied.
func (n *Node) Clone() *Node {
	c := &Node{kind: n.kind, typ: n.typ, name: n.name}
	c.slots = make([]slot, 0, len(n.slots))
	for _, s := range n.slots {
		switch t := s.val.(type) {
		case *Node:
			cc := t.Clone()
			c.slots = append(c.slots, slot{name: s.name, val: cc})
			c.adopt(cc, s.name, cc.name)
		case *List:
			l := &List{owner: c, field: s.name, items: make([]*Node, 0, len(t.items))}
			for _, item := range t.items {
				ic := item.Clone()
				l.items = append(l.items, ic)
				c.adopt(ic, s.name, ic.name)
			}
			c.slots = append(c.slots, slot{name: s.name, val: l})
		case *Registry:
			c.slots = append(c.slots, slot{name: s.name, val: t.cloneFor(c)})
		default:
			c.slots = append(c.slots, slot{name: s.name, val: value.Clone(t)})
		}
	}
	if n.entries != nil {
		c.entries = n.entries.cloneFor(c)
	}
	if n.ext != nil {
		c.ext = n.ext.Clone()
	}
	return c
}

// ToValue serializes the subtree rooted at n to a generic value: properties
// in order, then entries, then the extension bag.
func (n *Node) ToValue() *value.Map {
	size := len(n.slots) + n.ext.Len()
	if n.entries != nil {
		size += n.entries.Len()
	}
	m := value.NewMap(size)
	for _, s := range n.slots {
		switch t := s.val.(type) {
		case *Node:
			m.Set(s.name, t.ToValue())
		case *List:
			items := make([]any, len(t.items))
			for i, item := range t.items {
				items[i] = item.ToValue()
			}
			m.Set(s.name, items)
		case *Registry:
			m.Set(s.name, t.toValue())
		default:
			m.Set(s.name, value.Clone(t))
		}
	}
	if n.entries != nil {
		for k, c := range n.entries.All() {
			m.Set(k, c.ToValue())
		}
	}
	for k, v := range n.ext.All() {
		m.Set(k, value.Clone(v))
	}
	return m
}

// Problems returns the validation problems attached to n by the latest pass.
func (n *Node) Problems() []Problem {
	return slices.Clone(n.problems)
}

// AddProblem attaches a validation problem to n.
func (n *Node) AddProblem(p Problem) {
	n.problems = append(n.problems, p)
}

// ClearProblems removes all validation problems from n.
func (n *Node) ClearProblems() {
	n.problems = nil
}

// checkField rejects names that cannot be written as a bare path segment.
// Child nodes live only under such names so that every node keeps exactly
// one resolvable path.
func checkField(field string) error {
	if nodepath.ValidPropertyName(field) {
		return nil
	}
	return &oaserrors.StructuralError{
		Reason:  oaserrors.ReasonMalformedPath,
		Message: fmt.Sprintf("invalid property name %q for a child node", field),
	}
}
