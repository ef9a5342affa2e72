package model

import (
	"fmt"
	"iter"
	"slices"

	"github.com/erraggy/oasmodel/oaserrors"
	"github.com/erraggy/oasmodel/value"
)

// List is an ordered sequence of child nodes held by one property.
type List struct {
	owner *Node
	field string
	items []*Node
}

// Owner returns the node holding the list.
func (l *List) Owner() *Node { return l.owner }

// Field returns the property name holding the list.
func (l *List) Field() string { return l.field }

// Len returns the number of items.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the i-th item, or nil when out of range.
func (l *List) At(i int) *Node {
	if l == nil || i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// All iterates items with their indexes.
func (l *List) All() iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		if l == nil {
			return
		}
		for i, n := range l.items {
			if !yield(i, n) {
				return
			}
		}
	}
}

// IndexOf returns the index of n, or -1.
func (l *List) IndexOf(n *Node) int {
	if l == nil {
		return -1
	}
	return slices.Index(l.items, n)
}

// Append attaches n at the end of the list.
func (l *List) Append(n *Node) error {
	return l.Insert(len(l.items), n)
}

// Insert attaches n at index i, clamped to [0, Len()].
func (l *List) Insert(i int, n *Node) error {
	if l.owner == nil {
		return &oaserrors.StructuralError{Message: fmt.Sprintf("list %q no longer belongs to a node", l.field)}
	}
	if err := l.owner.canAdopt(n); err != nil {
		return err
	}
	i = min(max(i, 0), len(l.items))
	l.items = slices.Insert(l.items, i, n)
	l.owner.adopt(n, l.field, "")
	return nil
}

// Remove detaches and returns the i-th item.
func (l *List) Remove(i int) (*Node, error) {
	n := l.At(i)
	if n == nil {
		return nil, &oaserrors.StructuralError{
			Reason:  oaserrors.ReasonNodeNotFound,
			Message: fmt.Sprintf("index %d out of range for %q (len %d)", i, l.field, l.Len()),
		}
	}
	l.items = slices.Delete(l.items, i, i+1)
	n.release()
	return n, nil
}

// Registry is a keyed, insertion-ordered collection of child nodes. Each
// held node's Name is its key.
type Registry struct {
	owner *Node
	field string
	keys  []string
	items map[string]*Node
}

func newRegistry(owner *Node, field string) *Registry {
	return &Registry{owner: owner, field: field, items: make(map[string]*Node)}
}

// Owner returns the node holding the registry.
func (r *Registry) Owner() *Node { return r.owner }

// Field returns the property name holding the registry, "" for entries.
func (r *Registry) Field() string { return r.field }

// Len returns the number of entries.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Keys returns the keys in insertion order.
func (r *Registry) Keys() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.keys)
}

// Get returns the node stored under key.
func (r *Registry) Get(key string) (*Node, bool) {
	if r == nil {
		return nil, false
	}
	n, ok := r.items[key]
	return n, ok
}

// Has reports whether key is present.
func (r *Registry) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// IndexOf returns the ordinal of key, or -1.
func (r *Registry) IndexOf(key string) int {
	if r == nil {
		return -1
	}
	return slices.Index(r.keys, key)
}

// All iterates entries in insertion order.
func (r *Registry) All() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		if r == nil {
			return
		}
		for _, k := range r.keys {
			if !yield(k, r.items[k]) {
				return
			}
		}
	}
}

// Put attaches n under key. An existing entry under key is detached and
// replaced in place; otherwise n is appended.
func (r *Registry) Put(key string, n *Node) error {
	if r.owner == nil {
		return &oaserrors.StructuralError{Message: fmt.Sprintf("registry %q no longer belongs to a node", r.field)}
	}
	if err := r.owner.canAdopt(n); err != nil {
		return err
	}
	if old, ok := r.items[key]; ok {
		old.release()
	} else {
		r.keys = append(r.keys, key)
	}
	r.items[key] = n
	r.owner.adopt(n, r.field, key)
	return nil
}

// Insert attaches n under key at ordinal i, clamped to [0, Len()].
// The key must not be present.
func (r *Registry) Insert(i int, key string, n *Node) error {
	if r.owner == nil {
		return &oaserrors.StructuralError{Message: fmt.Sprintf("registry %q no longer belongs to a node", r.field)}
	}
	if _, ok := r.items[key]; ok {
		return &oaserrors.StructuralError{Message: fmt.Sprintf("key %q already present", key)}
	}
	if err := r.owner.canAdopt(n); err != nil {
		return err
	}
	i = min(max(i, 0), len(r.keys))
	r.keys = slices.Insert(r.keys, i, key)
	r.items[key] = n
	r.owner.adopt(n, r.field, key)
	return nil
}

// Delete detaches and returns the entry under key along with its ordinal.
func (r *Registry) Delete(key string) (*Node, int, bool) {
	idx := r.IndexOf(key)
	if idx < 0 {
		return nil, -1, false
	}
	n := r.remove(key)
	n.release()
	return n, idx, true
}

func (r *Registry) remove(key string) *Node {
	n := r.items[key]
	delete(r.items, key)
	if i := slices.Index(r.keys, key); i >= 0 {
		r.keys = slices.Delete(r.keys, i, i+1)
	}
	return n
}

// Rename moves the entry under from to the key to, keeping its position.
func (r *Registry) Rename(from, to string) error {
	n, ok := r.Get(from)
	if !ok {
		return &oaserrors.StructuralError{Reason: oaserrors.ReasonNodeNotFound, Message: fmt.Sprintf("key %q not found", from)}
	}
	if from == to {
		return nil
	}
	if r.Has(to) {
		return &oaserrors.StructuralError{Message: fmt.Sprintf("key %q already present", to)}
	}
	r.keys[r.IndexOf(from)] = to
	delete(r.items, from)
	r.items[to] = n
	n.name = to
	return nil
}

func (r *Registry) cloneFor(owner *Node) *Registry {
	c := newRegistry(owner, r.field)
	c.keys = slices.Clone(r.keys)
	for _, k := range r.keys {
		n := r.items[k].Clone()
		c.items[k] = n
		owner.adopt(n, r.field, k)
	}
	return c
}

func (r *Registry) toValue() *value.Map {
	m := value.NewMap(len(r.keys))
	for _, k := range r.keys {
		m.Set(k, r.items[k].ToValue())
	}
	return m
}
