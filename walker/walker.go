package walker

import (
	"fmt"

	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/nodepath"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// Visitor is called for each node routed to it by a Table.
type Visitor func(wc *WalkContext, n *model.Node) Action

// Walk traverses the subtree rooted at root depth-first in pre-order,
// following property order and then entries, and calls the visitor the
// table routes each node to. Nodes without a route are passed through
// unless WithStrict is set. Extension properties are never visited.
func Walk(root *model.Node, table *Table[Visitor], opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if !table.Supports(root.Type()) {
		return table.unsupported(root.Kind(), root.Type())
	}

	w := &walk{table: table, cfg: cfg, path: nodepath.Get()}
	defer nodepath.Put(w.path)
	if cfg.base != nil {
		for _, s := range cfg.base.Segments() {
			w.path.Push(s)
		}
	}
	_, err := w.visit(root)
	return err
}

type walk struct {
	table     *Table[Visitor]
	cfg       *config
	path      *nodepath.Builder
	ancestors []*model.Node
}

// visit returns false when the walk must stop.
func (w *walk) visit(n *model.Node) (bool, error) {
	if err := w.cfg.ctx.Err(); err != nil {
		return false, err
	}

	action := Continue
	h, err := w.table.Dispatch(n)
	switch {
	case err == nil:
		wc := &WalkContext{node: n, path: w.path, ancestors: w.ancestors, ctx: w.cfg.ctx}
		action = h(wc, n)
	case w.cfg.strict:
		return false, fmt.Errorf("walker: %s: %w", w.path.String(), err)
	}

	switch action {
	case Stop:
		return false, nil
	case SkipChildren:
		return true, nil
	}
	if w.cfg.maxDepth > 0 && len(w.ancestors) >= w.cfg.maxDepth {
		return true, nil
	}

	w.ancestors = append(w.ancestors, n)
	defer func() { w.ancestors = w.ancestors[:len(w.ancestors)-1] }()

	for name, v := range n.Properties() {
		var ok bool
		switch t := v.(type) {
		case *model.Node:
			ok, err = w.descend(t, nodepath.Prop(name))
		case *model.List:
			ok, err = w.descendList(name, t)
		case *model.Registry:
			ok, err = w.descendRegistry(t, nodepath.Prop(name))
		default:
			continue
		}
		if !ok || err != nil {
			return false, err
		}
	}
	if entries := n.Entries(); entries != nil {
		return w.descendRegistry(entries)
	}
	return true, nil
}

func (w *walk) descend(n *model.Node, segs ...nodepath.Segment) (bool, error) {
	for _, s := range segs {
		w.path.Push(s)
	}
	defer func() {
		for range segs {
			w.path.Pop()
		}
	}()
	return w.visit(n)
}

func (w *walk) descendList(field string, l *model.List) (bool, error) {
	for i, c := range l.All() {
		if ok, err := w.descend(c, nodepath.Prop(field), nodepath.At(i)); !ok || err != nil {
			return false, err
		}
	}
	return true, nil
}

func (w *walk) descendRegistry(r *model.Registry, prefix ...nodepath.Segment) (bool, error) {
	for k, c := range r.All() {
		segs := append(prefix[:len(prefix):len(prefix)], nodepath.KeyOf(k))
		if ok, err := w.descend(c, segs...); !ok || err != nil {
			return false, err
		}
	}
	return true, nil
}
