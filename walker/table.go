package walker

import (
	"fmt"
	"slices"

	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/oaserrors"
)

// Key routes a handler. A zero Major matches every major version of the
// dialect; an empty Dialect matches every dialect.
type Key struct {
	Kind    model.Kind
	Dialect model.Dialect
	Major   int
}

// String renders the key as kind/dialect+major, using "*" for wildcards.
func (k Key) String() string {
	d := string(k.Dialect)
	if d == "" {
		d = "*"
	}
	m := "*"
	if k.Major != 0 {
		m = fmt.Sprint(k.Major)
	}
	return fmt.Sprintf("%s/%s%s", k.Kind, d, m)
}

// Table maps (kind, dialect, major version) to handlers of type H.
//
// Lookup tries the exact triple, then the kind for any major version of the
// dialect, then the kind for any dialect, then the Otherwise handler, so one generic traversal can be
// specialized only where a document type actually differs.
type Table[H any] struct {
	name     string
	types    []model.DocumentType
	handlers map[Key]H
	fallback *H
}

// NewTable creates an empty table. The name identifies the operation in
// errors (e.g. "read", "validate"). types is the capability set; an empty
// set supports every document type.
func NewTable[H any](name string, types ...model.DocumentType) *Table[H] {
	return &Table[H]{
		name:     name,
		types:    slices.Clone(types),
		handlers: make(map[Key]H),
	}
}

// Name returns the operation name.
func (t *Table[H]) Name() string { return t.name }

// Supports reports whether the table declares support for typ.
func (t *Table[H]) Supports(typ model.DocumentType) bool {
	return len(t.types) == 0 || slices.Contains(t.types, typ)
}

// On registers h for kind. With no types, h applies to every document type;
// otherwise it is registered for exactly the given types.
func (t *Table[H]) On(kind model.Kind, h H, types ...model.DocumentType) *Table[H] {
	if len(types) == 0 {
		t.handlers[Key{Kind: kind}] = h
		return t
	}
	for _, typ := range types {
		t.handlers[Key{Kind: kind, Dialect: typ.Dialect, Major: typ.Major}] = h
	}
	return t
}

// OnDialect registers h for kind in every major version of dialect.
func (t *Table[H]) OnDialect(kind model.Kind, dialect model.Dialect, h H) *Table[H] {
	t.handlers[Key{Kind: kind, Dialect: dialect}] = h
	return t
}

// Otherwise registers h for every kind that has no more specific handler.
func (t *Table[H]) Otherwise(h H) *Table[H] {
	t.fallback = &h
	return t
}

// Lookup returns the most specific handler for kind within typ.
func (t *Table[H]) Lookup(kind model.Kind, typ model.DocumentType) (H, bool) {
	for _, k := range [...]Key{
		{Kind: kind, Dialect: typ.Dialect, Major: typ.Major},
		{Kind: kind, Dialect: typ.Dialect},
		{Kind: kind},
	} {
		if h, ok := t.handlers[k]; ok {
			return h, true
		}
	}
	if t.fallback != nil {
		return *t.fallback, true
	}
	var zero H
	return zero, false
}

// Dispatch returns the handler for n or an UnsupportedError.
func (t *Table[H]) Dispatch(n *model.Node) (H, error) {
	h, ok := t.Lookup(n.Kind(), n.Type())
	if !ok || !t.Supports(n.Type()) {
		var zero H
		return zero, t.unsupported(n.Kind(), n.Type())
	}
	return h, nil
}

// Keys returns the registered keys, sorted by their string form.
func (t *Table[H]) Keys() []Key {
	keys := make([]Key, 0, len(t.handlers))
	for k := range t.handlers {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b Key) int {
		switch {
		case a.String() < b.String():
			return -1
		case a.String() > b.String():
			return 1
		}
		return 0
	})
	return keys
}

func (t *Table[H]) unsupported(kind model.Kind, typ model.DocumentType) error {
	return &oaserrors.UnsupportedError{
		Operation:    t.name,
		Reason:       oaserrors.ReasonNodeKind,
		Kind:         string(kind),
		DocumentType: typ.String(),
	}
}
