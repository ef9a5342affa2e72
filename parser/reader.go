package parser

import (
	"fmt"

	"github.com/erraggy/oasmodel/catalog"
	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/oaserrors"
	"github.com/erraggy/oasmodel/value"
	"github.com/erraggy/oasmodel/walker"
)

// ReadFunc populates node n from the generic mapping m.
type ReadFunc func(r *Reader, n *model.Node, m *value.Map) error

// Reader builds node trees from generic values.
//
// Each node kind is read by the ReadFunc its table routes to; the default
// table routes every catalog kind of every supported document type to a
// reader that follows the input's own key order, so a node's property
// order mirrors the input. Unrecognized properties go to the extension bag.
type Reader struct {
	table  *walker.Table[ReadFunc]
	logger Logger
}

// NewReader creates a reader using the default table.
func NewReader(logger Logger) *Reader {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Reader{table: defaultReadTable, logger: logger}
}

// NewReaderWithTable creates a reader with a custom table, e.g. one that
// overrides how a single kind is read for one dialect.
func NewReaderWithTable(table *walker.Table[ReadFunc], logger Logger) *Reader {
	r := NewReader(logger)
	r.table = table
	return r
}

// DefaultReadTable returns a copy of the default read table that callers
// can extend.
func DefaultReadTable() *walker.Table[ReadFunc] {
	return newReadTable()
}

var defaultReadTable = newReadTable()

func newReadTable() *walker.Table[ReadFunc] {
	t := walker.NewTable[ReadFunc]("read", model.DocumentTypes()...)
	for _, typ := range model.DocumentTypes() {
		c, err := catalog.For(typ)
		if err != nil {
			continue
		}
		for _, k := range c.Kinds() {
			t.On(k, ReadByCatalog, typ)
		}
	}
	return t
}

// ReadDocument detects the document type of v and reads it.
func (r *Reader) ReadDocument(v any) (*model.Document, error) {
	typ, err := Detect(v)
	if err != nil {
		return nil, err
	}
	doc, err := catalog.NewDocument(typ)
	if err != nil {
		return nil, err
	}
	if err := r.Populate(doc.Root(), v); err != nil {
		return nil, err
	}
	r.logger.Debug("read document", "type", typ.String())
	return doc, nil
}

// ReadNode creates a standalone node of kind for typ and populates it from v.
// Commands use it to rebuild nodes exactly as a parse would.
func (r *Reader) ReadNode(typ model.DocumentType, kind model.Kind, v any) (*model.Node, error) {
	n := model.NewNode(kind, typ)
	if err := r.Populate(n, v); err != nil {
		return nil, err
	}
	return n, nil
}

// Populate dispatches n to its ReadFunc. v must be a mapping.
func (r *Reader) Populate(n *model.Node, v any) error {
	m, ok := v.(*value.Map)
	if !ok {
		return &oaserrors.StructuralError{Message: fmt.Sprintf("%s must be a mapping, got %s", n.Kind(), describe(v))}
	}
	read, err := r.table.Dispatch(n)
	if err != nil {
		return err
	}
	return read(r, n, m)
}

// ReadByCatalog is the default ReadFunc. It walks m in order: declared
// fields become values or child nodes according to their catalog shape,
// extension and unknown keys go to the extension bag, and for kinds with
// entries every other mapping-valued key becomes an entry. A value whose
// shape does not fit its declared field is kept raw so nothing is lost.
func ReadByCatalog(r *Reader, n *model.Node, m *value.Map) error {
	c, err := catalog.For(n.Type())
	if err != nil {
		return err
	}
	spec, ok := c.Kind(n.Kind())
	if !ok {
		return &oaserrors.UnsupportedError{Operation: "read", Reason: oaserrors.ReasonNodeKind, Kind: string(n.Kind()), DocumentType: n.Type().String()}
	}

	for key, v := range m.All() {
		if catalog.IsExtension(key) {
			n.SetExtension(key, value.Clone(v))
			continue
		}
		if f, ok := spec.Field(key); ok {
			if err := r.readField(n, f, v); err != nil {
				return err
			}
			continue
		}
		if sub, ok := v.(*value.Map); ok && spec.Entries != "" {
			child := n.NewChild(spec.Entries)
			if err := r.Populate(child, sub); err != nil {
				return err
			}
			if err := n.EnsureEntries().Put(key, child); err != nil {
				return err
			}
			continue
		}
		r.logger.Debug("unknown property kept as extension", "kind", string(n.Kind()), "property", key)
		n.SetExtension(key, value.Clone(v))
	}
	return nil
}

func (r *Reader) readField(n *model.Node, f catalog.FieldSpec, v any) error {
	switch f.Shape {
	case model.ShapeNode:
		if sub, ok := v.(*value.Map); ok {
			child := n.NewChild(f.Kind)
			if err := r.Populate(child, sub); err != nil {
				return err
			}
			return n.SetChild(f.Name, child)
		}
	case model.ShapeList:
		if items, ok := v.([]any); ok && allMappings(items) {
			l, err := n.EnsureList(f.Name)
			if err != nil {
				return err
			}
			for _, item := range items {
				child := n.NewChild(f.Kind)
				if err := r.Populate(child, item); err != nil {
					return err
				}
				if err := l.Append(child); err != nil {
					return err
				}
			}
			return nil
		}
	case model.ShapeMap:
		if sub, ok := v.(*value.Map); ok && allMappingValues(sub) {
			reg, err := n.EnsureRegistry(f.Name)
			if err != nil {
				return err
			}
			for key, item := range sub.All() {
				child := n.NewChild(f.Kind)
				if err := r.Populate(child, item); err != nil {
					return err
				}
				if err := reg.Put(key, child); err != nil {
					return err
				}
			}
			return nil
		}
	}
	return n.Set(f.Name, value.Clone(v))
}

func allMappings(items []any) bool {
	for _, item := range items {
		if _, ok := item.(*value.Map); !ok {
			return false
		}
	}
	return true
}

func allMappingValues(m *value.Map) bool {
	for _, v := range m.All() {
		if _, ok := v.(*value.Map); !ok {
			return false
		}
	}
	return true
}
