package parser

import (
	"github.com/erraggy/oasmodel/catalog"
	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/value"
	"github.com/erraggy/oasmodel/walker"
)

// WriteFunc serializes node n to a generic mapping.
type WriteFunc func(w *Writer, n *model.Node) (*value.Map, error)

// Writer serializes node trees to generic values. Unlike the reader, a
// node kind without a route is an error: nothing is silently dropped.
type Writer struct {
	table *walker.Table[WriteFunc]
}

// NewWriter creates a writer using the default table.
func NewWriter() *Writer {
	return &Writer{table: defaultWriteTable}
}

// NewWriterWithTable creates a writer with a custom table.
func NewWriterWithTable(table *walker.Table[WriteFunc]) *Writer {
	return &Writer{table: table}
}

// DefaultWriteTable returns a copy of the default write table that callers
// can extend.
func DefaultWriteTable() *walker.Table[WriteFunc] {
	return newWriteTable()
}

var defaultWriteTable = newWriteTable()

func newWriteTable() *walker.Table[WriteFunc] {
	t := walker.NewTable[WriteFunc]("write", model.DocumentTypes()...)
	for _, typ := range model.DocumentTypes() {
		c, err := catalog.For(typ)
		if err != nil {
			continue
		}
		for _, k := range c.Kinds() {
			t.On(k, WriteInOrder, typ)
		}
	}
	return t
}

// WriteDocument serializes the whole document.
func (w *Writer) WriteDocument(doc *model.Document) (*value.Map, error) {
	return w.Write(doc.Root())
}

// Write dispatches n to its WriteFunc.
func (w *Writer) Write(n *model.Node) (*value.Map, error) {
	write, err := w.table.Dispatch(n)
	if err != nil {
		return nil, err
	}
	return write(w, n)
}

// WriteInOrder is the default WriteFunc: properties in node order, then
// entries, then the extension bag. Child nodes are written through w.
func WriteInOrder(w *Writer, n *model.Node) (*value.Map, error) {
	out := value.NewMap(len(n.PropertyNames()))
	for name, v := range n.Properties() {
		switch t := v.(type) {
		case *model.Node:
			cv, err := w.Write(t)
			if err != nil {
				return nil, err
			}
			out.Set(name, cv)
		case *model.List:
			items := make([]any, 0, t.Len())
			for _, c := range t.All() {
				cv, err := w.Write(c)
				if err != nil {
					return nil, err
				}
				items = append(items, cv)
			}
			out.Set(name, items)
		case *model.Registry:
			m, err := w.writeRegistry(t)
			if err != nil {
				return nil, err
			}
			out.Set(name, m)
		default:
			out.Set(name, value.Clone(t))
		}
	}
	if entries := n.Entries(); entries != nil {
		for key, c := range entries.All() {
			cv, err := w.Write(c)
			if err != nil {
				return nil, err
			}
			out.Set(key, cv)
		}
	}
	for key, v := range n.Extensions().All() {
		out.Set(key, value.Clone(v))
	}
	return out, nil
}

func (w *Writer) writeRegistry(r *model.Registry) (*value.Map, error) {
	out := value.NewMap(r.Len())
	for key, c := range r.All() {
		cv, err := w.Write(c)
		if err != nil {
			return nil, err
		}
		out.Set(key, cv)
	}
	return out, nil
}
