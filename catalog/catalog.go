package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/oaserrors"
)

// FieldSpec declares one fixed property of a node kind.
type FieldSpec struct {
	// Name is the property name as it appears in the document.
	Name string
	// Shape is how the property holds its value.
	Shape model.Shape
	// Kind is the child kind for node-valued shapes.
	Kind model.Kind
}

// KindSpec declares the fixed properties of one node kind.
type KindSpec struct {
	Kind   model.Kind
	Fields []FieldSpec
	// Entries is the kind of the node's own keyed children (e.g. the path
	// items of a paths node). Empty when the kind has none.
	Entries model.Kind
}

// Field returns the declared field called name.
func (s *KindSpec) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// IsExtension reports whether a property name is a specification extension.
func IsExtension(name string) bool {
	return strings.HasPrefix(name, "x-")
}

// Catalog is the node-kind catalog of one document type.
type Catalog struct {
	typ   model.DocumentType
	root  model.Kind
	kinds map[model.Kind]*KindSpec
}

// Type returns the document type the catalog describes.
func (c *Catalog) Type() model.DocumentType { return c.typ }

// Root returns the kind of the document root.
func (c *Catalog) Root() model.Kind { return c.root }

// Kind returns the KindSpec for k.
func (c *Catalog) Kind(k model.Kind) (*KindSpec, bool) {
	s, ok := c.kinds[k]
	return s, ok
}

// Kinds returns every kind in the catalog, sorted.
func (c *Catalog) Kinds() []model.Kind {
	out := make([]model.Kind, 0, len(c.kinds))
	for k := range c.kinds {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

var catalogs = map[model.DocumentType]*Catalog{
	model.OpenAPI2:  build(model.OpenAPI2, openAPI2Kinds()),
	model.OpenAPI3:  build(model.OpenAPI3, openAPI3Kinds()),
	model.AsyncAPI2: build(model.AsyncAPI2, asyncAPI2Kinds()),
}

func build(t model.DocumentType, specs []*KindSpec) *Catalog {
	c := &Catalog{typ: t, root: model.KindDocument, kinds: make(map[model.Kind]*KindSpec, len(specs))}
	for _, s := range specs {
		c.kinds[s.Kind] = s
	}
	return c
}

// For returns the catalog of t.
func For(t model.DocumentType) (*Catalog, error) {
	c, ok := catalogs[t]
	if !ok {
		return nil, &oaserrors.UnsupportedError{
			Reason:  oaserrors.ReasonDocumentType,
			Message: fmt.Sprintf("no catalog for %s", t),
		}
	}
	return c, nil
}

// NewDocument creates an empty document of type t.
func NewDocument(t model.DocumentType) (*model.Document, error) {
	c, err := For(t)
	if err != nil {
		return nil, err
	}
	return model.NewDocument(t, c.Root()), nil
}

func kind(k model.Kind, fields ...FieldSpec) *KindSpec {
	return &KindSpec{Kind: k, Fields: fields}
}

func keyed(k, entries model.Kind, fields ...FieldSpec) *KindSpec {
	return &KindSpec{Kind: k, Fields: fields, Entries: entries}
}

func values(names ...string) []FieldSpec {
	out := make([]FieldSpec, len(names))
	for i, n := range names {
		out[i] = FieldSpec{Name: n, Shape: model.ShapeValue}
	}
	return out
}

func val(name string) FieldSpec { return FieldSpec{Name: name, Shape: model.ShapeValue} }

func node(name string, k model.Kind) FieldSpec {
	return FieldSpec{Name: name, Shape: model.ShapeNode, Kind: k}
}

func list(name string, k model.Kind) FieldSpec {
	return FieldSpec{Name: name, Shape: model.ShapeList, Kind: k}
}

func reg(name string, k model.Kind) FieldSpec {
	return FieldSpec{Name: name, Shape: model.ShapeMap, Kind: k}
}

func fields(groups ...[]FieldSpec) []FieldSpec {
	var out []FieldSpec
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// jsonSchemaValidation lists the validation keywords shared by schemas,
// OpenAPI 2 parameters and headers.
func jsonSchemaValidation() []FieldSpec {
	return values("multipleOf", "maximum", "exclusiveMaximum", "minimum", "exclusiveMinimum",
		"maxLength", "minLength", "pattern", "maxItems", "minItems", "uniqueItems", "enum")
}
