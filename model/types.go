package model

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/erraggy/oasmodel/internal/issues"
	"github.com/erraggy/oasmodel/oaserrors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Dialect is a specification family.
type Dialect string

const (
	// DialectOpenAPI is the OpenAPI (formerly Swagger) family.
	DialectOpenAPI Dialect = "openapi"
	// DialectAsyncAPI is the AsyncAPI family.
	DialectAsyncAPI Dialect = "asyncapi"
)

// DocumentType identifies a dialect and its major version.
type DocumentType struct {
	Dialect Dialect
	Major   int
}

// Supported document types.
var (
	OpenAPI2  = DocumentType{Dialect: DialectOpenAPI, Major: 2}
	OpenAPI3  = DocumentType{Dialect: DialectOpenAPI, Major: 3}
	AsyncAPI2 = DocumentType{Dialect: DialectAsyncAPI, Major: 2}
)

// DocumentTypes returns every supported document type.
func DocumentTypes() []DocumentType {
	return []DocumentType{OpenAPI2, OpenAPI3, AsyncAPI2}
}

// String returns the compact name, e.g. "openapi3".
func (t DocumentType) String() string {
	if t.IsZero() {
		return "unknown"
	}
	return string(t.Dialect) + strconv.Itoa(t.Major)
}

// IsZero reports whether t is the zero DocumentType.
func (t DocumentType) IsZero() bool {
	return t.Dialect == "" && t.Major == 0
}

// ParseDocumentType parses the compact name produced by String.
func ParseDocumentType(s string) (DocumentType, error) {
	for _, t := range DocumentTypes() {
		if t.String() == s {
			return t, nil
		}
	}
	return DocumentType{}, fmt.Errorf("model: unknown document type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t DocumentType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *DocumentType) UnmarshalText(text []byte) error {
	v, err := ParseDocumentType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Kind is the semantic role of a node, e.g. "schema" or "response".
type Kind string

var titleCaser = cases.Title(language.English)

// DisplayName renders the kind for humans: "pathItem" becomes "Path Item".
func (k Kind) DisplayName() string {
	var b strings.Builder
	for i, r := range string(k) {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return titleCaser.String(b.String())
}

// Shape describes how a property holds its value.
type Shape int

const (
	// ShapeValue is a raw generic value.
	ShapeValue Shape = iota
	// ShapeNode is a single child node.
	ShapeNode
	// ShapeList is an ordered sequence of child nodes.
	ShapeList
	// ShapeMap is a keyed, insertion-ordered collection of child nodes.
	ShapeMap
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeValue:
		return "value"
	case ShapeNode:
		return "node"
	case ShapeList:
		return "list"
	case ShapeMap:
		return "map"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(text []byte) error {
	for _, c := range []Shape{ShapeValue, ShapeNode, ShapeList, ShapeMap} {
		if c.String() == string(text) {
			*s = c
			return nil
		}
	}
	return fmt.Errorf("model: unknown shape %q", text)
}

// Position is the structural slot a node occupies within its parent.
type Position struct {
	// Field is the parent property holding the node. Empty means the
	// parent's own keyed entries.
	Field string `json:"field,omitempty"`
	// Shape is ShapeNode, ShapeList or ShapeMap.
	Shape Shape `json:"shape"`
	// Index is the list index, or the ordinal of Key within a keyed collection.
	Index int `json:"index"`
	// Key is the entry key for keyed collections.
	Key string `json:"key,omitempty"`
}

// Validate reports a StructuralError when p cannot address a child node:
// node and list positions need a property name usable in a path, and keyed
// positions either name such a property or leave Field empty for the
// parent's own entries.
func (p Position) Validate() error {
	switch p.Shape {
	case ShapeNode, ShapeList:
		return checkField(p.Field)
	case ShapeMap:
		if p.Field == "" {
			return nil
		}
		return checkField(p.Field)
	}
	return &oaserrors.StructuralError{Message: fmt.Sprintf("cannot hold a node at shape %s", p.Shape)}
}

// Problem is a validation problem attached to a node.
type Problem = issues.Problem
