package oasmodel

import (
	"context"

	"github.com/erraggy/oasmodel/catalog"
	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/parser"
	"github.com/erraggy/oasmodel/validator"
	"github.com/erraggy/oasmodel/validator/rules"
	"github.com/erraggy/oasmodel/value"
)

// CreateDocument returns an empty document of typ whose version field is
// set to the latest known version of its specification.
func CreateDocument(typ model.DocumentType) (*model.Document, error) {
	doc, err := catalog.NewDocument(typ)
	if err != nil {
		return nil, err
	}
	if err := doc.Root().Set(parser.VersionField(typ), parser.LatestVersion(typ)); err != nil {
		return nil, err
	}
	return doc, nil
}

// CloneDocument returns an independent deep copy of doc.
func CloneDocument(doc *model.Document) *model.Document {
	return doc.Clone()
}

// ReadDocument detects the type of a generic value and reads it into a
// document.
func ReadDocument(v any) (*model.Document, error) {
	norm, err := value.Normalize(v)
	if err != nil {
		return nil, err
	}
	return parser.NewReader(nil).ReadDocument(norm)
}

// ReadDocumentFromText parses JSON or YAML text into a document.
func ReadDocumentFromText(data []byte) (*model.Document, error) {
	result, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}
	return result.Document, nil
}

// WriteDocument serializes doc to a generic value.
func WriteDocument(doc *model.Document) (*value.Map, error) {
	return parser.NewWriter().WriteDocument(doc)
}

// WriteDocumentToText serializes doc as JSON or YAML text.
func WriteDocumentToText(doc *model.Document, format parser.SourceFormat) ([]byte, error) {
	v, err := WriteDocument(doc)
	if err != nil {
		return nil, err
	}
	return parser.MarshalText(v, format)
}

// ReadNode reads a standalone node of kind for typ from a generic value.
// The node can then be attached to a document of the same type.
func ReadNode(typ model.DocumentType, kind model.Kind, v any) (*model.Node, error) {
	norm, err := value.Normalize(v)
	if err != nil {
		return nil, err
	}
	return parser.NewReader(nil).ReadNode(typ, kind, norm)
}

// WriteNode serializes one node and its subtree.
func WriteNode(n *model.Node) (*value.Map, error) {
	return parser.NewWriter().Write(n)
}

// ValidateDocument runs the built-in rules over doc, then the extensions.
// A nil severities registry keeps each rule's default severity.
func ValidateDocument(ctx context.Context, doc *model.Document, severities validator.SeverityRegistry, extensions ...validator.Extension) (*validator.Pending, error) {
	v, err := validator.New(
		validator.WithRules(rules.Builtin()...),
		validator.WithSeverities(severities),
		validator.WithExtensions(extensions...),
	)
	if err != nil {
		return nil, err
	}
	return v.ValidateDocument(ctx, doc), nil
}
