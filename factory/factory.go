package factory

import (
	"fmt"
	"math"

	"github.com/erraggy/oasmodel/catalog"
	"github.com/erraggy/oasmodel/command"
	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/oaserrors"
	"github.com/erraggy/oasmodel/parser"
	"github.com/erraggy/oasmodel/value"
)

// SchemaRef returns the local reference to the schema definition called
// name. OpenAPI 2 keeps definitions under "#/definitions/", the other
// document types under "#/components/schemas/".
func SchemaRef(typ model.DocumentType, name string) string {
	if typ == model.OpenAPI2 {
		return "#/definitions/" + name
	}
	return "#/components/schemas/" + name
}

// DefinitionCommand returns a command that adds a schema definition called
// name, inferred from example, to doc. A string example is parsed as JSON or
// YAML text first. The components object is created along with the schema
// when the document has none.
func DefinitionCommand(doc *model.Document, name string, example any) (*command.AddNodeCommand, error) {
	if name == "" {
		return nil, &oaserrors.ConfigError{Option: "name", Message: "definition name is required"}
	}
	ex, err := exampleValue(example)
	if err != nil {
		return nil, err
	}
	schema := InferSchema(ex)
	schema.Set("title", "Root Type for "+name)
	schema.Set("description", "The root of the "+name+" type's schema.")

	typ := doc.Type()
	reader := parser.NewReader(nil)
	root := doc.Root()

	if typ == model.OpenAPI2 {
		if defs := root.Registry("definitions"); defs.Has(name) {
			return nil, exists(name, "/definitions")
		}
		n, err := reader.ReadNode(typ, model.KindSchema, schema)
		if err != nil {
			return nil, err
		}
		return command.AddNode(root, model.Position{Field: "definitions", Shape: model.ShapeMap, Key: name, Index: appendIndex}, n)
	}

	if comps := root.Child("components"); comps != nil {
		if comps.Registry("schemas").Has(name) {
			return nil, exists(name, "/components/schemas")
		}
		n, err := reader.ReadNode(typ, model.KindSchema, schema)
		if err != nil {
			return nil, err
		}
		return command.AddNode(comps, model.Position{Field: "schemas", Shape: model.ShapeMap, Key: name, Index: appendIndex}, n)
	}

	comps, err := reader.ReadNode(typ, model.KindComponents, value.MapOf("schemas", value.MapOf(name, schema)))
	if err != nil {
		return nil, err
	}
	return command.AddNode(root, model.Position{Field: "components", Shape: model.ShapeNode, Index: componentsIndex(root)}, comps)
}

// SchemaDefinitionFromExample adds a schema definition inferred from example
// to doc and returns it.
func SchemaDefinitionFromExample(doc *model.Document, name string, example any) (*model.Node, error) {
	cmd, err := DefinitionCommand(doc, name, example)
	if err != nil {
		return nil, err
	}
	if err := cmd.Execute(doc); err != nil {
		return nil, err
	}
	if doc.Type() == model.OpenAPI2 {
		n, _ := doc.Root().Registry("definitions").Get(name)
		return n, nil
	}
	n, _ := doc.Root().Child("components").Registry("schemas").Get(name)
	return n, nil
}

// appendIndex positions a new entry after the existing ones.
const appendIndex = math.MaxInt

// componentsIndex is the property ordinal that keeps a new components
// object in catalog order relative to the root's existing properties.
func componentsIndex(root *model.Node) int {
	cat, err := catalog.For(root.Type())
	if err != nil {
		return appendIndex
	}
	spec, ok := cat.Kind(root.Kind())
	if !ok {
		return appendIndex
	}
	order := make(map[string]int, len(spec.Fields))
	for i, f := range spec.Fields {
		order[f.Name] = i
	}
	target, ok := order["components"]
	if !ok {
		return appendIndex
	}
	idx := 0
	for i, name := range root.PropertyNames() {
		if o, ok := order[name]; ok && o < target {
			idx = i + 1
		}
	}
	return idx
}

func exampleValue(example any) (any, error) {
	if s, ok := example.(string); ok {
		return parser.ParseText([]byte(s))
	}
	return value.Normalize(example)
}

func exists(name, where string) error {
	return &oaserrors.StructuralError{Path: where, Message: fmt.Sprintf("schema definition %q already exists", name)}
}
