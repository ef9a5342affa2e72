package oasmodel_test

import (
	"context"
	"fmt"
	"log"

	"github.com/erraggy/oasmodel"
	"github.com/erraggy/oasmodel/command"
	"github.com/erraggy/oasmodel/factory"
	"github.com/erraggy/oasmodel/model"
)

// Example reads a description, validates it and prints its problems.
func Example() {
	doc, err := oasmodel.ReadDocumentFromText([]byte(`openapi: 3.0.9
info:
  title: Very Simple API
  version: 1.0.0
`))
	if err != nil {
		log.Fatal(err)
	}
	pending, err := oasmodel.ValidateDocument(context.Background(), doc, nil)
	if err != nil {
		log.Fatal(err)
	}
	problems, err := pending.Wait()
	if err != nil {
		log.Fatal(err)
	}
	for _, p := range problems {
		fmt.Printf("%s at %s: %s\n", p.ErrorCode, p.NodePath, p.Message)
	}
	// Output:
	// R-003 at /: Unsupported specification version "3.0.9" (latest known is 3.2.0).
}

// Example_undo edits a document and reverts the edit.
func Example_undo() {
	doc, err := oasmodel.CreateDocument(model.OpenAPI3)
	if err != nil {
		log.Fatal(err)
	}
	cmd, err := factory.DefinitionCommand(doc, "Pet", `{"id": 1, "name": "Rex"}`)
	if err != nil {
		log.Fatal(err)
	}
	h, err := command.NewHistory(doc)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := h.Execute(cmd); err != nil {
		log.Fatal(err)
	}
	pet, _ := doc.ResolveString(`/components/schemas["Pet"]`)
	fmt.Println(pet.Text("title"))

	if _, err := h.Undo(); err != nil {
		log.Fatal(err)
	}
	fmt.Println(doc.Root().Child("components") == nil)
	// Output:
	// Root Type for Pet
	// true
}
