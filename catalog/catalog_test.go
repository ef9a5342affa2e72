package catalog

import (
	"testing"

	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor(t *testing.T) {
	for _, dt := range model.DocumentTypes() {
		t.Run(dt.String(), func(t *testing.T) {
			c, err := For(dt)
			require.NoError(t, err)
			assert.Equal(t, dt, c.Type())
			assert.Equal(t, model.KindDocument, c.Root())
			_, ok := c.Kind(c.Root())
			assert.True(t, ok)
		})
	}

	_, err := For(model.DocumentType{Dialect: "raml", Major: 1})
	assert.ErrorIs(t, err, oaserrors.ErrUnrecognizedDocumentType)
}

// Every kind referenced by a field must itself be declared, and field names
// must be unique within a kind.
func TestCatalogIsClosed(t *testing.T) {
	for _, dt := range model.DocumentTypes() {
		c, err := For(dt)
		require.NoError(t, err)
		for _, k := range c.Kinds() {
			spec, _ := c.Kind(k)
			seen := map[string]bool{}
			for _, f := range spec.Fields {
				assert.False(t, seen[f.Name], "%s: %s declares %q twice", dt, k, f.Name)
				seen[f.Name] = true
				if f.Shape == model.ShapeValue {
					assert.Empty(t, f.Kind, "%s: %s.%s", dt, k, f.Name)
					continue
				}
				_, ok := c.Kind(f.Kind)
				assert.True(t, ok, "%s: %s.%s references undeclared kind %s", dt, k, f.Name, f.Kind)
			}
			if spec.Entries != "" {
				_, ok := c.Kind(spec.Entries)
				assert.True(t, ok, "%s: %s entries reference undeclared kind %s", dt, k, spec.Entries)
			}
		}
	}
}

func TestKindSpecField(t *testing.T) {
	c, err := For(model.OpenAPI3)
	require.NoError(t, err)

	comps, ok := c.Kind(model.KindComponents)
	require.True(t, ok)
	f, ok := comps.Field("responses")
	require.True(t, ok)
	assert.Equal(t, model.ShapeMap, f.Shape)
	assert.Equal(t, model.KindResponse, f.Kind)

	_, ok = comps.Field("nope")
	assert.False(t, ok)

	paths, _ := c.Kind(model.KindPaths)
	assert.Equal(t, model.KindPathItem, paths.Entries)
}

func TestDialectDifferences(t *testing.T) {
	oas2, _ := For(model.OpenAPI2)
	oas3, _ := For(model.OpenAPI3)
	aai2, _ := For(model.AsyncAPI2)

	doc2, _ := oas2.Kind(model.KindDocument)
	_, ok := doc2.Field("definitions")
	assert.True(t, ok)
	_, ok = doc2.Field("components")
	assert.False(t, ok)

	doc3, _ := oas3.Kind(model.KindDocument)
	_, ok = doc3.Field("components")
	assert.True(t, ok)

	_, ok = aai2.Kind(model.KindPaths)
	assert.False(t, ok)
	_, ok = aai2.Kind(model.KindChannels)
	assert.True(t, ok)
}

func TestIsExtension(t *testing.T) {
	assert.True(t, IsExtension("x-logo"))
	assert.False(t, IsExtension("xml"))
	assert.False(t, IsExtension("X-Upper"))
}

func TestNewDocument(t *testing.T) {
	doc, err := NewDocument(model.AsyncAPI2)
	require.NoError(t, err)
	assert.Equal(t, model.AsyncAPI2, doc.Type())
	assert.Equal(t, model.KindDocument, doc.Root().Kind())
	assert.True(t, doc.Root().IsRoot())
}
