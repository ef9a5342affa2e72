package walker

import (
	"context"
	"testing"

	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/nodepath"
	"github.com/erraggy/oasmodel/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoc(t *testing.T, typ model.DocumentType) *model.Document {
	t.Helper()
	doc := model.NewDocument(typ, model.KindDocument)
	root := doc.Root()
	_, err := root.CreateChild("info", model.KindInfo)
	require.NoError(t, err)

	paths, err := root.CreateChild("paths", model.KindPaths)
	require.NoError(t, err)
	item := root.NewChild(model.KindPathItem)
	require.NoError(t, paths.EnsureEntries().Put("/pets", item))
	op, err := item.CreateChild("get", model.KindOperation)
	require.NoError(t, err)
	params, err := op.EnsureList("parameters")
	require.NoError(t, err)
	require.NoError(t, params.Append(root.NewChild(model.KindParameter)))

	comps, err := root.CreateChild("components", model.KindComponents)
	require.NoError(t, err)
	schemas, err := comps.EnsureRegistry("schemas")
	require.NoError(t, err)
	require.NoError(t, schemas.Put("Pet", root.NewChild(model.KindSchema)))
	root.SetExtension("x-ignored", "raw")
	return doc
}

func TestAction(t *testing.T) {
	assert.True(t, Continue.IsValid())
	assert.True(t, Stop.IsValid())
	assert.False(t, Action(9).IsValid())
	assert.Equal(t, "SkipChildren", SkipChildren.String())
	assert.Equal(t, "Action(9)", Action(9).String())
}

func TestTable_Lookup(t *testing.T) {
	table := NewTable[string]("test").
		On(model.KindSchema, "any").
		OnDialect(model.KindSchema, model.DialectOpenAPI, "openapi").
		On(model.KindSchema, "oas2", model.OpenAPI2)

	tests := []struct {
		typ      model.DocumentType
		expected string
	}{
		{model.OpenAPI2, "oas2"},
		{model.OpenAPI3, "openapi"},
		{model.AsyncAPI2, "any"},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			h, ok := table.Lookup(model.KindSchema, tt.typ)
			require.True(t, ok)
			assert.Equal(t, tt.expected, h)
		})
	}

	_, ok := table.Lookup(model.KindInfo, model.OpenAPI3)
	assert.False(t, ok)

	table.Otherwise("fallback")
	h, ok := table.Lookup(model.KindInfo, model.OpenAPI3)
	require.True(t, ok)
	assert.Equal(t, "fallback", h)

	assert.Equal(t, []Key{
		{Kind: model.KindSchema},
		{Kind: model.KindSchema, Dialect: model.DialectOpenAPI},
		{Kind: model.KindSchema, Dialect: model.DialectOpenAPI, Major: 2},
	}, table.Keys())
}

func TestTable_Dispatch(t *testing.T) {
	table := NewTable[int]("write", model.OpenAPI3).On(model.KindInfo, 1)

	_, err := table.Dispatch(model.NewNode(model.KindInfo, model.OpenAPI3))
	require.NoError(t, err)

	_, err = table.Dispatch(model.NewNode(model.KindSchema, model.OpenAPI3))
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrUnsupportedNodeKind)
	assert.Contains(t, err.Error(), "write: unsupported node kind schema for openapi3")

	// Outside the capability set, even registered kinds are unsupported.
	_, err = table.Dispatch(model.NewNode(model.KindInfo, model.OpenAPI2))
	assert.ErrorIs(t, err, oaserrors.ErrUnsupportedNodeKind)

	assert.True(t, table.Supports(model.OpenAPI3))
	assert.False(t, table.Supports(model.AsyncAPI2))
	assert.True(t, NewTable[int]("all").Supports(model.AsyncAPI2))
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "schema/openapi3", Key{Kind: model.KindSchema, Dialect: model.DialectOpenAPI, Major: 3}.String())
	assert.Equal(t, "schema/**", Key{Kind: model.KindSchema}.String())
}

func TestWalk_PreOrder(t *testing.T) {
	doc := testDoc(t, model.OpenAPI3)
	var visited []string
	table := NewTable[Visitor]("trace").Otherwise(func(wc *WalkContext, n *model.Node) Action {
		visited = append(visited, wc.PathString())
		// Ancestors always precede descendants.
		if p := wc.Parent(); p != nil {
			assert.Same(t, n.Parent(), p)
		}
		return Continue
	})
	require.NoError(t, Walk(doc.Root(), table))
	assert.Equal(t, []string{
		"/",
		"/info",
		`/paths`,
		`/paths["/pets"]`,
		`/paths["/pets"]/get`,
		`/paths["/pets"]/get/parameters[0]`,
		"/components",
		`/components/schemas["Pet"]`,
	}, visited)
}

func TestWalk_PathsResolve(t *testing.T) {
	doc := testDoc(t, model.OpenAPI3)
	table := NewTable[Visitor]("resolve").Otherwise(func(wc *WalkContext, n *model.Node) Action {
		got, err := doc.Resolve(wc.Path())
		require.NoError(t, err)
		assert.Same(t, n, got)
		p, err := n.Path()
		require.NoError(t, err)
		assert.True(t, p.Equal(wc.Path()))
		return Continue
	})
	require.NoError(t, Walk(doc.Root(), table))
}

func TestWalk_Actions(t *testing.T) {
	doc := testDoc(t, model.OpenAPI3)

	t.Run("skip children", func(t *testing.T) {
		var kinds []model.Kind
		table := NewTable[Visitor]("skip").Otherwise(func(wc *WalkContext, n *model.Node) Action {
			kinds = append(kinds, n.Kind())
			if n.Kind() == model.KindPaths {
				return SkipChildren
			}
			return Continue
		})
		require.NoError(t, Walk(doc.Root(), table))
		assert.NotContains(t, kinds, model.KindOperation)
		assert.Contains(t, kinds, model.KindSchema)
	})

	t.Run("stop", func(t *testing.T) {
		count := 0
		table := NewTable[Visitor]("stop").Otherwise(func(wc *WalkContext, n *model.Node) Action {
			count++
			if n.Kind() == model.KindPathItem {
				return Stop
			}
			return Continue
		})
		require.NoError(t, Walk(doc.Root(), table))
		assert.Equal(t, 4, count)
	})
}

func TestWalk_Strict(t *testing.T) {
	doc := testDoc(t, model.OpenAPI3)
	table := NewTable[Visitor]("validate").
		On(model.KindDocument, func(*WalkContext, *model.Node) Action { return Continue }).
		On(model.KindInfo, func(*WalkContext, *model.Node) Action { return Continue })

	// Lenient: unrouted kinds are passed through.
	require.NoError(t, Walk(doc.Root(), table))

	err := Walk(doc.Root(), table, WithStrict())
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrUnsupportedNodeKind)
	assert.Contains(t, err.Error(), "/paths")
}

func TestWalk_Unsupported(t *testing.T) {
	doc := testDoc(t, model.AsyncAPI2)
	table := NewTable[Visitor]("openapi-only", model.OpenAPI2, model.OpenAPI3)
	err := Walk(doc.Root(), table)
	assert.ErrorIs(t, err, oaserrors.ErrUnsupportedNodeKind)
}

func TestWalk_DispatchByVersion(t *testing.T) {
	var got []string
	table := NewTable[Visitor]("versioned").
		On(model.KindInfo, func(*WalkContext, *model.Node) Action { got = append(got, "v2"); return Continue }, model.OpenAPI2).
		On(model.KindInfo, func(*WalkContext, *model.Node) Action { got = append(got, "v3"); return Continue }, model.OpenAPI3)

	require.NoError(t, Walk(testDoc(t, model.OpenAPI2).Root(), table))
	require.NoError(t, Walk(testDoc(t, model.OpenAPI3).Root(), table))
	assert.Equal(t, []string{"v2", "v3"}, got)
}

func TestWalk_Context(t *testing.T) {
	doc := testDoc(t, model.OpenAPI3)

	t.Run("ancestors and depth", func(t *testing.T) {
		table := NewTable[Visitor]("ctx").On(model.KindParameter, func(wc *WalkContext, n *model.Node) Action {
			assert.Equal(t, 4, wc.Depth())
			anc := wc.Ancestors()
			require.Len(t, anc, 4)
			assert.Equal(t, model.KindOperation, anc[0].Kind())
			assert.Equal(t, model.KindDocument, anc[3].Kind())
			item, ok := wc.Nearest(model.KindPathItem)
			require.True(t, ok)
			assert.Equal(t, "/pets", item.Name())
			_, ok = wc.Nearest(model.KindSchema)
			assert.False(t, ok)
			return Continue
		})
		require.NoError(t, Walk(doc.Root(), table))
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := Walk(doc.Root(), NewTable[Visitor]("c"), WithContext(ctx))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("max depth", func(t *testing.T) {
		nodes, err := Collect(doc.Root(), nil, WithMaxDepth(1))
		require.NoError(t, err)
		assert.Len(t, nodes, 4) // root, info, paths, components
	})

	t.Run("base path", func(t *testing.T) {
		comps := doc.Root().Child("components")
		nodes, err := Collect(comps, nil, WithBasePath(nodepath.New(nodepath.Prop("components"))))
		require.NoError(t, err)
		require.Len(t, nodes, 2)
		assert.Equal(t, `/components/schemas["Pet"]`, nodes[1].Path.String())
		assert.Equal(t, "Pet", nodes[1].Name)
	})
}

func TestCollect(t *testing.T) {
	doc := testDoc(t, model.OpenAPI3)
	pet, _ := doc.Root().Child("components").Registry("schemas").Get("Pet")
	require.NoError(t, pet.Set("$ref", "#/components/schemas/Other"))

	schemas, err := CollectKind(doc.Root(), model.KindSchema, model.KindParameter)
	require.NoError(t, err)
	require.Len(t, schemas, 2)
	assert.Equal(t, model.KindParameter, schemas[0].Node.Kind())

	refs, err := CollectRefs(doc.Root())
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Same(t, pet, refs[0].Node)

	none, err := CollectKind(doc.Root(), model.KindMessage)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
