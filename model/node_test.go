package model

import (
	"strconv"
	"testing"

	"github.com/erraggy/oasmodel/nodepath"
	"github.com/erraggy/oasmodel/oaserrors"
	"github.com/erraggy/oasmodel/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDoc assembles a small OpenAPI 3 tree exercising every container shape.
func buildDoc(t *testing.T) *Document {
	t.Helper()
	doc := NewDocument(OpenAPI3, KindDocument)
	root := doc.Root()
	require.NoError(t, root.Set("openapi", "3.0.2"))

	info, err := root.CreateChild("info", KindInfo)
	require.NoError(t, err)
	require.NoError(t, info.Set("title", "Pets"))
	require.NoError(t, info.Set("version", "1.0.0"))

	servers, err := root.EnsureList("servers")
	require.NoError(t, err)
	for _, u := range []string{"https://a.example", "https://b.example"} {
		s := root.NewChild(KindServer)
		require.NoError(t, s.Set("url", u))
		require.NoError(t, servers.Append(s))
	}

	paths, err := root.CreateChild("paths", KindPaths)
	require.NoError(t, err)
	item := root.NewChild(KindPathItem)
	require.NoError(t, paths.EnsureEntries().Put("/pets/{id}", item))
	_, err = item.CreateChild("get", KindOperation)
	require.NoError(t, err)

	comps, err := root.CreateChild("components", KindComponents)
	require.NoError(t, err)
	responses, err := comps.EnsureRegistry("responses")
	require.NoError(t, err)
	for _, name := range []string{"BadRequest", "NotFoundError", "Conflict"} {
		r := root.NewChild(KindResponse)
		require.NoError(t, r.Set("description", name+" response"))
		require.NoError(t, responses.Put(name, r))
	}
	root.SetExtension("x-internal", value.MapOf("owner", "team-a"))
	return doc
}

func TestNode_PathBijection(t *testing.T) {
	doc := buildDoc(t)
	count := 0
	for n := range doc.Nodes() {
		p, err := n.Path()
		require.NoError(t, err)
		got, err := doc.Resolve(p)
		require.NoError(t, err, "resolve %s", p)
		assert.Same(t, n, got, "path %s", p)

		// The string form must survive a parse round trip too.
		got, err = doc.ResolveString(p.String())
		require.NoError(t, err)
		assert.Same(t, n, got)
		count++
	}
	assert.Equal(t, 11, count)
}

func TestNode_PathStrings(t *testing.T) {
	doc := buildDoc(t)
	tests := []struct {
		path string
		kind Kind
	}{
		{"/", KindDocument},
		{"/info", KindInfo},
		{"/servers[1]", KindServer},
		{`/paths["/pets/{id}"]`, KindPathItem},
		{`/paths["/pets/{id}"]/get`, KindOperation},
		{`/components/responses["NotFoundError"]`, KindResponse},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			n, err := doc.ResolveString(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, n.Kind())
			p, err := n.Path()
			require.NoError(t, err)
			assert.Equal(t, tt.path, p.String())
		})
	}
}

func TestDocument_ResolveNotFound(t *testing.T) {
	doc := buildDoc(t)
	for _, in := range []string{
		"/nope",
		"/servers[5]",
		"/info/title", // a value, not a node
		`/components/responses["Missing"]`,
		"/servers", // a list, not a node
		`/info["k"]`,
	} {
		t.Run(in, func(t *testing.T) {
			_, err := doc.ResolveString(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrNodeNotFound)
			assert.ErrorIs(t, err, oaserrors.ErrStructural)
		})
	}

	_, err := doc.ResolveString("not a path")
	assert.ErrorIs(t, err, oaserrors.ErrMalformedPath)
}

func TestNode_PathRequiresRoot(t *testing.T) {
	n := NewNode(KindSchema, OpenAPI3)
	_, err := n.Path()
	assert.ErrorIs(t, err, oaserrors.ErrInvalidState)

	doc := buildDoc(t)
	info := doc.Root().Child("info")
	_, err = info.Detach()
	require.NoError(t, err)
	_, err = info.Path()
	assert.ErrorIs(t, err, oaserrors.ErrInvalidState)
	assert.Nil(t, info.Document())
}

func TestNode_DetachAttachRestoresPosition(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"single child", "/info"},
		{"list item", "/servers[0]"},
		{"registry entry", `/components/responses["NotFoundError"]`},
		{"own entry", `/paths["/pets/{id}"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := buildDoc(t)
			before := doc.Root().ToValue()

			n, err := doc.ResolveString(tt.path)
			require.NoError(t, err)
			parent := n.Parent()
			pos, err := n.Detach()
			require.NoError(t, err)
			assert.Nil(t, n.Parent())
			assert.False(t, n.IsAttached())

			_, err = doc.ResolveString(tt.path)
			if tt.name != "list item" {
				assert.ErrorIs(t, err, oaserrors.ErrNodeNotFound)
			}

			require.NoError(t, n.Attach(parent, pos))
			got, err := doc.ResolveString(tt.path)
			require.NoError(t, err)
			assert.Same(t, n, got)
			assert.True(t, value.Equal(before, doc.Root().ToValue()))
			assert.Equal(t, before.Keys(), doc.Root().ToValue().Keys())
		})
	}
}

func TestNode_DetachRoot(t *testing.T) {
	doc := buildDoc(t)
	_, err := doc.Root().Detach()
	assert.ErrorIs(t, err, oaserrors.ErrInvalidState)
}

func TestNode_AttachRules(t *testing.T) {
	doc := buildDoc(t)
	root := doc.Root()
	info := root.Child("info")

	t.Run("already has a parent", func(t *testing.T) {
		other := root.Child("components")
		err := other.SetChild("info", info)
		require.Error(t, err)
		assert.ErrorIs(t, err, oaserrors.ErrStructural)
	})

	t.Run("document root", func(t *testing.T) {
		err := info.SetChild("loop", root)
		assert.ErrorIs(t, err, oaserrors.ErrStructural)
	})

	t.Run("cycle", func(t *testing.T) {
		standalone := NewNode(KindSchema, OpenAPI3)
		child, err := standalone.CreateChild("items", KindSchema)
		require.NoError(t, err)
		_, err = child.Detach()
		require.NoError(t, err)
		require.NoError(t, standalone.SetChild("items", child))
		err = child.SetChild("not", standalone)
		assert.ErrorIs(t, err, oaserrors.ErrStructural)
	})

	t.Run("document type mismatch", func(t *testing.T) {
		foreign := NewNode(KindInfo, AsyncAPI2)
		err := root.SetChild("info2", foreign)
		require.Error(t, err)
		assert.ErrorIs(t, err, oaserrors.ErrUnsupportedConversion)
		assert.False(t, root.Has("info2"))
	})

	t.Run("occupied property", func(t *testing.T) {
		n := root.NewChild(KindInfo)
		err := n.Attach(root, Position{Field: "info", Shape: ShapeNode})
		assert.ErrorIs(t, err, oaserrors.ErrStructural)
	})

	t.Run("duplicate key", func(t *testing.T) {
		n := root.NewChild(KindResponse)
		err := n.Attach(root.Child("components"), Position{Field: "responses", Shape: ShapeMap, Key: "Conflict"})
		assert.ErrorIs(t, err, oaserrors.ErrStructural)
	})
}

func TestNode_RejectsUnaddressableNames(t *testing.T) {
	doc := buildDoc(t)
	root := doc.Root()

	for _, name := range []string{"", "a/b", "servers[0]", `say"hi"`, "]"} {
		t.Run(strconv.Quote(name), func(t *testing.T) {
			c := root.NewChild(KindInfo)

			assert.ErrorIs(t, root.SetChild(name, c), oaserrors.ErrMalformedPath)
			_, err := root.EnsureList(name)
			assert.ErrorIs(t, err, oaserrors.ErrMalformedPath)
			_, err = root.EnsureRegistry(name)
			assert.ErrorIs(t, err, oaserrors.ErrMalformedPath)
			for _, shape := range []Shape{ShapeNode, ShapeList} {
				err := c.Attach(root, Position{Field: name, Shape: shape})
				assert.ErrorIs(t, err, oaserrors.ErrMalformedPath, shape.String())
			}
			if name != "" {
				err := c.Attach(root, Position{Field: name, Shape: ShapeMap, Key: "k"})
				assert.ErrorIs(t, err, oaserrors.ErrMalformedPath)
			}

			assert.Nil(t, c.Parent())
			assert.False(t, root.Has(name))
		})
	}

	t.Run("own entries take an empty field", func(t *testing.T) {
		paths := root.Child("paths")
		item := root.NewChild(KindPathItem)
		require.NoError(t, item.Attach(paths, Position{Shape: ShapeMap, Key: "/users"}))
		p, err := item.Path()
		require.NoError(t, err)
		assert.Equal(t, `/paths["/users"]`, p.String())
		got, err := doc.Resolve(p)
		require.NoError(t, err)
		assert.Same(t, item, got)
	})

	t.Run("value shape", func(t *testing.T) {
		err := root.NewChild(KindInfo).Attach(root, Position{Field: "info3", Shape: ShapeValue})
		assert.ErrorIs(t, err, oaserrors.ErrStructural)
	})
}

func TestNode_SetRejectsNodes(t *testing.T) {
	n := NewNode(KindInfo, OpenAPI3)
	err := n.Set("contact", NewNode(KindContact, OpenAPI3))
	assert.ErrorIs(t, err, oaserrors.ErrStructural)
}

func TestNode_SetAt(t *testing.T) {
	n := NewNode(KindInfo, OpenAPI3)
	require.NoError(t, n.Set("title", "T"))
	require.NoError(t, n.Set("version", "1"))
	require.NoError(t, n.SetAt(1, "summary", "S"))
	require.NoError(t, n.SetAt(0, "version", "2"))
	require.NoError(t, n.SetAt(10, "description", "D"))

	assert.Equal(t, []string{"title", "summary", "version", "description"}, n.PropertyNames())
	assert.Equal(t, "2", n.Text("version"))
	assert.Equal(t, 1, n.PropertyIndex("summary"))
	assert.Equal(t, -1, n.PropertyIndex("contact"))
	assert.ErrorIs(t, n.SetAt(0, "contact", NewNode(KindContact, OpenAPI3)), oaserrors.ErrStructural)
}

func TestNode_Clone(t *testing.T) {
	doc := buildDoc(t)
	resp, err := doc.ResolveString(`/components/responses["NotFoundError"]`)
	require.NoError(t, err)
	resp.AddProblem(Problem{ErrorCode: "X"})
	resp.SetExtension("x-code", int64(404))

	c := resp.Clone()
	assert.Nil(t, c.Parent())
	assert.Nil(t, c.Document())
	assert.Equal(t, "NotFoundError", c.Name())
	assert.Equal(t, resp.Kind(), c.Kind())
	assert.Equal(t, resp.Type(), c.Type())
	assert.Empty(t, c.Problems())
	assert.True(t, value.Equal(resp.ToValue(), c.ToValue()))

	// Mutating the clone leaves the original untouched.
	require.NoError(t, c.Set("description", "changed"))
	c.SetExtension("x-code", int64(410))
	assert.Equal(t, "NotFoundError response", resp.Text("description"))
	v, _ := resp.Extension("x-code")
	assert.Equal(t, int64(404), v)

	whole := doc.Clone()
	assert.True(t, value.Equal(doc.Root().ToValue(), whole.Root().ToValue()))
	n, err := whole.ResolveString(`/paths["/pets/{id}"]/get`)
	require.NoError(t, err)
	assert.Same(t, whole, n.Document())
}

func TestDocument_Import(t *testing.T) {
	doc := buildDoc(t)
	other := NewDocument(AsyncAPI2, KindDocument)

	_, err := other.Import(doc.Root().Child("info"))
	assert.ErrorIs(t, err, oaserrors.ErrUnsupportedConversion)

	same := NewDocument(OpenAPI3, KindDocument)
	imported, err := same.Import(doc.Root().Child("info"))
	require.NoError(t, err)
	require.NoError(t, same.Root().SetChild("info", imported))
	assert.Same(t, same, imported.Document())
	assert.Same(t, doc, doc.Root().Child("info").Document())
}

func TestNode_ToValueOrder(t *testing.T) {
	doc := buildDoc(t)
	v := doc.Root().ToValue()
	assert.Equal(t, []string{"openapi", "info", "servers", "paths", "components", "x-internal"}, v.Keys())

	paths, _ := v.Get("paths")
	assert.Equal(t, []string{"/pets/{id}"}, paths.(*value.Map).Keys())

	comps, _ := v.Get("components")
	responses, _ := comps.(*value.Map).Get("responses")
	assert.Equal(t, []string{"BadRequest", "NotFoundError", "Conflict"}, responses.(*value.Map).Keys())
}

func TestNode_UnsetReleasesChildren(t *testing.T) {
	doc := buildDoc(t)
	root := doc.Root()
	comps := root.Child("components")
	resp, _ := comps.Registry("responses").Get("Conflict")

	assert.True(t, root.Unset("components"))
	assert.Nil(t, comps.Parent())
	assert.Nil(t, resp.Document())
	assert.False(t, root.Unset("components"))
}

func TestRegistry(t *testing.T) {
	doc := buildDoc(t)
	reg := doc.Root().Child("components").Registry("responses")
	orig, _ := reg.Get("NotFoundError")

	t.Run("rename keeps position", func(t *testing.T) {
		require.NoError(t, reg.Rename("NotFoundError", "Missing"))
		assert.Equal(t, []string{"BadRequest", "Missing", "Conflict"}, reg.Keys())
		assert.Equal(t, "Missing", orig.Name())
		p, err := orig.Path()
		require.NoError(t, err)
		assert.Equal(t, `/components/responses["Missing"]`, p.String())

		assert.ErrorIs(t, reg.Rename("Nope", "X"), oaserrors.ErrNodeNotFound)
		assert.ErrorIs(t, reg.Rename("Missing", "Conflict"), oaserrors.ErrStructural)
		require.NoError(t, reg.Rename("Missing", "NotFoundError"))
	})

	t.Run("put replaces in place", func(t *testing.T) {
		repl := doc.Root().NewChild(KindResponse)
		require.NoError(t, reg.Put("NotFoundError", repl))
		assert.Equal(t, []string{"BadRequest", "NotFoundError", "Conflict"}, reg.Keys())
		assert.Nil(t, orig.Parent())
		assert.Equal(t, "NotFoundError", repl.Name())
	})

	t.Run("delete and reinsert", func(t *testing.T) {
		n, idx, ok := reg.Delete("BadRequest")
		require.True(t, ok)
		assert.Equal(t, 0, idx)
		assert.Nil(t, n.Parent())
		require.NoError(t, reg.Insert(idx, "BadRequest", n))
		assert.Equal(t, []string{"BadRequest", "NotFoundError", "Conflict"}, reg.Keys())
		_, _, ok = reg.Delete("nope")
		assert.False(t, ok)
	})
}

func TestList(t *testing.T) {
	doc := buildDoc(t)
	servers := doc.Root().List("servers")
	require.Equal(t, 2, servers.Len())

	first := servers.At(0)
	removed, err := servers.Remove(0)
	require.NoError(t, err)
	assert.Same(t, first, removed)
	assert.Equal(t, "https://b.example", servers.At(0).Text("url"))

	_, err = servers.Remove(7)
	assert.ErrorIs(t, err, oaserrors.ErrNodeNotFound)

	require.NoError(t, servers.Insert(-3, removed))
	assert.Equal(t, 0, servers.IndexOf(removed))
	assert.Nil(t, servers.At(9))
}

func TestDocument_Problems(t *testing.T) {
	doc := buildDoc(t)
	info := doc.Root().Child("info")
	doc.Root().AddProblem(Problem{ErrorCode: "R-003"})
	info.AddProblem(Problem{ErrorCode: "R-002"})
	resp, _ := doc.ResolveString(`/components/responses["Conflict"]`)
	resp.AddProblem(Problem{ErrorCode: "TEST-001"})

	assert.Equal(t, []string{"R-003", "R-002", "TEST-001"}, doc.ProblemCodes())
	assert.Len(t, doc.Problems(), 3)

	doc.ClearProblems()
	assert.Empty(t, doc.ProblemCodes())
	assert.NotNil(t, doc.ProblemCodes())
}

func TestKindDisplayName(t *testing.T) {
	assert.Equal(t, "Path Item", KindPathItem.DisplayName())
	assert.Equal(t, "Schema", KindSchema.DisplayName())
	assert.Equal(t, "Server Variable", KindServerVariable.DisplayName())
}

func TestDocumentType(t *testing.T) {
	for _, dt := range DocumentTypes() {
		text, err := dt.MarshalText()
		require.NoError(t, err)
		var back DocumentType
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, dt, back)
	}
	assert.Equal(t, "openapi3", OpenAPI3.String())
	assert.Equal(t, "unknown", DocumentType{}.String())
	_, err := ParseDocumentType("raml1")
	assert.Error(t, err)
}

func TestAdoptRoot(t *testing.T) {
	n := NewNode(KindDocument, OpenAPI2)
	c, err := n.CreateChild("info", KindInfo)
	require.NoError(t, err)
	doc, err := AdoptRoot(n)
	require.NoError(t, err)
	assert.Same(t, doc, c.Document())
	assert.True(t, n.IsRoot())

	_, err = AdoptRoot(c)
	assert.ErrorIs(t, err, oaserrors.ErrStructural)

	p, err := c.Path()
	require.NoError(t, err)
	assert.True(t, p.Equal(nodepath.New(nodepath.Prop("info"))))
}

func TestNode_ChildAt(t *testing.T) {
	doc := buildDoc(t)
	for _, path := range []string{"/info", "/servers[1]", `/components/responses["Conflict"]`, `/paths["/pets/{id}"]`} {
		n, err := doc.ResolveString(path)
		require.NoError(t, err)
		pos, err := n.Position()
		require.NoError(t, err)
		assert.Same(t, n, n.Parent().ChildAt(pos), path)
	}
	assert.Nil(t, doc.Root().ChildAt(Position{Field: "servers", Shape: ShapeList, Index: 5}))
	assert.Nil(t, doc.Root().ChildAt(Position{Shape: ShapeMap, Key: "nope"}))
	assert.Nil(t, doc.Root().ChildAt(Position{Field: "openapi", Shape: ShapeValue}))
}

func TestShapeText(t *testing.T) {
	for _, s := range []Shape{ShapeValue, ShapeNode, ShapeList, ShapeMap} {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var back Shape
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}
	var s Shape
	assert.Error(t, s.UnmarshalText([]byte("tree")))
}
