package rules

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/validator"
	"github.com/erraggy/oasmodel/value"
)

// DanglingReference reports local "$ref" values ("#/...") that point at
// nothing in the document. Remote references are not followed.
func DanglingReference() *validator.Rule {
	r := validator.NewRule(validator.RuleMeta{
		Code:            CodeDanglingReference,
		Name:            "Unresolvable Reference",
		Category:        CategoryReference,
		Severity:        validator.SeverityHigh,
		MessageTemplate: "Reference %q cannot be resolved.",
	})
	check := func(r *validator.Reporter, n *model.Node) error {
		v, ok := n.Get("$ref")
		if !ok {
			v, ok = n.Extension("$ref")
		}
		ref, isString := v.(string)
		if !ok || !isString || !strings.HasPrefix(ref, "#") {
			return nil
		}
		r.ReportIfInvalid(ResolvePointer(n.Document().Root(), ref), "$ref", ref)
		return nil
	}
	for _, k := range []model.Kind{
		model.KindSchema, model.KindParameter, model.KindResponse, model.KindRequestBody,
		model.KindHeader, model.KindExample, model.KindLink, model.KindCallback,
		model.KindSecurityScheme, model.KindPathItem, model.KindChannelItem, model.KindMessage,
	} {
		r.On(k, check)
	}
	return r
}

// ResolvePointer reports whether the local JSON pointer ref ("#/a/b")
// addresses a property, entry, list item or extension value under root.
func ResolvePointer(root *model.Node, ref string) bool {
	frag, ok := strings.CutPrefix(ref, "#")
	if !ok {
		return false
	}
	if frag == "" {
		return true
	}
	frag, ok = strings.CutPrefix(frag, "/")
	if !ok {
		return false
	}

	var cur any = root
	for _, tok := range strings.Split(frag, "/") {
		tok, err := url.PathUnescape(tok)
		if err != nil {
			return false
		}
		tok = strings.NewReplacer("~1", "/", "~0", "~").Replace(tok)
		if cur, ok = step(cur, tok); !ok {
			return false
		}
	}
	return true
}

func step(cur any, tok string) (any, bool) {
	switch t := cur.(type) {
	case *model.Node:
		if v, ok := t.Get(tok); ok {
			return v, true
		}
		if c, ok := t.Entries().Get(tok); ok {
			return c, true
		}
		return t.Extension(tok)
	case *model.Registry:
		return t.Get(tok)
	case *model.List:
		i, err := strconv.Atoi(tok)
		if err != nil || i < 0 || i >= t.Len() {
			return nil, false
		}
		return t.At(i), true
	case *value.Map:
		return t.Get(tok)
	case []any:
		i, err := strconv.Atoi(tok)
		if err != nil || i < 0 || i >= len(t) {
			return nil, false
		}
		return t[i], true
	}
	return nil, false
}
