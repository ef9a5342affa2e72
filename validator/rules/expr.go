package rules

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/parser"
	"github.com/erraggy/oasmodel/validator"
	"github.com/erraggy/oasmodel/value"
)

// ExprSpec declares a rule whose check is an expr-lang boolean expression.
// The assertion must hold for every node of the listed kinds; a false
// result is reported against Property.
//
// The expression sees:
//
//	node     the node's properties and extensions as plain maps and slices;
//	         child nodes carry only their own properties and extensions
//	kind     the node kind, e.g. "operation"
//	name     the node's key in its parent collection, or ""
//	path     the node path, e.g. /paths["/pets"]/get
//	doctype  the document type, e.g. "openapi3"
//	version  the declared specification version
//
// Example: `"operationId" in node && node.operationId matches "^[a-z]"`.
type ExprSpec struct {
	validator.RuleMeta `yaml:",inline"`

	Kinds    []model.Kind `json:"kinds" yaml:"kinds"`
	Property string       `json:"property,omitempty" yaml:"property,omitempty"`
	Assert   string       `json:"assert" yaml:"assert"`
}

type exprEnv struct {
	Node    map[string]any `expr:"node"`
	Kind    string         `expr:"kind"`
	Name    string         `expr:"name"`
	Path    string         `expr:"path"`
	DocType string         `expr:"doctype"`
	Version string         `expr:"version"`
}

// Expr compiles spec into a rule.
func Expr(spec ExprSpec) (*validator.Rule, error) {
	if spec.Code == "" {
		return nil, errors.New("rules: expression rule needs a code")
	}
	if len(spec.Kinds) == 0 {
		return nil, fmt.Errorf("rules: %s: no node kinds", spec.Code)
	}
	if spec.MessageTemplate == "" {
		spec.MessageTemplate = fmt.Sprintf("Assertion failed: %s", spec.Assert)
	}

	program, err := expr.Compile(spec.Assert, expr.Env(exprEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("rules: %s: compiling %q: %w", spec.Code, spec.Assert, err)
	}

	rule := validator.NewRule(spec.RuleMeta)
	check := func(r *validator.Reporter, n *model.Node) error {
		env := exprEnv{
			Node:    nodeEnv(n, true),
			Kind:    string(n.Kind()),
			Name:    n.Name(),
			Path:    r.Path(),
			DocType: n.Type().String(),
			Version: declaredVersion(n),
		}
		out, err := vm.Run(program, env)
		if err != nil {
			return fmt.Errorf("evaluating %q: %w", spec.Assert, err)
		}
		ok, _ := out.(bool)
		r.ReportIfInvalid(ok, spec.Property)
		return nil
	}
	for _, k := range spec.Kinds {
		rule.On(k, check)
	}
	return rule, nil
}

func declaredVersion(n *model.Node) string {
	if doc := n.Document(); doc != nil {
		return parser.DeclaredVersion(doc)
	}
	return ""
}

// nodeEnv flattens n's properties and extensions. With children set, child
// nodes, lists and registries are flattened one level deep; below that they
// are left out so a validation pass never copies a subtree more than twice.
func nodeEnv(n *model.Node, children bool) map[string]any {
	out := make(map[string]any)
	for name, v := range n.Properties() {
		switch t := v.(type) {
		case *model.Node:
			if children {
				out[name] = nodeEnv(t, false)
			}
		case *model.List:
			if children {
				items := make([]any, 0, t.Len())
				for _, c := range t.All() {
					items = append(items, nodeEnv(c, false))
				}
				out[name] = items
			}
		case *model.Registry:
			if children {
				entries := make(map[string]any, t.Len())
				for k, c := range t.All() {
					entries[k] = nodeEnv(c, false)
				}
				out[name] = entries
			}
		default:
			out[name] = value.Native(t)
		}
	}
	if children && n.Entries() != nil {
		for k, c := range n.Entries().All() {
			out[k] = nodeEnv(c, false)
		}
	}
	for k, v := range n.ExtensionEntries() {
		out[k] = value.Native(v)
	}
	return out
}
