package rules

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasmodel/oaserrors"
	"github.com/erraggy/oasmodel/validator"
)

// File is the content of a rule file:
//
//	severities:
//	  R-004: low
//	  INF-003: ignore
//	rules:
//	  - code: OP-001
//	    name: Missing Operation ID
//	    severity: medium
//	    appliesTo: [openapi2, openapi3]
//	    kinds: [operation]
//	    property: operationId
//	    assert: '"operationId" in node'
//	    messageTemplate: Operation is missing an operationId.
type File struct {
	Severities validator.Severities `yaml:"severities,omitempty"`
	Rules      []ExprSpec           `yaml:"rules,omitempty"`
}

// Compile builds the declared rules.
func (f *File) Compile() ([]*validator.Rule, error) {
	out := make([]*validator.Rule, 0, len(f.Rules))
	for _, spec := range f.Rules {
		r, err := Expr(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Load decodes a rule file from YAML (or JSON) text.
func Load(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &oaserrors.ParseError{Message: "invalid rule file", Cause: err}
	}
	return &f, nil
}

// LoadFile reads and decodes the rule file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rules: failed to read %s: %w", path, err)
	}
	f, err := Load(data)
	if err != nil {
		if pe, ok := err.(*oaserrors.ParseError); ok {
			pe.Path = path
		}
		return nil, err
	}
	return f, nil
}
