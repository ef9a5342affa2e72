package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/erraggy/oasmodel/oaserrors"
	"github.com/erraggy/oasmodel/value"
	"go.yaml.in/yaml/v4"
)

// SourceFormat represents the text format of a document.
type SourceFormat string

const (
	// SourceFormatYAML indicates YAML text.
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates JSON text.
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the format could not be determined.
	SourceFormatUnknown SourceFormat = "unknown"
)

// DetectFormat guesses the format of data: JSON starts with '{' or '['.
func DetectFormat(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	switch {
	case len(trimmed) == 0:
		return SourceFormatUnknown
	case trimmed[0] == '{' || trimmed[0] == '[':
		return SourceFormatJSON
	default:
		return SourceFormatYAML
	}
}

// ParseText decodes JSON or YAML text into a generic value. Mapping order
// is preserved; integers decode to int64 and other numbers to float64.
// Aliases are expanded in place. An anchor that contains an alias to itself,
// or aliasing that inflates the document far beyond its text, is a
// ParseError.
func ParseText(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &oaserrors.ParseError{Message: "invalid JSON or YAML", Cause: err}
	}
	if root.Kind == 0 {
		return nil, &oaserrors.ParseError{Message: "empty document"}
	}
	d := &textDecoder{expanding: make(map[*yaml.Node]bool)}
	return d.value(&root)
}

// textDecoder turns a yaml.Node tree into generic values. It counts decoded
// nodes, and nodes decoded through aliases, to bound alias expansion.
type textDecoder struct {
	expanding  map[*yaml.Node]bool // anchors on the current alias stack
	aliasDepth int
	decoded    int
	viaAlias   int
}

// allowedAliasRatio is the largest share of decoded nodes that may come from
// alias expansion. Small documents may alias freely; the share shrinks
// linearly to 10% between 400k and 4M decoded nodes.
func allowedAliasRatio(decoded int) float64 {
	switch {
	case decoded <= 400_000:
		return 0.99
	case decoded >= 4_000_000:
		return 0.10
	}
	return 0.99 - 0.89*float64(decoded-400_000)/3_600_000
}

func (d *textDecoder) value(n *yaml.Node) (any, error) {
	d.decoded++
	if d.aliasDepth > 0 {
		d.viaAlias++
	}
	if d.viaAlias > 100 && d.decoded > 1000 && float64(d.viaAlias)/float64(d.decoded) > allowedAliasRatio(d.decoded) {
		return nil, &oaserrors.ParseError{Line: n.Line, Column: n.Column, Message: "document contains excessive aliasing"}
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return d.value(n.Content[0])
	case yaml.AliasNode:
		return d.alias(n)
	case yaml.MappingNode:
		m := value.NewMap(len(n.Content) / 2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, &oaserrors.ParseError{Line: k.Line, Column: k.Column, Message: "mapping keys must be scalars"}
			}
			v, err := d.value(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(k.Value, v)
		}
		return m, nil
	case yaml.SequenceNode:
		items := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := d.value(c)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return items, nil
	case yaml.ScalarNode:
		return scalarValue(n)
	}
	return nil, &oaserrors.ParseError{Line: n.Line, Column: n.Column, Message: fmt.Sprintf("unsupported YAML node kind %v", n.Kind)}
}

func (d *textDecoder) alias(n *yaml.Node) (any, error) {
	target := n.Alias
	if target == nil {
		return nil, &oaserrors.ParseError{Line: n.Line, Column: n.Column, Message: fmt.Sprintf("unknown anchor %q", n.Value)}
	}
	if d.expanding[target] {
		return nil, &oaserrors.ParseError{Line: n.Line, Column: n.Column, Message: fmt.Sprintf("anchor %q value contains itself", target.Anchor)}
	}
	d.expanding[target] = true
	d.aliasDepth++
	v, err := d.value(target)
	d.aliasDepth--
	delete(d.expanding, target)
	return v, err
}

func scalarValue(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, scalarError(n, err)
		}
		return b, nil
	case "!!int":
		if i, err := strconv.ParseInt(strings.ReplaceAll(n.Value, "_", ""), 0, 64); err == nil {
			return i, nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, scalarError(n, err)
		}
		return f, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, scalarError(n, err)
		}
		return f, nil
	default:
		// Strings, timestamps and custom tags are kept as their literal text.
		return n.Value, nil
	}
}

func scalarError(n *yaml.Node, err error) error {
	return &oaserrors.ParseError{Line: n.Line, Column: n.Column, Message: fmt.Sprintf("invalid scalar %q", n.Value), Cause: err}
}

// MarshalJSON encodes a generic value as JSON, keeping mapping order.
// A non-empty indent produces indented output.
func MarshalJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("parser: marshal JSON: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalYAML encodes a generic value as YAML, keeping mapping order.
func MarshalYAML(v any) ([]byte, error) {
	n, err := valueToNode(v)
	if err != nil {
		return nil, fmt.Errorf("parser: marshal YAML: %w", err)
	}
	return yaml.Marshal(n)
}

// MarshalText encodes v in the given format; unknown formats produce YAML.
func MarshalText(v any, format SourceFormat) ([]byte, error) {
	if format == SourceFormatJSON {
		return MarshalJSON(v, "  ")
	}
	return MarshalYAML(v)
}

// scalarNode creates a yaml.Node for a scalar value.
func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// valueToNode converts a generic value to a yaml.Node.
func valueToNode(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case nil:
		return scalarNode("!!null", "null"), nil
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(val)), nil
	case int:
		return scalarNode("!!int", strconv.Itoa(val)), nil
	case int64:
		return scalarNode("!!int", strconv.FormatInt(val, 10)), nil
	case float64:
		switch {
		case math.IsNaN(val):
			return scalarNode("!!float", ".nan"), nil
		case math.IsInf(val, 1):
			return scalarNode("!!float", ".inf"), nil
		case math.IsInf(val, -1):
			return scalarNode("!!float", "-.inf"), nil
		}
		return scalarNode("!!float", strconv.FormatFloat(val, 'g', -1, 64)), nil
	case string:
		return scalarNode("!!str", val), nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Content: make([]*yaml.Node, 0, len(val))}
		for _, item := range val {
			child, err := valueToNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case *value.Map:
		node := &yaml.Node{Kind: yaml.MappingNode, Content: make([]*yaml.Node, 0, val.Len()*2)}
		for k, item := range val.All() {
			child, err := valueToNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, scalarNode("!!str", k), child)
		}
		return node, nil
	default:
		norm, err := value.Normalize(v)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("cannot convert %T to yaml.Node", v), err)
		}
		return valueToNode(norm)
	}
}
