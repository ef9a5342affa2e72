// Package value defines the generic value tree exchanged at the boundary
// between text codecs and the typed node model.
//
// A generic value is one of:
//
//   - nil
//   - bool
//   - int64
//   - float64
//   - string
//   - []any of generic values
//   - *Map, an insertion-ordered mapping from string to generic value
//
// Mappings keep insertion order so that keyed collections and unknown
// properties round-trip in the order they were read.
package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"math"
	"slices"
)

// Map is an insertion-ordered string-keyed mapping.
// The zero value is ready to use.
type Map struct {
	keys []string
	vals map[string]any
}

// NewMap returns an empty Map with room for n entries.
func NewMap(n int) *Map {
	return &Map{
		keys: make([]string, 0, n),
		vals: make(map[string]any, n),
	}
}

// MapOf builds a Map from alternating key/value arguments.
// It panics on an odd argument count or a non-string key; intended for
// literals in tests and examples.
func MapOf(kv ...any) *Map {
	if len(kv)%2 != 0 {
		panic("value: MapOf requires an even number of arguments")
	}
	m := NewMap(len(kv) / 2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("value: MapOf key %v is not a string", kv[i]))
		}
		m.Set(k, kv[i+1])
	}
	return m
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores v under key. A new key is appended; an existing key keeps its position.
func (m *Map) Set(key string, v any) {
	if m.vals == nil {
		m.vals = make(map[string]any)
	}
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

// IndexOf returns the position of key, or -1.
func (m *Map) IndexOf(key string) int {
	if m == nil {
		return -1
	}
	return slices.Index(m.keys, key)
}

// Insert stores v under key at position i, clamped to [0, Len()]. An
// existing key is updated in place.
func (m *Map) Insert(i int, key string, v any) {
	if m.vals == nil {
		m.vals = make(map[string]any)
	}
	if _, ok := m.vals[key]; !ok {
		i = min(max(i, 0), len(m.keys))
		m.keys = slices.Insert(m.keys, i, key)
	}
	m.vals[key] = v
}

// Delete removes key and reports whether it was present.
func (m *Map) Delete(key string) bool {
	if m == nil {
		return false
	}
	if _, ok := m.vals[key]; !ok {
		return false
	}
	delete(m.vals, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })
	return true
}

// All iterates entries in insertion order.
func (m *Map) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.vals[k]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of m.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	out := NewMap(len(m.keys))
	for _, k := range m.keys {
		out.Set(k, Clone(m.vals[k]))
	}
	return out
}

// MarshalJSON writes the mapping as a JSON object in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.vals[k])
		if err != nil {
			return nil, fmt.Errorf("value: key %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Clone returns a deep copy of a generic value.
func Clone(v any) any {
	switch t := v.(type) {
	case *Map:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Clone(item)
		}
		return out
	default:
		return v
	}
}

// Equal reports whether two generic values are observably equal.
// Mapping comparison ignores key order; sequence comparison does not.
// Integer and float values compare numerically.
func Equal(a, b any) bool {
	switch x := a.(type) {
	case *Map:
		y, ok := b.(*Map)
		if !ok {
			return false
		}
		if x.Len() != y.Len() {
			return false
		}
		for k, xv := range x.All() {
			yv, ok := y.Get(k)
			if !ok || !Equal(xv, yv) {
				return false
			}
		}
		return true
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case int64:
		switch y := b.(type) {
		case int64:
			return x == y
		case float64:
			return float64(x) == y
		}
		return false
	case float64:
		switch y := b.(type) {
		case float64:
			return x == y || (math.IsNaN(x) && math.IsNaN(y))
		case int64:
			return x == float64(y)
		}
		return false
	default:
		return a == b
	}
}

// Normalize converts native Go data (as produced by encoding/json or written
// as literals) into a generic value. Native maps have their keys sorted since
// they carry no order of their own.
func Normalize(v any) (any, error) {
	switch t := v.(type) {
	case nil, bool, string, int64, float64:
		return t, nil
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case uint:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return float64(t), nil
		}
		return int64(t), nil
	case float32:
		return float64(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("value: invalid number %q: %w", t, err)
		}
		return f, nil
	case *Map:
		out := NewMap(t.Len())
		for k, item := range t.All() {
			nv, err := Normalize(item)
			if err != nil {
				return nil, err
			}
			out.Set(k, nv)
		}
		return out, nil
	case map[string]any:
		out := NewMap(len(t))
		for _, k := range slices.Sorted(maps.Keys(t)) {
			nv, err := Normalize(t[k])
			if err != nil {
				return nil, err
			}
			out.Set(k, nv)
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			nv, err := Normalize(item)
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("value: unsupported type %T", v)
	}
}

// IsScalar reports whether v is a scalar generic value.
func IsScalar(v any) bool {
	switch v.(type) {
	case *Map, []any:
		return false
	}
	return true
}

// Native converts a generic value to plain Go maps and slices, the shape
// expected by expression engines and encoding/json consumers.
func Native(v any) any {
	switch t := v.(type) {
	case *Map:
		out := make(map[string]any, t.Len())
		for k, item := range t.All() {
			out[k] = Native(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Native(item)
		}
		return out
	default:
		return v
	}
}
