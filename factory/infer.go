package factory

import (
	"math"
	"regexp"

	"github.com/erraggy/oasmodel/value"
)

var (
	dateRe     = regexp.MustCompile(`^(\d{4})\D?(0[1-9]|1[0-2])\D?([12]\d|0[1-9]|3[01])$`)
	dateTimeRe = regexp.MustCompile(`^(\d{4})\D?(0[1-9]|1[0-2])\D?([12]\d|0[1-9]|3[01])(\D?([01]\d|2[0-3])\D?([0-5]\d)\D?([0-5]\d)?\D?(\d{3})?([zZ]|([\+-])([01]\d|2[0-3])\D?([0-5]\d)?)?)?$`)
)

// InferSchema builds a schema (as a generic mapping) describing example.
// Objects become "object" schemas with one property per key, in key order;
// arrays become "array" schemas whose items describe the first element.
// The result is a starting point, not a canonical schema.
func InferSchema(example any) *value.Map {
	s := value.NewMap(3)
	infer(example, s)
	return s
}

func infer(v any, s *value.Map) {
	switch t := v.(type) {
	case int64:
		s.Set("type", "integer")
		if t >= -math.MaxInt32 && t <= math.MaxInt32 {
			s.Set("format", "int32")
		} else {
			s.Set("format", "int64")
		}
	case float64:
		s.Set("type", "number")
		s.Set("format", "double")
	case bool:
		s.Set("type", "boolean")
	case string:
		s.Set("type", "string")
		switch {
		case dateRe.MatchString(t):
			s.Set("format", "date")
		case dateTimeRe.MatchString(t):
			s.Set("format", "date-time")
		}
	case nil:
		s.Set("type", "string")
	case []any:
		s.Set("type", "array")
		items := value.NewMap(2)
		if len(t) > 0 {
			infer(t[0], items)
		}
		s.Set("items", items)
	case *value.Map:
		s.Set("type", "object")
		props := value.NewMap(t.Len())
		for k, item := range t.All() {
			ps := value.NewMap(2)
			infer(item, ps)
			props.Set(k, ps)
		}
		s.Set("properties", props)
	}
}
