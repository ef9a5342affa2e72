package parser

import (
	"fmt"

	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/oaserrors"
	"github.com/erraggy/oasmodel/value"
)

// Detect infers the document type of a generic value from its version marker
// ("openapi", "swagger" or "asyncapi"). The marker must be a version string
// whose major version is supported; the full version need not be a published
// one, so that rules can report it.
func Detect(v any) (model.DocumentType, error) {
	typ, _, err := DetectVersion(v)
	return typ, err
}

// DetectVersion is like Detect and also returns the declared version string.
func DetectVersion(v any) (model.DocumentType, string, error) {
	m, ok := v.(*value.Map)
	if !ok {
		return model.DocumentType{}, "", unrecognized(fmt.Sprintf("expected a mapping at the document root, got %s", describe(v)))
	}
	for _, vf := range versionFields {
		raw, ok := m.Get(vf.field)
		if !ok {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			return model.DocumentType{}, "", unrecognized(fmt.Sprintf("%s must be a string, got %s", vf.field, describe(raw)))
		}
		ver, err := parseVersion(s)
		if err != nil {
			return model.DocumentType{}, s, unrecognized(fmt.Sprintf("%s %q: %v", vf.field, s, err))
		}
		typ := model.DocumentType{Dialect: vf.dialect, Major: ver.major()}
		if _, known := knownVersions[typ]; !known || VersionField(typ) != vf.field {
			return model.DocumentType{}, s, unrecognized(fmt.Sprintf("%s %q is not a supported major version", vf.field, s))
		}
		return typ, s, nil
	}
	return model.DocumentType{}, "", unrecognized("no openapi, swagger or asyncapi version field")
}

func unrecognized(msg string) error {
	return &oaserrors.UnsupportedError{Reason: oaserrors.ReasonDocumentType, Message: msg}
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case *value.Map:
		return "mapping"
	case []any:
		return "sequence"
	default:
		return fmt.Sprintf("%T", v)
	}
}
