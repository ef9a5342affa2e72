package parser

import (
	"slices"

	"github.com/erraggy/oasmodel/model"
)

// knownVersions lists the published version strings of each document type.
var knownVersions = map[model.DocumentType][]string{
	model.OpenAPI2:  {"2.0"},
	model.OpenAPI3:  {"3.0.0", "3.0.1", "3.0.2", "3.0.3", "3.0.4", "3.1.0", "3.1.1", "3.1.2", "3.2.0"},
	model.AsyncAPI2: {"2.0.0", "2.1.0", "2.2.0", "2.3.0", "2.4.0", "2.5.0", "2.6.0"},
}

// versionFields names the root property declaring the version of each dialect
// family, in detection order.
var versionFields = []struct {
	field   string
	dialect model.Dialect
}{
	{"openapi", model.DialectOpenAPI},
	{"swagger", model.DialectOpenAPI},
	{"asyncapi", model.DialectAsyncAPI},
}

// KnownVersions returns the published versions of typ, oldest first.
func KnownVersions(typ model.DocumentType) []string {
	return slices.Clone(knownVersions[typ])
}

// IsKnownVersion reports whether s is a published version of typ.
func IsKnownVersion(typ model.DocumentType, s string) bool {
	return slices.Contains(knownVersions[typ], s)
}

// LatestVersion returns the newest published version of typ.
func LatestVersion(typ model.DocumentType) string {
	vs := knownVersions[typ]
	if len(vs) == 0 {
		return ""
	}
	return vs[len(vs)-1]
}

// VersionField returns the root property declaring the version of typ.
func VersionField(typ model.DocumentType) string {
	switch typ {
	case model.OpenAPI2:
		return "swagger"
	case model.OpenAPI3:
		return "openapi"
	case model.AsyncAPI2:
		return "asyncapi"
	}
	return ""
}

// DeclaredVersion returns the version string declared by a document root.
func DeclaredVersion(doc *model.Document) string {
	return doc.Root().Text(VersionField(doc.Type()))
}

// CompareVersions orders two version strings. Unparseable strings sort first.
func CompareVersions(a, b string) int {
	va, errA := parseVersion(a)
	vb, errB := parseVersion(b)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	return va.compare(vb)
}
