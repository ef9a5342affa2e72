package rules

import (
	"github.com/erraggy/oasmodel/internal/stringutil"
	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/parser"
	"github.com/erraggy/oasmodel/validator"
)

// Error codes of the built-in rules.
const (
	CodeMissingInfo         = "R-001"
	CodeMissingTitle        = "R-002"
	CodeInvalidVersion      = "R-003"
	CodeMissingInfoVersion  = "R-004"
	CodeInvalidContactEmail = "INF-003"
	CodeInvalidAPIID        = "AAI-001"
	CodeDanglingReference   = "REF-001"
)

// Rule categories.
const (
	CategoryRequired  = "Required Property"
	CategoryValue     = "Invalid Property Value"
	CategoryFormat    = "Invalid Property Format"
	CategoryReference = "Invalid Reference"
)

// Builtin returns fresh instances of the built-in rules in their canonical
// order.
func Builtin() []*validator.Rule {
	return []*validator.Rule{
		MissingInfo(),
		MissingTitle(),
		InvalidVersion(),
		MissingInfoVersion(),
		InvalidContactEmail(),
		InvalidAPIID(),
		DanglingReference(),
	}
}

// MissingInfo reports documents without an info object.
func MissingInfo() *validator.Rule {
	return validator.NewRule(validator.RuleMeta{
		Code:            CodeMissingInfo,
		Name:            "Missing API Information",
		Category:        CategoryRequired,
		Severity:        validator.SeverityHigh,
		MessageTemplate: "API is missing the 'info' property.",
	}).On(model.KindDocument, func(r *validator.Reporter, n *model.Node) error {
		r.ReportIfInvalid(n.Child("info") != nil, "info")
		return nil
	})
}

// MissingTitle reports an info object without a title.
func MissingTitle() *validator.Rule {
	return validator.NewRule(validator.RuleMeta{
		Code:            CodeMissingTitle,
		Name:            "Missing API Title",
		Category:        CategoryRequired,
		Severity:        validator.SeverityHigh,
		MessageTemplate: "API is missing a title.",
	}).On(model.KindInfo, func(r *validator.Reporter, n *model.Node) error {
		r.ReportIfInvalid(n.Text("title") != "", "title")
		return nil
	})
}

// InvalidVersion reports a declared version string that is not a published
// version of the document's specification.
func InvalidVersion() *validator.Rule {
	return validator.NewRule(validator.RuleMeta{
		Code:            CodeInvalidVersion,
		Name:            "Invalid Specification Version",
		Category:        CategoryValue,
		Severity:        validator.SeverityHigh,
		MessageTemplate: "Unsupported specification version %q (latest known is %s).",
	}).On(model.KindDocument, func(r *validator.Reporter, n *model.Node) error {
		typ := n.Type()
		field := parser.VersionField(typ)
		declared := n.Text(field)
		if !parser.IsKnownVersion(typ, declared) {
			r.ReportContext(map[string]string{"property": field, "version": declared},
				declared, parser.LatestVersion(typ))
		}
		return nil
	})
}

// MissingInfoVersion reports an info object without a version.
func MissingInfoVersion() *validator.Rule {
	return validator.NewRule(validator.RuleMeta{
		Code:            CodeMissingInfoVersion,
		Name:            "Missing API Version",
		Category:        CategoryRequired,
		Severity:        validator.SeverityHigh,
		MessageTemplate: "API is missing a version.",
	}).On(model.KindInfo, func(r *validator.Reporter, n *model.Node) error {
		r.ReportIfInvalid(n.Text("version") != "", "version")
		return nil
	})
}

// InvalidContactEmail reports a contact email that is not an address.
func InvalidContactEmail() *validator.Rule {
	return validator.NewRule(validator.RuleMeta{
		Code:            CodeInvalidContactEmail,
		Name:            "Invalid Contact Email",
		Category:        CategoryFormat,
		Severity:        validator.SeverityMedium,
		MessageTemplate: "Contact email '%v' is an incorrect format.",
	}).On(model.KindContact, func(r *validator.Reporter, n *model.Node) error {
		v, ok := n.Get("email")
		if !ok {
			return nil
		}
		email, _ := v.(string)
		r.ReportIfInvalid(stringutil.IsValidEmail(email), "email", v)
		return nil
	})
}

// InvalidAPIID reports an AsyncAPI id that is not an absolute URI.
func InvalidAPIID() *validator.Rule {
	return validator.NewRule(validator.RuleMeta{
		Code:            CodeInvalidAPIID,
		Name:            "Invalid API ID",
		Category:        CategoryFormat,
		Severity:        validator.SeverityMedium,
		AppliesTo:       []model.DocumentType{model.AsyncAPI2},
		MessageTemplate: "API id must be a URI in RFC 3986 format.",
	}).On(model.KindDocument, func(r *validator.Reporter, n *model.Node) error {
		v, ok := n.Get("id")
		if !ok {
			return nil
		}
		id, _ := v.(string)
		r.ReportIfInvalid(stringutil.IsAbsoluteURI(id), "id")
		return nil
	})
}
