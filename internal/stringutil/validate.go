package stringutil

import "regexp"

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// absoluteURIRegex follows the RFC 3986 absolute-URI production: a scheme,
	// a colon and then only unreserved, reserved or percent-encoded characters.
	absoluteURIRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*:(?:[A-Za-z0-9\-._~:/?#\[\]@!$&'()*+,;=]|%[0-9A-Fa-f]{2})*$`)
)

// IsValidEmail checks if s is a valid email address.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsAbsoluteURI checks if s is an RFC 3986 URI with a scheme, such as
// "https://example.com/api" or "urn:example:api".
func IsAbsoluteURI(s string) bool {
	return absoluteURIRegex.MatchString(s)
}
