package token

import "strings"

// Scheme is the HTTP authorization scheme used for session tokens.
const Scheme = "Bearer"

// FormatBearer returns the Authorization header value for tok.
func FormatBearer(tok string) string {
	return Scheme + " " + tok
}

// ParseBearer extracts the token from an Authorization header value.
// It returns "" when the header does not carry a bearer credential.
func ParseBearer(header string) string {
	const prefix = Scheme + " "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
