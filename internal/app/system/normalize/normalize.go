// Package normalize provides canonical forms for user-supplied strings
// before they are stored or compared.
package normalize

import "strings"

// Email lowercases and trims an email address. Emails are compared and
// indexed in this form only.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Label trims a card label. Empty after trimming means no label.
func Label(s string) string {
	return strings.TrimSpace(s)
}

// QueryParam trims a free-form query parameter such as a search string.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
