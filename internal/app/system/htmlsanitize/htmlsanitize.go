// Package htmlsanitize strips unsafe markup from user-supplied text.
//
// Card descriptions and comments are stored as plain text: scripts, event
// handlers, and every other tag are removed before the text is stored.
package htmlsanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips all markup, leaving text content only.
var strictPolicy = bluemonday.StrictPolicy()

// SanitizeStrict removes all markup from user-supplied text. Applied to card
// descriptions and comment bodies, which may span multiple lines.
func SanitizeStrict(s string) string {
	return strictPolicy.Sanitize(s)
}
