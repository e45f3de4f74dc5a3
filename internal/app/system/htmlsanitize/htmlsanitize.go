// Package htmlsanitize strips unsafe markup from user-supplied text.
//
// Scheme descriptions, eligibility text, and the other free-text fields are
// entered by portal staff and rendered verbatim by clients, so anything that
// looks like markup is removed before the record is stored.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// StripTags removes all HTML elements and attributes from s, returning the
// remaining text content trimmed of surrounding whitespace.
func StripTags(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
