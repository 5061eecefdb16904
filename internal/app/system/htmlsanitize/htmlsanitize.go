// Package htmlsanitize cleans user-entered text before it is stored.
//
// Submission fields are plain text. Any markup a client sends is removed
// and entities are decoded, so stored values never need escaping twice.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict drops every tag. It is safe for concurrent use once built.
var strict = bluemonday.StrictPolicy()

// StripTags returns s with all markup removed and surrounding whitespace
// trimmed. The contents of script and style elements are dropped.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	// Nothing for the policy to remove and no entities to decode.
	if IsPlainText(s) && !strings.Contains(s, "&") {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// StripAll applies StripTags to each element, returning a new slice.
func StripAll(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		out = append(out, StripTags(v))
	}
	return out
}

// IsPlainText reports whether s contains no markup.
func IsPlainText(s string) bool {
	return !strings.ContainsAny(s, "<>")
}
