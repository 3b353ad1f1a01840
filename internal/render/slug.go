package render

import (
	"regexp"
	"strings"
)

var (
	nonSlugRE    = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// Slugify converts a title into an anchor/filename-safe slug: lowercase,
// punctuation stripped, whitespace runs collapsed to single hyphens. The
// same function is used for anchor ids and the links that target them, so
// navigation cannot drift.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlugRE.ReplaceAllString(s, "")
	s = whitespaceRE.ReplaceAllString(strings.TrimSpace(s), "-")
	return s
}
