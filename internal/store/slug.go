package store

import (
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slug normalizes free text into a stable lowercase identifier: runs of
// non-alphanumerics collapse to single dashes. Used for game ids, team ids
// and synthesized player ids, so the same input always yields the same id.
func Slug(s string) string {
	s = slugPattern.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}
