package services

import (
	"regexp"
	"strings"
)

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugCollapse = regexp.MustCompile(`-+`)
)

// Slugify derives a URL slug from a human title: lowercase, drop anything
// that is not a word character, space or hyphen, turn runs of whitespace
// into single hyphens and collapse repeated hyphens.
func Slugify(s string) string {
	out := strings.ToLower(strings.TrimSpace(s))
	out = slugStrip.ReplaceAllString(out, "")
	out = slugSpaces.ReplaceAllString(out, "-")
	out = slugCollapse.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}
