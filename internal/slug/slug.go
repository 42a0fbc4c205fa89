// Package slug derives URL-safe project slugs from titles.
package slug

import (
	"regexp"
	"strings"
)

var (
	// Pattern is the shape every stored slug has.
	Pattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	separators      = regexp.MustCompile(`[\s_]+`)
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate lowercases s, turns whitespace into hyphens and drops everything else
// that is not a letter, digit or hyphen.
// Example: "Hello, World! 2026" -> "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = separators.ReplaceAllString(result, "-")
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}

// Valid reports whether s can be stored as a slug.
func Valid(s string) bool {
	return Pattern.MatchString(s)
}
