package utils

import (
	"strings"
	"unicode"
)

// SanitizeInput trims user text and strips control characters other than
// line breaks and tabs. Output escaping is left to the renderer.
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)
}

// SanitizeEmail trims and lower-cases an email address
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
