package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent normalizes a key for fuzzy matching: the key is lower-cased
// and separators (_, -, spaces) are stripped, so "userName", "user_name" and
// "User-Name" compare equal.
func NormalizeIdent(s string) string {
	var result strings.Builder

	result.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}

// isSeparator returns true if the rune is a common separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}
