package match

import (
	"strings"
	"unicode"
)

// Normalize lower-cases a property name and removes the separators people
// tend to mix up ('_', '-', ' '), so "street_name", "streetName" and
// "Street-Name" compare equal.
func Normalize(name string) string {
	var b strings.Builder

	b.Grow(len(name))

	for _, r := range name {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}
