package domain

import (
	"strings"
	"unicode"
)

// NormalizeWord reduces a raw spelling to its canonical key:
//   - drops every rune that is not a letter, space, or hyphen
//   - collapses runs of spaces and runs of hyphens to a single occurrence
//   - trims leading/trailing spaces and hyphens
//   - lowercases
//
// The function is idempotent: NormalizeWord(NormalizeWord(s)) == NormalizeWord(s).
func NormalizeWord(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	var prev rune
	for _, r := range raw {
		switch {
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToLower(r))
			prev = r
		case unicode.IsSpace(r):
			if prev == ' ' {
				continue
			}
			b.WriteByte(' ')
			prev = ' '
		case r == '-':
			if prev == '-' {
				continue
			}
			b.WriteByte('-')
			prev = '-'
		}
	}

	return strings.Trim(b.String(), " -")
}

// IsSearchableWord reports whether raw is a syntactically valid lookup term:
// at least one letter, and nothing besides letters, spaces, and hyphens.
func IsSearchableWord(raw string) bool {
	hasLetter := false
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case r == ' ' || r == '-':
		default:
			return false
		}
	}
	return hasLetter
}
