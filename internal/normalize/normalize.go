// Package normalize provides text normalization for matching and searching.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Fold lowercases a string and strips diacritics so that substring matching
// is case- and accent-insensitive. "Ramón" and "ramon" fold to the same form.
func Fold(s string) string {
	// Decompose accented characters, then drop the combining marks.
	s = norm.NFKD.String(s)

	s = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, s)

	return strings.ToLower(s)
}

// Contains reports whether substr occurs in s under folded comparison.
// An empty substr matches nothing rather than everything; callers treat
// an empty query as "no query" before reaching this point.
func Contains(s, substr string) bool {
	if substr == "" {
		return false
	}
	return strings.Contains(Fold(s), Fold(substr))
}
