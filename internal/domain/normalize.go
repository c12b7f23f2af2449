package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeWord prepares a word for lookup against the lexicon:
//   - applies NFKC folding (full-width letters, ligatures)
//   - trims leading/trailing whitespace
//   - converts to uppercase
//
// Inner characters are preserved; callers that need a plain alphabetic
// word should check IsAlphaWord afterwards.
func NormalizeWord(word string) string {
	word = strings.TrimSpace(norm.NFKC.String(word))
	if word == "" {
		return ""
	}
	return strings.ToUpper(word)
}

// IsAlphaWord reports whether s is a non-empty run of ASCII letters.
// Only such words enter the lexicon.
func IsAlphaWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}
