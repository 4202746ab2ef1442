// Package slug builds URL slugs from article and category titles, keeping
// Arabic letters intact alongside latin word characters.
package slug

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

func keep(r rune) bool {
	if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
		return true
	}
	// Arabic letters أ through ي.
	return r >= 'أ' && r <= 'ي'
}

// Normalize lowercases title, strips everything that is not a latin word
// character, a digit, an Arabic letter, or whitespace, and joins the remaining
// words with hyphens.
func Normalize(title string) string {
	lowered := strings.ToLower(strings.TrimSpace(title))
	var b strings.Builder
	for _, r := range lowered {
		switch {
		case keep(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), "-")
}

// WithSuffix disambiguates a colliding slug by appending the current unix
// millisecond timestamp.
func WithSuffix(s string) string {
	return s + "-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}
