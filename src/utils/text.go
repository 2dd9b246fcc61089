package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldAccents strips combining marks, so "Reparación" becomes "Reparacion".
// A new transformer is built per call because transform chains are stateful.
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// NormalizeKey collapses a header or code to lowercase letters and digits only:
// accents folded, whitespace, underscores, hyphens and punctuation removed.
// NormalizeKey(NormalizeKey(x)) == NormalizeKey(x).
func NormalizeKey(s string) string {
	folded := strings.ToLower(FoldAccents(s))
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeText lowercases, folds accents and collapses runs of whitespace to a single space.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(FoldAccents(s))), " ")
}
