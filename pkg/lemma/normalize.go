package lemma

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const (
	geresh    = '\u05f3'
	gershayim = '\u05f4'
)

func isQuote(r rune) bool {
	switch r {
	case '"', '\'', geresh, gershayim:
		return true
	}
	return false
}

var stripQuotes = runes.Remove(runes.Predicate(isQuote))

func notWordRune(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsNumber(r)
}

// Normalize trims every leading and trailing rune that is neither a letter
// nor a number, then removes quote marks anywhere in what is left, so that
// ק"ג and ק״ג both become קג. The result may be empty.
func Normalize(raw string) string {
	trimmed := strings.TrimFunc(raw, notWordRune)
	if trimmed == "" {
		return ""
	}
	out, _, err := transform.String(stripQuotes, trimmed)
	if err != nil {
		return strings.Map(func(r rune) rune {
			if isQuote(r) {
				return -1
			}
			return r
		}, trimmed)
	}
	return out
}
