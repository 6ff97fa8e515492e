// CLAUDE:SUMMARY Lookup-key normalization strategies (NFC, none) applied to surface forms on load and on lookup.
package lexicon

import (
	"golang.org/x/text/unicode/norm"
)

// Normalizer transforms a surface form into a lookup key.
type Normalizer func(string) string

// NormalizeNFC puts the surface form in canonical composed form, so niqqud
// typed in a different order still hits the same key.
func NormalizeNFC(s string) string {
	return norm.NFC.String(s)
}

// NormalizeNone returns the surface form unchanged.
func NormalizeNone(s string) string {
	return s
}

// GetNormalizer returns the normalizer for the given mode.
// Default is nfc.
func GetNormalizer(mode string) Normalizer {
	switch mode {
	case "none":
		return NormalizeNone
	default:
		return NormalizeNFC
	}
}
