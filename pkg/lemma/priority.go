package lemma

import (
	"strings"

	"github.com/hazyhaar/hebmorph/pkg/morph"
)

// GeneralPriority ranks tags independently of the word: adjective 3,
// noun 2, verb 1, anything else 0.
func GeneralPriority(pos morph.PartOfSpeech) int {
	switch pos {
	case morph.Adjective:
		return 3
	case morph.Noun:
		return 2
	case morph.Verb:
		return 1
	default:
		return 0
	}
}

// ContextualPriority ranks tags by the ending of the normalized word. Words
// ending in heh (and not in yod or yod-tav) prefer nouns over adjectives,
// every other ending keeps the general order. Yod endings share the default
// table.
func ContextualPriority(normalized string, pos morph.PartOfSpeech) int {
	endsWithYod := strings.HasSuffix(normalized, "י") || strings.HasSuffix(normalized, "ית")
	endsWithHeh := strings.HasSuffix(normalized, "ה")

	switch pos {
	case morph.Adjective:
		switch {
		case endsWithYod:
			return 3
		case endsWithHeh:
			return 2
		default:
			return 3
		}
	case morph.Noun:
		switch {
		case endsWithYod:
			return 2
		case endsWithHeh:
			return 3
		default:
			return 2
		}
	case morph.Verb:
		return 1
	default:
		return 0
	}
}
