package lemma

import (
	"cmp"
	"fmt"
	"unicode/utf8"

	"github.com/hazyhaar/hebmorph/pkg/morph"
)

// Strategy picks how one lemma is chosen among a word's candidates.
type Strategy string

const (
	// Ranked normalizes the word and ranks candidates by score, then by
	// part-of-speech heuristics. Tokens without a usable lemma are dropped.
	Ranked Strategy = "ranked"
	// First takes the analyzer's first usable candidate for the raw word and
	// falls back to the raw word itself.
	First Strategy = "first"
)

// ParseStrategy maps "ranked" (or "") and "first" to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", Ranked:
		return Ranked, nil
	case First:
		return First, nil
	default:
		return "", fmt.Errorf("unknown strategy %q (want ranked or first)", s)
	}
}

// Selector chooses a single lemma per surface word.
// It holds no mutable state and is safe for concurrent use as long as the
// analyzer is.
type Selector struct {
	analyzer morph.Analyzer
}

func NewSelector(a morph.Analyzer) *Selector {
	return &Selector{analyzer: a}
}

// Select returns the best lemma for raw, or false when the token should be
// dropped: it is pure punctuation, or the only lemma left is one letter long.
func (s *Selector) Select(raw string) (string, bool) {
	normalized := Normalize(raw)
	if normalized == "" {
		return "", false
	}

	lemma := normalized
	if winner, ok := best(normalized, s.analyzer.Analyze(normalized)); ok {
		lemma = winner.Lemma
	}
	if utf8.RuneCountInString(lemma) <= 1 {
		return "", false
	}
	return lemma, true
}

// SelectFirst returns the lemma of the first candidate for raw longer than
// one letter, in analyzer order, or raw itself. It never drops a token.
func (s *Selector) SelectFirst(raw string) string {
	for _, c := range s.analyzer.Analyze(raw) {
		if utf8.RuneCountInString(c.Lemma) > 1 {
			return c.Lemma
		}
	}
	return raw
}

// best returns the top-ranked candidate whose lemma is longer than one
// letter. candidates is only read.
func best(normalized string, candidates []morph.Candidate) (morph.Candidate, bool) {
	var (
		winner morph.Candidate
		found  bool
	)
	for _, c := range candidates {
		if utf8.RuneCountInString(c.Lemma) <= 1 {
			continue
		}
		if !found || compareCandidates(normalized, c, winner) < 0 {
			winner, found = c, true
		}
	}
	return winner, found
}

// compareCandidates orders a before b (negative result) when a is the
// better lemma for normalized. Criteria, each consulted only on a tie:
// higher score, higher contextual priority, higher general priority, lemma
// equal to the surface form, shorter lemma, then lemma text and prefix
// length so that distinct candidates never compare equal.
func compareCandidates(normalized string, a, b morph.Candidate) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(ContextualPriority(normalized, b.POS), ContextualPriority(normalized, a.POS)); c != 0 {
		return c
	}
	if c := cmp.Compare(GeneralPriority(b.POS), GeneralPriority(a.POS)); c != 0 {
		return c
	}
	aSurface, bSurface := a.Lemma == normalized, b.Lemma == normalized
	if aSurface != bSurface {
		if aSurface {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(utf8.RuneCountInString(a.Lemma), utf8.RuneCountInString(b.Lemma)); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Lemma, b.Lemma); c != 0 {
		return c
	}
	if c := cmp.Compare(a.PrefixLength, b.PrefixLength); c != 0 {
		return c
	}
	return cmp.Compare(a.POS, b.POS)
}
