// Package lemma turns sentences into lemma sequences on top of a
// morph.Analyzer: token normalization, part-of-speech tie-breaks, and the
// ranked and first-candidate selection strategies.
//
// All functions are safe for concurrent use provided the analyzer is.
package lemma

import (
	"strings"

	"github.com/hazyhaar/hebmorph/pkg/morph"
)

// CandidateView is the wire projection of one raw analyzer candidate.
type CandidateView struct {
	Lemma        string  `json:"lemma"`
	Score        float32 `json:"score"`
	Mask         *string `json:"mask"`
	PrefixLength int     `json:"prefixLength"`
}

// Service lemmatizes whole sentences.
type Service struct {
	analyzer morph.Analyzer
	selector *Selector
}

func NewService(a morph.Analyzer) *Service {
	return &Service{analyzer: a, selector: NewSelector(a)}
}

// Canonicalize splits sentence on runs of whitespace and returns the ranked
// lemma of every token that has one, in token order.
func (s *Service) Canonicalize(sentence string) []string {
	return s.CanonicalizeWith(sentence, Ranked)
}

// CanonicalizeWith is Canonicalize with an explicit strategy. Tokens are
// handled independently of each other.
func (s *Service) CanonicalizeWith(sentence string, strategy Strategy) []string {
	tokens := strings.Fields(sentence)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if strategy == First {
			out = append(out, s.selector.SelectFirst(tok))
			continue
		}
		if lemma, ok := s.selector.Select(tok); ok {
			out = append(out, lemma)
		}
	}
	return out
}

// CanonicalizeBatch runs CanonicalizeWith over every sentence, preserving order.
func (s *Service) CanonicalizeBatch(sentences []string, strategy Strategy) [][]string {
	results := make([][]string, len(sentences))
	for i, sentence := range sentences {
		results[i] = s.CanonicalizeWith(sentence, strategy)
	}
	return results
}

// ListCandidates returns, for every whitespace-delimited token, the
// analyzer's candidates for the token exactly as written: no normalization,
// filtering or reordering.
func (s *Service) ListCandidates(sentence string) [][]CandidateView {
	tokens := strings.Fields(sentence)
	results := make([][]CandidateView, len(tokens))
	for i, tok := range tokens {
		cands := s.analyzer.Analyze(tok)
		views := make([]CandidateView, len(cands))
		for j, c := range cands {
			views[j] = CandidateView{
				Lemma:        c.Lemma,
				Score:        c.Score,
				PrefixLength: c.PrefixLength,
			}
			if c.POS.Known() {
				name := c.POS.String()
				views[j].Mask = &name
			}
		}
		results[i] = views
	}
	return results
}
