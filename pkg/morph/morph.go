// Package morph defines the shapes exchanged with a morphological analyzer:
// candidate analyses and their part-of-speech tags.
package morph

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PartOfSpeech is the closed set of tags an analyzer may attach to a candidate.
type PartOfSpeech uint8

const (
	Unknown PartOfSpeech = iota
	Noun
	Verb
	Adjective
	ProperName
	Numeral
	Adverb
	Preposition
	Pronoun
	Conjunction
	Other
)

// Mask names follow the HebMorph DMask constants so clients of the raw
// endpoint see the same strings as before.
var posNames = [...]string{
	Unknown:     "",
	Noun:        "D_NOUN",
	Verb:        "D_VERB",
	Adjective:   "D_ADJ",
	ProperName:  "D_PROPER",
	Numeral:     "D_NUM",
	Adverb:      "D_ADVERB",
	Preposition: "D_PREP",
	Pronoun:     "D_PRONOUN",
	Conjunction: "D_CONJ",
	Other:       "D_OTHER",
}

var posAliases = map[string]PartOfSpeech{
	"noun":    Noun,
	"n":       Noun,
	"verb":    Verb,
	"v":       Verb,
	"adj":     Adjective,
	"a":       Adjective,
	"proper":  ProperName,
	"num":     Numeral,
	"adverb":  Adverb,
	"adv":     Adverb,
	"prep":    Preposition,
	"pronoun": Pronoun,
	"pron":    Pronoun,
	"conj":    Conjunction,
	"other":   Other,
}

// String returns the mask name, or "" for Unknown.
func (p PartOfSpeech) String() string {
	if int(p) < len(posNames) {
		return posNames[p]
	}
	return ""
}

// Known reports whether p carries a tag.
func (p PartOfSpeech) Known() bool {
	return p != Unknown && int(p) < len(posNames)
}

// ParsePartOfSpeech accepts mask names (D_NOUN) and short aliases (noun, adj),
// case-insensitively. The empty string and "-" parse as Unknown.
func ParsePartOfSpeech(s string) (PartOfSpeech, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return Unknown, nil
	}
	for i, name := range posNames {
		if name != "" && strings.EqualFold(name, s) {
			return PartOfSpeech(i), nil
		}
	}
	if p, ok := posAliases[strings.ToLower(s)]; ok {
		return p, nil
	}
	return Unknown, fmt.Errorf("unknown part of speech %q", s)
}

// MarshalJSON encodes Unknown as null and every other tag as its mask name.
func (p PartOfSpeech) MarshalJSON() ([]byte, error) {
	if !p.Known() {
		return []byte("null"), nil
	}
	return json.Marshal(p.String())
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (p *PartOfSpeech) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Unknown
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParsePartOfSpeech(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Candidate is one analysis proposed for a surface word.
type Candidate struct {
	Lemma        string       `json:"lemma"`
	Score        float32      `json:"score"`
	POS          PartOfSpeech `json:"mask"`
	PrefixLength int          `json:"prefixLength"`
}

// Analyzer returns the candidate analyses for a single surface word.
// Implementations must be safe for concurrent use and must return a slice
// the caller may keep; an empty result means the word is unknown.
type Analyzer interface {
	Analyze(word string) []Candidate
}

// AnalyzerFunc adapts a plain function to the Analyzer interface.
type AnalyzerFunc func(word string) []Candidate

// Analyze calls f(word).
func (f AnalyzerFunc) Analyze(word string) []Candidate { return f(word) }
