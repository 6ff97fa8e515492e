package lemma

import (
	"testing"
	"unicode/utf8"

	"github.com/hazyhaar/hebmorph/pkg/morph"
)

// mapAnalyzer serves fixed candidate lists and records the words it was asked about.
type mapAnalyzer struct {
	entries map[string][]morph.Candidate
	asked   []string
}

func (m *mapAnalyzer) Analyze(word string) []morph.Candidate {
	m.asked = append(m.asked, word)
	return m.entries[word]
}

func newMapAnalyzer(entries map[string][]morph.Candidate) *mapAnalyzer {
	return &mapAnalyzer{entries: entries}
}

func TestSelect_NoCandidatesPassesNormalizedThrough(t *testing.T) {
	a := newMapAnalyzer(nil)
	s := NewSelector(a)

	got, ok := s.Select(`ק"ג`)
	if !ok || got != "קג" {
		t.Errorf(`Select(ק"ג) = %q, %v; want "קג", true`, got, ok)
	}
	if len(a.asked) != 1 || a.asked[0] != "קג" {
		t.Errorf("analyzer asked %v, want [קג]", a.asked)
	}
}

func TestSelect_PurePunctuationDropped(t *testing.T) {
	a := newMapAnalyzer(nil)
	s := NewSelector(a)

	if got, ok := s.Select("?!"); ok {
		t.Errorf("Select(?!) = %q, want dropped", got)
	}
	if len(a.asked) != 0 {
		t.Errorf("analyzer called for punctuation: %v", a.asked)
	}
}

func TestSelect_SingleLetterLemmaDropped(t *testing.T) {
	s := NewSelector(newMapAnalyzer(map[string][]morph.Candidate{
		"ו": {{Lemma: "ו", Score: 1, POS: morph.Conjunction}},
		"של": {{Lemma: "ש", Score: 1, POS: morph.Other}},
	}))

	if got, ok := s.Select("ו"); ok {
		t.Errorf("Select(ו) = %q, want dropped", got)
	}
	// The only candidate is one letter, so the surface form is used instead.
	if got, ok := s.Select("של"); !ok || got != "של" {
		t.Errorf("Select(של) = %q, %v; want של", got, ok)
	}
}

func TestSelect_SingleLetterWithoutCandidatesDropped(t *testing.T) {
	s := NewSelector(newMapAnalyzer(nil))
	if got, ok := s.Select("א."); ok {
		t.Errorf("Select(א.) = %q, want dropped", got)
	}
}

func TestSelect_ScoreWins(t *testing.T) {
	s := NewSelector(newMapAnalyzer(map[string][]morph.Candidate{
		"העיר": {
			{Lemma: "העיר", Score: 0.8, POS: morph.Verb},
			{Lemma: "עיר", Score: 1, POS: morph.Noun, PrefixLength: 1},
		},
	}))
	if got, _ := s.Select("העיר"); got != "עיר" {
		t.Errorf("Select(העיר) = %q, want עיר", got)
	}
}

// The same two candidates resolve differently depending on the ending of
// the word they were proposed for.
func TestSelect_SuffixClasses(t *testing.T) {
	pair := []morph.Candidate{
		{Lemma: "בית", Score: 0.9, POS: morph.Noun},
		{Lemma: "ביתי", Score: 0.9, POS: morph.Adjective},
	}
	tests := []struct {
		name string
		word string
		want string
	}{
		{"heh ending prefers noun", "ביתה", "בית"},
		{"yod ending prefers adjective", "ביתי", "ביתי"},
		{"yod-tav ending prefers adjective", "בבית", "ביתי"},
		{"other ending prefers adjective", "בתים", "ביתי"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelector(newMapAnalyzer(map[string][]morph.Candidate{tt.word: pair}))
			if got, _ := s.Select(tt.word); got != tt.want {
				t.Errorf("Select(%s) = %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}

func TestSelect_YodEndingAdjective(t *testing.T) {
	s := NewSelector(newMapAnalyzer(map[string][]morph.Candidate{
		"ישראלי": {
			{Lemma: "ישראל", Score: 1, POS: morph.Noun},
			{Lemma: "ישראלי", Score: 1, POS: morph.Adjective},
		},
	}))
	if got, _ := s.Select("ישראלי"); got != "ישראלי" {
		t.Errorf("Select(ישראלי) = %q, want ישראלי", got)
	}
}

func TestSelect_VerbBeatsUnrankedTags(t *testing.T) {
	s := NewSelector(newMapAnalyzer(map[string][]morph.Candidate{
		"אחרי": {
			{Lemma: "אחר", Score: 1, POS: morph.Preposition},
			{Lemma: "אחרי", Score: 1, POS: morph.Verb},
		},
	}))
	if got, _ := s.Select("אחרי"); got != "אחרי" {
		t.Errorf("Select(אחרי) = %q, want אחרי", got)
	}
}

func TestSelect_SurfaceFormThenShorterLemma(t *testing.T) {
	s := NewSelector(newMapAnalyzer(map[string][]morph.Candidate{
		"ספרים": {
			{Lemma: "ספרי", Score: 1, POS: morph.Noun},
			{Lemma: "ספרים", Score: 1, POS: morph.Noun},
			{Lemma: "ספר", Score: 1, POS: morph.Noun},
		},
		"ספרות": {
			{Lemma: "ספרותי", Score: 1, POS: morph.Noun},
			{Lemma: "ספר", Score: 1, POS: morph.Noun},
		},
	}))
	if got, _ := s.Select("ספרים"); got != "ספרים" {
		t.Errorf("Select(ספרים) = %q, want the surface form", got)
	}
	if got, _ := s.Select("ספרות"); got != "ספר" {
		t.Errorf("Select(ספרות) = %q, want the shorter lemma ספר", got)
	}
}

func TestSelect_PermutationInvariant(t *testing.T) {
	set := []morph.Candidate{
		{Lemma: "ילדה", Score: 0.8, POS: morph.Noun},
		{Lemma: "ילד", Score: 0.8, POS: morph.Verb},
		{Lemma: "ילד", Score: 0.8, POS: morph.Noun, PrefixLength: 0},
		{Lemma: "ילוד", Score: 0.8, POS: morph.Noun},
		{Lemma: "ל", Score: 0.9, POS: morph.Preposition},
	}

	var want string
	for i, perm := range permutations(set) {
		s := NewSelector(newMapAnalyzer(map[string][]morph.Candidate{"ילדה": perm}))
		got, ok := s.Select("ילדה")
		if !ok {
			t.Fatalf("permutation %d: dropped", i)
		}
		if i == 0 {
			want = got
			continue
		}
		if got != want {
			t.Fatalf("permutation %d: Select = %q, want %q (%v)", i, got, want, perm)
		}
	}
	if want != "ילדה" {
		t.Errorf("winner = %q, want ילדה", want)
	}
}

func TestSelect_DoesNotMutateCandidates(t *testing.T) {
	cands := []morph.Candidate{
		{Lemma: "ב", Score: 2},
		{Lemma: "ספר", Score: 0.5, POS: morph.Verb},
		{Lemma: "ספר", Score: 0.5, POS: morph.Noun},
	}
	before := append([]morph.Candidate(nil), cands...)
	s := NewSelector(newMapAnalyzer(map[string][]morph.Candidate{"ספר": cands}))
	s.Select("ספר")

	for i := range cands {
		if cands[i] != before[i] {
			t.Fatalf("candidate %d changed: %+v -> %+v", i, before[i], cands[i])
		}
	}
}

func TestCompareCandidates_Total(t *testing.T) {
	set := []morph.Candidate{
		{Lemma: "אבג", Score: 1, POS: morph.Noun},
		{Lemma: "אבד", Score: 1, POS: morph.Noun},
		{Lemma: "אבג", Score: 1, POS: morph.Noun, PrefixLength: 1},
		{Lemma: "אבג", Score: 1, POS: morph.Other},
		{Lemma: "אב", Score: 0.5, POS: morph.Adjective},
	}
	for i, a := range set {
		if c := compareCandidates("אבגד", a, a); c != 0 {
			t.Errorf("compare(%d, %d) = %d, want 0", i, i, c)
		}
		for j, b := range set {
			if i == j {
				continue
			}
			ab, ba := compareCandidates("אבגד", a, b), compareCandidates("אבגד", b, a)
			if ab == 0 || ab != -ba {
				t.Errorf("compare(%d,%d) = %d, compare(%d,%d) = %d", i, j, ab, j, i, ba)
			}
			for k, c := range set {
				if ab < 0 && compareCandidates("אבגד", b, c) < 0 && compareCandidates("אבגד", a, c) >= 0 {
					t.Errorf("not transitive: %d < %d < %d", i, j, k)
				}
			}
		}
	}
}

func TestSelect_NeverShort(t *testing.T) {
	s := NewSelector(newMapAnalyzer(map[string][]morph.Candidate{
		"אב": {{Lemma: "א", Score: 1}},
		"גד": {{Lemma: "", Score: 1}},
	}))
	for _, word := range []string{"אב", "גד", "ה", "1", "x.", "", "…"} {
		if got, ok := s.Select(word); ok && utf8.RuneCountInString(got) <= 1 {
			t.Errorf("Select(%q) = %q", word, got)
		}
	}
}

func TestSelectFirst(t *testing.T) {
	a := newMapAnalyzer(map[string][]morph.Candidate{
		"הבית,": {
			{Lemma: "ה", Score: 1},
			{Lemma: "בית", Score: 0.2, POS: morph.Noun},
			{Lemma: "הבית", Score: 0.9, POS: morph.Noun},
		},
		"ו": {{Lemma: "ו", Score: 1}},
	})
	s := NewSelector(a)

	if got := s.SelectFirst("הבית,"); got != "בית" {
		t.Errorf("SelectFirst = %q, want בית (first usable, analyzer order)", got)
	}
	if got := s.SelectFirst("ו"); got != "ו" {
		t.Errorf("SelectFirst(ו) = %q, want the raw word", got)
	}
	if got := s.SelectFirst(`ק"ג`); got != `ק"ג` {
		t.Errorf(`SelectFirst(ק"ג) = %q, want the raw word unnormalized`, got)
	}
	if a.asked[0] != "הבית," {
		t.Errorf("analyzer asked %q, want the raw token", a.asked[0])
	}
}

func TestParseStrategy(t *testing.T) {
	for in, want := range map[string]Strategy{"": Ranked, "ranked": Ranked, "first": First} {
		got, err := ParseStrategy(in)
		if err != nil || got != want {
			t.Errorf("ParseStrategy(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseStrategy("best"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func permutations(in []morph.Candidate) [][]morph.Candidate {
	if len(in) <= 1 {
		return [][]morph.Candidate{append([]morph.Candidate(nil), in...)}
	}
	var out [][]morph.Candidate
	for i := range in {
		rest := make([]morph.Candidate, 0, len(in)-1)
		rest = append(rest, in[:i]...)
		rest = append(rest, in[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]morph.Candidate{in[i]}, p...))
		}
	}
	return out
}
