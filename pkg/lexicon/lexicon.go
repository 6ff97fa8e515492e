// Package lexicon loads a pre-expanded Hebrew lexicon data set and serves
// it as a morph.Analyzer.
//
// A dictionary directory holds a manifest.yaml and either a data.gob cache
// or a delimited text file with one candidate analysis per row:
//
//	surface	lemma	pos	score	prefix_length
//
// Rows sharing a surface form become the candidate list for that form, in
// file order. A loaded Lexicon is immutable and safe for concurrent use.
package lexicon

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/hazyhaar/hebmorph/pkg/morph"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// GobFile is the name of the optional pre-built cache inside a dictionary directory.
const GobFile = "data.gob"

var (
	ErrNotDirectory = errors.New("expected a dictionary directory")
	ErrNoManifest   = errors.New("dictionary manifest not found")
)

// Entries maps a normalized surface form to its candidate analyses.
type Entries map[string][]morph.Candidate

// Lexicon is one loaded dictionary with its manifest and in-memory index.
type Lexicon struct {
	Manifest  *Manifest
	entries   Entries
	normalize Normalizer
}

// New wraps already-built entries. Keys must have been normalized with the
// manifest's normalizer.
func New(m *Manifest, entries Entries) *Lexicon {
	if entries == nil {
		entries = make(Entries)
	}
	return &Lexicon{
		Manifest:  m,
		entries:   entries,
		normalize: GetNormalizer(m.Format.Normalize),
	}
}

// LoadFromPath loads the dictionary stored in dir. dir must exist and be a
// directory. data.gob takes priority over the text data file.
func LoadFromPath(dir string) (*Lexicon, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("dictionary path %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	manifest, err := LoadManifest(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, err
	}
	lex := New(manifest, nil)

	gobPath := filepath.Join(dir, GobFile)
	if _, err := os.Stat(gobPath); err == nil {
		if err := lex.loadGob(gobPath); err != nil {
			return nil, fmt.Errorf("dict %s: %w", manifest.ID, err)
		}
		return lex, nil
	}

	dataPath := filepath.Join(dir, manifest.DataFile)
	f, err := os.Open(dataPath)
	if err != nil {
		return nil, fmt.Errorf("dict %s: open data file: %w", manifest.ID, err)
	}
	defer f.Close()

	if lex.entries, err = ReadEntries(f, manifest); err != nil {
		return nil, fmt.Errorf("dict %s: %w", manifest.ID, err)
	}
	return lex, nil
}

// LoadFS loads a dictionary from the root of fsys. Used for the bundled
// lexicon, where memory mapping is not available.
func LoadFS(fsys fs.FS) (*Lexicon, error) {
	data, err := fs.ReadFile(fsys, ManifestFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoManifest, ManifestFile)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	manifest, err := parseManifest(data, ManifestFile)
	if err != nil {
		return nil, err
	}
	lex := New(manifest, nil)

	if raw, err := fs.ReadFile(fsys, GobFile); err == nil {
		if lex.entries, err = decodeGob(raw); err != nil {
			return nil, fmt.Errorf("dict %s: %w", manifest.ID, err)
		}
		return lex, nil
	}

	f, err := fsys.Open(manifest.DataFile)
	if err != nil {
		return nil, fmt.Errorf("dict %s: open data file: %w", manifest.ID, err)
	}
	defer f.Close()

	if lex.entries, err = ReadEntries(f, manifest); err != nil {
		return nil, fmt.Errorf("dict %s: %w", manifest.ID, err)
	}
	return lex, nil
}

// Analyze returns a copy of the candidates recorded for word, or nil.
func (l *Lexicon) Analyze(word string) []morph.Candidate {
	cands := l.entries[l.normalize(word)]
	if len(cands) == 0 {
		return nil
	}
	return slices.Clone(cands)
}

// Len returns the number of distinct surface forms.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

// Candidates returns the total number of candidate analyses.
func (l *Lexicon) Candidates() int {
	total := 0
	for _, c := range l.entries {
		total += len(c)
	}
	return total
}

// column positions for a data file without a header row.
var defaultColumns = map[string]int{
	"surface":       0,
	"lemma":         1,
	"pos":           2,
	"score":         3,
	"prefix_length": 4,
}

// ReadEntries parses a delimited lexicon stream laid out as described by m.
// Missing score columns default to 1, missing prefix lengths to 0.
func ReadEntries(r io.Reader, m *Manifest) (Entries, error) {
	// Transcode non-UTF-8 encodings declared in the manifest (hspell-derived
	// lists are often ISO-8859-8).
	if enc := m.Format.Encoding; enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", enc, err)
		}
		r = transform.NewReader(r, e.NewDecoder())
	}

	cr := csv.NewReader(r)
	cr.Comma = '\t'
	if delim := m.Format.Delimiter; delim != "" {
		cr.Comma = []rune(delim)[0]
	}
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	cols := defaultColumns
	if m.Format.HasHeader {
		header, err := cr.Read()
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		cols = make(map[string]int, len(header))
		for i, h := range header {
			cols[strings.ToLower(strings.TrimSpace(h))] = i
		}
		for _, required := range []string{"surface", "lemma"} {
			if _, ok := cols[required]; !ok {
				return nil, fmt.Errorf("column %q not found in header %v", required, header)
			}
		}
	}

	normalize := GetNormalizer(m.Format.Normalize)
	entries := make(Entries)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := cr.FieldPos(0)

		surface := normalize(field(record, cols, "surface"))
		if surface == "" {
			continue
		}
		c := morph.Candidate{
			Lemma: normalize(field(record, cols, "lemma")),
			Score: 1,
		}
		if c.POS, err = morph.ParsePartOfSpeech(field(record, cols, "pos")); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if v := field(record, cols, "score"); v != "" {
			f, err := strconv.ParseFloat(v, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: score %q: %w", line, v, err)
			}
			c.Score = float32(f)
		}
		if v := field(record, cols, "prefix_length"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("line %d: invalid prefix length %q", line, v)
			}
			c.PrefixLength = n
		}
		entries[surface] = append(entries[surface], c)
	}
	return entries, nil
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
