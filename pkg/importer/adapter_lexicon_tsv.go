// CLAUDE:SUMMARY Import adapters for pre-expanded Hebrew lexicons in delimited text form (UTF-8 and legacy ISO-8859-8).
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hazyhaar/hebmorph/pkg/lexicon"
)

func init() {
	Register(&tsvAdapter{
		id:          "lexicon-tsv",
		dictID:      "he-lexicon",
		description: "Hebrew lexicon, tab-separated UTF-8 with header",
		license:     "AGPL-3.0",
		format: lexicon.FormatSpec{
			Delimiter: "\t",
			Encoding:  "utf-8",
			HasHeader: true,
			Normalize: "nfc",
		},
	})
	Register(&tsvAdapter{
		id:          "lexicon-tsv-legacy",
		dictID:      "he-lexicon-legacy",
		description: "Hebrew lexicon, headerless ISO-8859-8 export of hspell-derived tables",
		license:     "AGPL-3.0",
		format: lexicon.FormatSpec{
			Delimiter: "\t",
			Encoding:  "iso-8859-8",
			Normalize: "nfc",
		},
	})
}

// tsvAdapter imports a lexicon laid out as surface, lemma, pos, score,
// prefix_length rows. The source may be an http(s) URL, a file:// URL or a
// local path, optionally zipped.
type tsvAdapter struct {
	id          string
	dictID      string
	description string
	defaultURL  string
	license     string
	format      lexicon.FormatSpec
}

func (a *tsvAdapter) ID() string          { return a.id }
func (a *tsvAdapter) DictID() string      { return a.dictID }
func (a *tsvAdapter) Description() string { return a.description }
func (a *tsvAdapter) DefaultURL() string  { return a.defaultURL }
func (a *tsvAdapter) License() string     { return a.license }

func (a *tsvAdapter) Import(ctx context.Context, sourceURL, outputDir string) (int, error) {
	if sourceURL == "" {
		return 0, fmt.Errorf("%s: %w", a.id, ErrNoSourceURL)
	}

	dlDir := filepath.Join(outputDir, "_download")
	if err := ensureDir(dlDir); err != nil {
		return 0, err
	}
	defer os.RemoveAll(dlDir)

	src, err := fetchSource(ctx, sourceURL, dlDir)
	if err != nil {
		return 0, fmt.Errorf("fetch: %w", err)
	}
	dataPath, err := extractData(src, dlDir)
	if err != nil {
		return 0, err
	}

	m := &lexicon.Manifest{
		ID:        a.dictID,
		Version:   time.Now().UTC().Format("2006-01-02"),
		Language:  "he",
		Source:    a.description,
		SourceURL: sourceURL,
		License:   a.license,
		DataFile:  lexicon.GobFile,
		Format:    a.format,
	}

	f, err := os.Open(dataPath)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", dataPath, err)
	}
	entries, err := lexicon.ReadEntries(f, m)
	f.Close()
	if err != nil {
		return 0, fmt.Errorf("parse: %w", err)
	}
	if len(entries) == 0 {
		return 0, fmt.Errorf("parse: no entries in %s", filepath.Base(dataPath))
	}

	dictDir := filepath.Join(outputDir, a.dictID)
	if err := ensureDir(dictDir); err != nil {
		return 0, err
	}
	if err := lexicon.SaveGob(entries, filepath.Join(dictDir, lexicon.GobFile)); err != nil {
		return 0, fmt.Errorf("save gob: %w", err)
	}

	// The gob is UTF-8 and already normalized, whatever the source was.
	m.Format = lexicon.FormatSpec{Normalize: a.format.Normalize}
	if err := lexicon.WriteManifest(filepath.Join(dictDir, lexicon.ManifestFile), m); err != nil {
		return 0, err
	}
	return len(entries), nil
}
