package lexicon

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hazyhaar/hebmorph/data"
)

// EnvDictPath overrides the bundled lexicon when set.
const EnvDictPath = "HEBMORPH_DICT_PATH"

// DataDirName is the directory looked for under each search base.
const DataDirName = "hebmorph-data"

const systemDataDir = "/var/lib/hebmorph-data"

// PossiblePaths returns <base>/hebmorph-data for every base, made absolute,
// followed by the system-wide data directory. Duplicates are dropped.
func PossiblePaths(basePaths ...string) []string {
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	for _, base := range basePaths {
		p := filepath.Join(base, DataDirName)
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		add(p)
	}
	add(systemDataDir)
	return paths
}

// Locate returns the first possible path that holds a manifest.
func Locate(basePaths ...string) (string, bool) {
	for _, p := range PossiblePaths(basePaths...) {
		if _, err := os.Stat(filepath.Join(p, ManifestFile)); err == nil {
			return p, true
		}
	}
	return "", false
}

// LoadDefault loads the directory named by HEBMORPH_DICT_PATH, or the
// lexicon bundled into the binary when the variable is unset.
func LoadDefault() (*Lexicon, error) {
	if dir := os.Getenv(EnvDictPath); dir != "" {
		return LoadFromPath(dir)
	}
	return LoadBundled()
}

// LoadBundled loads the lexicon embedded in the data package.
func LoadBundled() (*Lexicon, error) {
	sub, err := fs.Sub(data.Bundle, data.BundleDir)
	if err != nil {
		return nil, fmt.Errorf("bundled lexicon: %w", err)
	}
	lex, err := LoadFS(sub)
	if err != nil {
		return nil, fmt.Errorf("bundled lexicon: %w", err)
	}
	return lex, nil
}

// Open resolves the dictionary the way the server does at startup: an
// explicit path wins, then the search bases, then LoadDefault.
func Open(path string, searchPaths []string) (*Lexicon, error) {
	if path != "" {
		return LoadFromPath(path)
	}
	if len(searchPaths) > 0 {
		if dir, ok := Locate(searchPaths...); ok {
			return LoadFromPath(dir)
		}
	}
	return LoadDefault()
}
