// CLAUDE:SUMMARY Manifest YAML schema describing a lexicon data set: provenance, data file and TSV layout.
package lexicon

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the name of the manifest inside a dictionary directory.
const ManifestFile = "manifest.yaml"

// Manifest describes a lexicon: its source, format, and how to interpret it.
type Manifest struct {
	ID        string     `yaml:"id" json:"id"`
	Version   string     `yaml:"version" json:"version"`
	Language  string     `yaml:"language" json:"language"`
	Source    string     `yaml:"source" json:"source"`
	SourceURL string     `yaml:"source_url,omitempty" json:"source_url,omitempty"`
	License   string     `yaml:"license" json:"license"`
	DataFile  string     `yaml:"data_file" json:"data_file"`
	Format    FormatSpec `yaml:"format" json:"-"`
}

// FormatSpec describes the TSV layout of the data file.
type FormatSpec struct {
	Delimiter string `yaml:"delimiter"`
	Encoding  string `yaml:"encoding"`
	HasHeader bool   `yaml:"has_header"`
	Normalize string `yaml:"normalize"`
}

// LoadManifest reads and parses a manifest.yaml file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoManifest, path)
		}
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	return parseManifest(data, path)
}

func parseManifest(data []byte, path string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.ID == "" {
		return nil, fmt.Errorf("manifest %s: missing id", path)
	}
	if m.DataFile == "" {
		m.DataFile = "lexicon.tsv"
	}
	return &m, nil
}

// WriteManifest writes m as YAML to path.
func WriteManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
