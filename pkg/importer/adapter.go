package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNoSourceURL is returned by Import when no source URL was given and the
// adapter has no default.
var ErrNoSourceURL = errors.New("no source URL configured")

// Adapter defines a lexicon source importer that fetches, parses, and
// serializes a dictionary into gob format.
type Adapter interface {
	// ID returns the unique identifier of this adapter (e.g. "lexicon-tsv").
	ID() string
	// DictID returns the target dictionary ID (e.g. "he-lexicon").
	DictID() string
	// Description returns a human-readable description.
	Description() string
	// DefaultURL returns the default source URL used for seeding the database.
	// It may be empty when the source must be configured by the operator.
	DefaultURL() string
	// License returns the license identifier for this source (e.g. "AGPL-3.0").
	License() string
	// Import fetches the source, parses it, and writes data.gob + manifest.yaml
	// into a subdirectory of outputDir named after DictID(). It returns the
	// number of surface forms written.
	Import(ctx context.Context, sourceURL, outputDir string) (int, error)
}

var (
	registryMu sync.RWMutex
	adapters   = make(map[string]Adapter)
)

// Register adds an adapter to the global registry.
func Register(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	adapters[a.ID()] = a
}

// Get returns a registered adapter by ID, or an error if not found.
func Get(id string) (Adapter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := adapters[id]
	if !ok {
		return nil, fmt.Errorf("unknown import source: %q", id)
	}
	return a, nil
}

// All returns all registered adapters sorted by ID.
func All() []Adapter {
	registryMu.RLock()
	defer registryMu.RUnlock()
	result := make([]Adapter, 0, len(adapters))
	for _, a := range adapters {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}
