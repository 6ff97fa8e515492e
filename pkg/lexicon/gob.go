// CLAUDE:SUMMARY Gob cache for lexicon entries; on-disk caches are memory-mapped instead of read into the heap.
package lexicon

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// loadGob decodes entries from a memory-mapped gob file into l.entries.
// The mapping is released once decoding has copied everything out.
func (l *Lexicon) loadGob(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open gob file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat gob file: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("gob file %s is empty", path)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return fmt.Errorf("mmap gob file: %w", err)
	}
	defer m.Unmap()

	entries, err := decodeGob(m)
	if err != nil {
		return err
	}
	l.entries = entries
	return nil
}

func decodeGob(data []byte) (Entries, error) {
	entries := make(Entries)
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode gob: %w", err)
	}
	return entries, nil
}

// SaveGob serializes entries to a gob-encoded file at path.
func SaveGob(entries Entries, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gob file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(entries); err != nil {
		return fmt.Errorf("encode gob: %w", err)
	}
	return f.Close()
}
