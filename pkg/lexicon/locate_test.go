package lexicon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPossiblePaths(t *testing.T) {
	base := t.TempDir()
	paths := PossiblePaths(base, base)

	if len(paths) != 2 {
		t.Fatalf("paths = %v, want 2 entries (duplicates dropped)", paths)
	}
	if paths[0] != filepath.Join(base, DataDirName) {
		t.Errorf("paths[0] = %q", paths[0])
	}
	if paths[1] != systemDataDir {
		t.Errorf("paths[1] = %q, want %q", paths[1], systemDataDir)
	}
}

func TestLocate(t *testing.T) {
	empty := t.TempDir()
	withData := t.TempDir()
	dataDir := filepath.Join(withData, DataDirName)
	os.MkdirAll(dataDir, 0o755)
	os.WriteFile(filepath.Join(dataDir, ManifestFile), []byte("id: x\n"), 0o644)

	got, ok := Locate(empty, withData)
	if !ok {
		t.Fatal("Locate found nothing")
	}
	if got != dataDir {
		t.Errorf("Locate = %q, want %q", got, dataDir)
	}
}

func TestLoadDefault_Bundled(t *testing.T) {
	t.Setenv(EnvDictPath, "")

	lex, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if lex.Manifest.ID != "he-default" {
		t.Errorf("ID = %q, want he-default", lex.Manifest.ID)
	}
}

func TestLoadDefault_EnvOverride(t *testing.T) {
	dir := writeTestLexicon(t, "utf-8", "true", []byte(sampleTSV))
	t.Setenv(EnvDictPath, dir)

	lex, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if lex.Manifest.ID != "test-lex" {
		t.Errorf("ID = %q, want test-lex", lex.Manifest.ID)
	}

	t.Setenv(EnvDictPath, filepath.Join(dir, "missing"))
	if _, err := LoadDefault(); err == nil {
		t.Error("expected error for a missing override directory")
	}
}

func TestOpen(t *testing.T) {
	t.Setenv(EnvDictPath, "")
	dir := writeTestLexicon(t, "utf-8", "true", []byte(sampleTSV))

	lex, err := Open(dir, nil)
	if err != nil {
		t.Fatalf("Open(path): %v", err)
	}
	if lex.Manifest.ID != "test-lex" {
		t.Errorf("ID = %q, want test-lex", lex.Manifest.ID)
	}

	// Nothing under the search base: falls back to the bundled lexicon,
	// unless the host happens to have a system-wide data directory.
	if _, ok := Locate(t.TempDir()); ok {
		t.Skip("system data directory present")
	}
	lex, err = Open("", []string{t.TempDir()})
	if err != nil {
		t.Fatalf("Open(search): %v", err)
	}
	if lex.Manifest.ID != "he-default" {
		t.Errorf("ID = %q, want he-default", lex.Manifest.ID)
	}
}
