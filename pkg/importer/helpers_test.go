package importer

import (
	"archive/zip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fastRetries(t *testing.T) {
	t.Helper()
	old := retryUnit
	retryUnit = time.Millisecond
	t.Cleanup(func() { retryUnit = old })
}

func TestDownloadFile(t *testing.T) {
	content := "hello world"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(content))
	}))
	defer ts.Close()

	dest := filepath.Join(t.TempDir(), "test.txt")
	if err := downloadFile(context.Background(), ts.URL, dest); err != nil {
		t.Fatalf("downloadFile: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != content {
		t.Errorf("content = %q, want %q", string(data), content)
	}
}

func TestDownloadFile_Retry(t *testing.T) {
	fastRetries(t)
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer ts.Close()

	dest := filepath.Join(t.TempDir(), "retry.txt")
	if err := downloadFile(context.Background(), ts.URL, dest); err != nil {
		t.Fatalf("downloadFile with retries: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestDownloadFile_AllFail(t *testing.T) {
	fastRetries(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	dest := filepath.Join(t.TempDir(), "fail.txt")
	err := downloadFile(context.Background(), ts.URL, dest)
	if err == nil {
		t.Error("expected error after all retries exhausted")
	}
}

func TestFetchSource_Local(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "lexicon.tsv")
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, src := range []string{p, "file://" + p} {
		got, err := fetchSource(context.Background(), src, dir)
		if err != nil {
			t.Fatalf("fetchSource(%s): %v", src, err)
		}
		if got != p {
			t.Errorf("fetchSource(%s) = %s, want %s", src, got, p)
		}
	}

	if _, err := fetchSource(context.Background(), filepath.Join(dir, "missing.tsv"), dir); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := fetchSource(context.Background(), dir, dir); err == nil {
		t.Error("expected error for directory")
	}
	if _, err := fetchSource(context.Background(), "ftp://example.com/x.tsv", dir); err == nil {
		t.Error("expected error for unsupported scheme")
	}
}

func TestExtractData_Zip(t *testing.T) {
	dir := t.TempDir()
	zipPath := writeZip(t, dir, "bundle.zip", map[string]string{
		"README.md":        "readme",
		"data/lexicon.tsv": "surface\tlemma\n",
	})

	got, err := extractData(zipPath, dir)
	if err != nil {
		t.Fatalf("extractData: %v", err)
	}
	if filepath.Base(got) != "lexicon.tsv" {
		t.Errorf("extractData = %s, want lexicon.tsv", got)
	}

	noData := writeZip(t, dir, "empty.zip", map[string]string{"README.md": "readme"})
	if _, err := extractData(noData, dir); err == nil || !strings.Contains(err.Error(), "no lexicon file") {
		t.Errorf("extractData without data file: err = %v", err)
	}

	plain := filepath.Join(dir, "plain.tsv")
	if got, err := extractData(plain, dir); err != nil || got != plain {
		t.Errorf("extractData(plain) = %s, %v", got, err)
	}
}

func writeZip(t *testing.T, dir, name string, files map[string]string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for n, content := range files {
		w, err := zw.Create(n)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return p
}
