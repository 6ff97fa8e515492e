// CLAUDE:SUMMARY Shared import utilities: source fetching (HTTP download with retries, file URLs, local paths), ZIP extraction, directory helpers.
package importer

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// dataExtensions are the file types accepted as lexicon data inside an archive.
var dataExtensions = []string{".tsv", ".txt", ".csv"}

// fetchSource makes sourceURL available as a local file and returns its path.
// http(s) sources are downloaded into dlDir; file:// URLs and plain paths
// are used in place.
func fetchSource(ctx context.Context, sourceURL, dlDir string) (string, error) {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return "", fmt.Errorf("parse source URL: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		name := path.Base(u.Path)
		if name == "." || name == "/" || name == "" {
			name = "source"
		}
		dest := filepath.Join(dlDir, name)
		fmt.Printf("  downloading %s...\n", sourceURL)
		if err := downloadFile(ctx, sourceURL, dest); err != nil {
			return "", err
		}
		return dest, nil
	case "file":
		return checkLocal(u.Path)
	case "":
		return checkLocal(sourceURL)
	default:
		return "", fmt.Errorf("unsupported source scheme %q", u.Scheme)
	}
}

func checkLocal(p string) (string, error) {
	info, err := os.Stat(p)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", p)
	}
	return p, nil
}

// extractData returns the lexicon data file for src: src itself, or the
// first data file inside it when src is a ZIP archive.
func extractData(src, dlDir string) (string, error) {
	if !strings.EqualFold(filepath.Ext(src), ".zip") {
		return src, nil
	}
	files, err := unzipFile(src, dlDir)
	if err != nil {
		return "", fmt.Errorf("unzip: %w", err)
	}
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f))
		for _, want := range dataExtensions {
			if ext == want {
				return f, nil
			}
		}
	}
	return "", fmt.Errorf("no lexicon file (%s) found in ZIP", strings.Join(dataExtensions, ", "))
}

// downloadFile downloads url to dest with retries and timeout.
func downloadFile(ctx context.Context, url, dest string) error {
	client := &http.Client{Timeout: 10 * time.Minute}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt)) * retryUnit
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
			continue
		}

		f, err := os.Create(dest)
		if err != nil {
			resp.Body.Close()
			return fmt.Errorf("create file: %w", err)
		}

		_, copyErr := io.Copy(f, resp.Body)
		resp.Body.Close()
		closeErr := f.Close()

		if copyErr != nil {
			lastErr = copyErr
			continue
		}
		if closeErr != nil {
			return closeErr
		}
		return nil
	}
	return fmt.Errorf("download %s failed after 3 attempts: %w", url, lastErr)
}

// retryUnit scales the download backoff; tests shrink it.
var retryUnit = time.Second

// unzipFile extracts a ZIP archive to destDir and returns the list of extracted file paths.
func unzipFile(src, destDir string) ([]string, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	defer r.Close()

	var paths []string
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}

		destPath := filepath.Join(destDir, filepath.Base(f.Name))
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open zip entry %s: %w", f.Name, err)
		}

		out, err := os.Create(destPath)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("create %s: %w", destPath, err)
		}

		if _, err := io.Copy(out, rc); err != nil {
			rc.Close()
			out.Close()
			return nil, fmt.Errorf("extract %s: %w", f.Name, err)
		}
		rc.Close()
		out.Close()
		paths = append(paths, destPath)
	}
	return paths, nil
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
