package importer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Checker performs HEAD requests against the remote import sources and
// records their availability.
type Checker struct {
	sources  *SourceDB
	logger   *slog.Logger
	interval time.Duration
	client   *http.Client
}

// CheckSummary counts the outcome of one CheckAll pass. Sources without an
// http(s) URL are skipped.
type CheckSummary struct {
	OK      int
	Failed  int
	Skipped int
}

// NewChecker creates a Checker that will verify source URLs every interval.
func NewChecker(sources *SourceDB, logger *slog.Logger, interval time.Duration) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		sources:  sources,
		logger:   logger,
		interval: interval,
		client: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Start runs an immediate check then repeats every interval until ctx is cancelled.
func (c *Checker) Start(ctx context.Context) {
	c.CheckAll(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.CheckAll(ctx)
		}
	}
}

// CheckAll performs a HEAD request on every remote source URL and persists the result.
func (c *Checker) CheckAll(ctx context.Context) CheckSummary {
	var sum CheckSummary
	sources, err := c.sources.ListSources()
	if err != nil {
		c.logger.Error("source check: list sources", "error", err)
		return sum
	}

	for _, src := range sources {
		if ctx.Err() != nil {
			return sum
		}
		if !isRemote(src.SourceURL) {
			sum.Skipped++
			continue
		}

		status, checkErr := c.checkOne(ctx, src.SourceURL)
		errMsg := ""
		if checkErr != nil {
			errMsg = checkErr.Error()
		}

		if err := c.sources.UpdateCheck(src.AdapterID, status, errMsg); err != nil {
			c.logger.Error("source check: update", "adapter", src.AdapterID, "error", err)
		}

		if status >= 200 && status < 400 {
			sum.OK++
		} else {
			sum.Failed++
			c.logger.Warn("source unreachable",
				"adapter", src.AdapterID,
				"url", src.SourceURL,
				"status", status,
				"error", errMsg,
			)
		}
	}

	c.logger.Info("source check complete", "ok", sum.OK, "failed", sum.Failed, "skipped", sum.Skipped)
	return sum
}

// checkOne performs a single HEAD request and returns the HTTP status code.
// On network error, status is 0.
func (c *Checker) checkOne(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HEAD %s: %w", url, err)
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

func isRemote(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}
