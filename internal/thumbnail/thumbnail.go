// Package thumbnail fetches video cover images. Fetching is best-effort:
// callers treat any error as "no thumbnail", never as an item failure.
package thumbnail

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// qualityVariants are the known thumbnail quality tokens, best first.
var qualityVariants = []string{"maxresdefault", "sddefault", "hqdefault"}

const fetchTimeout = 10 * time.Second

// Fetcher downloads thumbnails over HTTP with a short fixed timeout.
type Fetcher struct {
	client *http.Client
}

// NewFetcher returns a Fetcher with the default timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: fetchTimeout}}
}

// Fetch tries each quality variant of thumbURL in descending order and writes
// the first successful response to destPath. It returns an error only when
// every variant fails.
func (f *Fetcher) Fetch(ctx context.Context, thumbURL, destPath string) error {
	if thumbURL == "" {
		return fmt.Errorf("no thumbnail URL")
	}
	var lastErr error
	for _, candidate := range candidateURLs(thumbURL) {
		if err := f.fetchOne(ctx, candidate, destPath); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("all thumbnail variants failed: %w", lastErr)
}

func (f *Fetcher) fetchOne(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(destPath)
		return err
	}
	return out.Close()
}

// candidateURLs substitutes each quality token into the URL when one of the
// known tokens is present; otherwise the URL is tried as-is.
func candidateURLs(thumbURL string) []string {
	current := ""
	for _, q := range qualityVariants {
		if strings.Contains(thumbURL, q) {
			current = q
			break
		}
	}
	if current == "" {
		return []string{thumbURL}
	}
	out := make([]string, 0, len(qualityVariants))
	for _, q := range qualityVariants {
		out = append(out, strings.Replace(thumbURL, current, q, 1))
	}
	return out
}
