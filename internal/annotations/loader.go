package annotations

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// feedTimeout bounds the annotation CSV download. The feed is a few MB.
const feedTimeout = 20 * time.Second

// LoadOptions controls feed parsing.
type LoadOptions struct {
	Language     string   // Only rows with this Language value are kept.
	ExcludePaths []string // doublestar globs matched against the locator's file path.
}

// Load reads the annotation feed from a local file when path is non-empty,
// otherwise downloads it from url.
func Load(ctx context.Context, url, path string, opts LoadOptions) ([]Query, error) {
	var r io.ReadCloser
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening annotation file: %w", err)
		}
		r = f
	} else {
		rc, err := fetchFeed(ctx, url)
		if err != nil {
			return nil, err
		}
		r = rc
	}
	defer r.Close()

	return Parse(r, opts)
}

func fetchFeed(ctx context.Context, url string) (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, feedTimeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("creating feed request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("fetching annotation feed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("fetching annotation feed: status %d", resp.StatusCode)
	}
	return &cancelReadCloser{ReadCloser: resp.Body, cancel: cancel}, nil
}

type cancelReadCloser struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelReadCloser) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

// Parse reads the CSV feed and groups candidates per query text, preserving
// the order queries are first encountered in. Expected columns: Language,
// Query, GitHubUrl, Relevance. A malformed relevance defaults to 0 rather
// than failing the row.
func Parse(r io.Reader, opts LoadOptions) ([]Query, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading feed header: %w", err)
	}
	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	maxCol := 0
	for _, required := range []string{"Language", "Query", "GitHubUrl", "Relevance"} {
		i, ok := cols[required]
		if !ok {
			return nil, fmt.Errorf("feed is missing column %q", required)
		}
		if i > maxCol {
			maxCol = i
		}
	}

	var queries []Query
	index := map[string]int{} // query text -> position in queries

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading feed row: %w", err)
		}
		if len(row) <= maxCol {
			continue
		}
		if row[cols["Language"]] != opts.Language {
			continue
		}

		locator := row[cols["GitHubUrl"]]
		if excluded(locator, opts.ExcludePaths) {
			continue
		}

		relevance, err := strconv.Atoi(strings.TrimSpace(row[cols["Relevance"]]))
		if err != nil {
			relevance = 0
		}

		text := row[cols["Query"]]
		i, ok := index[text]
		if !ok {
			i = len(queries)
			index[text] = i
			queries = append(queries, Query{Text: text})
		}
		queries[i].Candidates = append(queries[i].Candidates, Candidate{
			Locator:   locator,
			Relevance: relevance,
		})
	}

	return queries, nil
}

// excluded reports whether the file path inside a blob locator matches any
// exclude glob. Locators without a recognizable path are never excluded here;
// the resolver rejects them later.
func excluded(locator string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	path, ok := locatorPath(locator)
	if !ok {
		return false
	}
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}

// locatorPath extracts the repo-relative file path from a blob URL, dropping
// any line fragment.
func locatorPath(locator string) (string, bool) {
	_, rest, ok := strings.Cut(locator, "/blob/")
	if !ok {
		return "", false
	}
	// rest is "<revision>/<path>[#fragment]".
	_, path, ok := strings.Cut(rest, "/")
	if !ok {
		return "", false
	}
	if i := strings.IndexByte(path, '#'); i >= 0 {
		path = path[:i]
	}
	return path, path != ""
}
