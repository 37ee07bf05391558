package fetcher

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultRawBase is the raw-content host blob locators are translated to.
const DefaultRawBase = "https://raw.githubusercontent.com"

// FailureReason classifies why a locator did not resolve. Failures never
// abort a run; they are only counted.
type FailureReason string

const (
	FailParse    FailureReason = "parse"     // locator does not match the blob URL shape
	FailFetch    FailureReason = "fetch"     // network error or timeout
	FailStatus   FailureReason = "status"    // non-200 response
	FailRead     FailureReason = "read"      // body read error
	FailTooShort FailureReason = "too_short" // snippet under the minimum length (incl. empty clamped ranges)
)

// Options configures a Resolver. Zero values fall back to the production
// defaults.
type Options struct {
	RawBase       string
	Timeout       time.Duration
	MinChars      int
	MaxChars      int
	DefaultWindow int
}

// Resolver turns one locator into snippet text. All failure modes collapse
// into a FailureReason; Resolve never returns an error.
type Resolver struct {
	client   *http.Client
	rawBase  string
	minChars int
	maxChars int
	window   int
}

// NewResolver creates a Resolver with the given options.
func NewResolver(opts Options) *Resolver {
	if opts.RawBase == "" {
		opts.RawBase = DefaultRawBase
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 12 * time.Second
	}
	if opts.MinChars <= 0 {
		opts.MinChars = 30
	}
	if opts.MaxChars <= 0 {
		opts.MaxChars = 2000
	}
	if opts.DefaultWindow <= 0 {
		opts.DefaultWindow = 40
	}
	return &Resolver{
		client:   &http.Client{Timeout: opts.Timeout},
		rawBase:  opts.RawBase,
		minChars: opts.MinChars,
		maxChars: opts.MaxChars,
		window:   opts.DefaultWindow,
	}
}

// Resolve fetches the locator's file, clamps the requested line range to the
// file, and returns the trimmed snippet. The second return is "" on success.
func (r *Resolver) Resolve(ctx context.Context, locator string) (string, FailureReason) {
	target, err := ParseLocator(locator, r.window)
	if err != nil {
		return "", FailParse
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.RawURL(r.rawBase), nil)
	if err != nil {
		return "", FailFetch
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return "", FailFetch
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", FailStatus
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", FailRead
	}

	snippet := r.clip(splitLines(body), target.Start, target.End)
	if utf8.RuneCountInString(snippet) < r.minChars {
		return "", FailTooShort
	}
	return snippet, ""
}

// clip joins the clamped [start, end] line range (1-based, end inclusive)
// and trims surrounding whitespace. A range that is empty after clamping,
// including end < start, yields "" and therefore fails the minimum length.
func (r *Resolver) clip(lines []string, start, end int) string {
	lo := start - 1
	if lo < 0 {
		lo = 0
	}
	if lo > len(lines) {
		lo = len(lines)
	}
	hi := end
	if hi > len(lines) {
		hi = len(lines)
	}
	if hi < lo {
		hi = lo
	}

	snippet := strings.TrimSpace(strings.Join(lines[lo:hi], "\n"))
	return truncate(snippet, r.maxChars)
}

// splitLines decodes the body tolerantly, replacing undecodable bytes, and
// splits on line endings.
func splitLines(body []byte) []string {
	text := strings.ToValidUTF8(string(body), string(utf8.RuneError))
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// truncate caps s at max runes. Length limits are measured in characters,
// not bytes, so multibyte content is not over-penalized.
func truncate(s string, max int) string {
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
