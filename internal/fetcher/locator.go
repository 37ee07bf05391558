// Package fetcher resolves candidate locators (GitHub blob URLs with optional
// line fragments) into code snippets, with bounded concurrency and a local
// snippet cache.
package fetcher

import (
	"fmt"
	"regexp"
	"strconv"
)

// locatorPattern matches blob URLs of the form
// https://github.com/<owner>/<repo>/blob/<revision>/<path>[#L<start>[-L<end>]].
var locatorPattern = regexp.MustCompile(
	`^https://github\.com/([^/]+)/([^/]+)/blob/([^/]+)/(.+?)(?:#L(\d+)(?:-L(\d+))?)?$`)

// Target is a parsed locator: where to fetch raw content from and which
// 1-based, inclusive line range to keep.
type Target struct {
	Owner    string
	Repo     string
	Revision string
	Path     string
	Start    int
	End      int
}

// ParseLocator parses a blob URL into a fetch target. When the fragment has
// no start line the range defaults to line 1; when it has no end line the
// range extends window lines past the start.
func ParseLocator(locator string, window int) (Target, error) {
	m := locatorPattern.FindStringSubmatch(locator)
	if m == nil {
		return Target{}, fmt.Errorf("locator does not match blob URL shape: %s", locator)
	}

	t := Target{Owner: m[1], Repo: m[2], Revision: m[3], Path: m[4]}
	t.Start = 1
	if m[5] != "" {
		t.Start, _ = strconv.Atoi(m[5])
	}
	t.End = t.Start + window
	if m[6] != "" {
		t.End, _ = strconv.Atoi(m[6])
	}
	return t, nil
}

// RawURL returns the raw-content URL for the target under the given base,
// e.g. https://raw.githubusercontent.com/<owner>/<repo>/<revision>/<path>.
func (t Target) RawURL(base string) string {
	return base + "/" + t.Owner + "/" + t.Repo + "/" + t.Revision + "/" + t.Path
}
