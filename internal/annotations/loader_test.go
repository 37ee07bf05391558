package annotations

import (
	"strings"
	"testing"
)

const sampleFeed = `Language,Query,GitHubUrl,Relevance
Python,parse json,https://github.com/a/b/blob/sha1/pkg/parse.py#L1-L10,3
Python,parse json,https://github.com/a/c/blob/sha2/lib/json.py,1
Go,parse json,https://github.com/a/d/blob/sha3/parse.go,3
Python,read file,https://github.com/a/e/blob/sha4/io/read.py#L5,2
Python,parse json,https://github.com/a/f/blob/sha5/util/loads.py,bogus
Python,read file,https://github.com/a/g/blob/sha6/tests/test_read.py,3
`

func TestParse_GroupsByQueryInEncounterOrder(t *testing.T) {
	queries, err := Parse(strings.NewReader(sampleFeed), LoadOptions{Language: "Python"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(queries) != 2 {
		t.Fatalf("expected 2 queries, got %d", len(queries))
	}
	if queries[0].Text != "parse json" || queries[1].Text != "read file" {
		t.Errorf("encounter order not preserved: %q, %q", queries[0].Text, queries[1].Text)
	}
	if len(queries[0].Candidates) != 3 {
		t.Errorf("parse json: expected 3 candidates, got %d", len(queries[0].Candidates))
	}
	if len(queries[1].Candidates) != 2 {
		t.Errorf("read file: expected 2 candidates, got %d", len(queries[1].Candidates))
	}
}

func TestParse_FiltersLanguage(t *testing.T) {
	queries, err := Parse(strings.NewReader(sampleFeed), LoadOptions{Language: "Go"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(queries) != 1 || len(queries[0].Candidates) != 1 {
		t.Fatalf("expected exactly the one Go row, got %+v", queries)
	}
}

func TestParse_MalformedRelevanceDefaultsToZero(t *testing.T) {
	queries, err := Parse(strings.NewReader(sampleFeed), LoadOptions{Language: "Python"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	last := queries[0].Candidates[2]
	if !strings.Contains(last.Locator, "loads.py") {
		t.Fatalf("unexpected candidate order: %+v", queries[0].Candidates)
	}
	if last.Relevance != 0 {
		t.Errorf("malformed relevance: got %d, want 0", last.Relevance)
	}
}

func TestParse_ExcludeGlobs(t *testing.T) {
	queries, err := Parse(strings.NewReader(sampleFeed), LoadOptions{
		Language:     "Python",
		ExcludePaths: []string{"tests/**"},
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	for _, q := range queries {
		for _, c := range q.Candidates {
			if strings.Contains(c.Locator, "test_read.py") {
				t.Errorf("excluded candidate survived: %s", c.Locator)
			}
		}
	}
	if len(queries[1].Candidates) != 1 {
		t.Errorf("read file: expected 1 candidate after exclusion, got %d", len(queries[1].Candidates))
	}
}

func TestParse_ReorderedColumnsWithShortRow(t *testing.T) {
	// Columns come from the header map, not fixed positions. A short row must
	// be skipped even when Relevance is not the last column.
	feed := "Relevance,Language,Query,GitHubUrl\n" +
		"3\n" +
		"2,Python,read file,https://github.com/a/b/blob/sha/read.py\n"

	queries, err := Parse(strings.NewReader(feed), LoadOptions{Language: "Python"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(queries) != 1 || len(queries[0].Candidates) != 1 {
		t.Fatalf("expected the one complete row, got %+v", queries)
	}
	if queries[0].Candidates[0].Relevance != 2 {
		t.Errorf("relevance read from wrong column: %+v", queries[0].Candidates[0])
	}
}

func TestParse_MissingColumn(t *testing.T) {
	_, err := Parse(strings.NewReader("Language,Query,Relevance\nPython,q,1\n"), LoadOptions{Language: "Python"})
	if err == nil {
		t.Fatal("expected error for missing GitHubUrl column")
	}
}

func TestLocatorPath(t *testing.T) {
	path, ok := locatorPath("https://github.com/a/b/blob/sha/pkg/sub/f.py#L1-L2")
	if !ok || path != "pkg/sub/f.py" {
		t.Errorf("got %q ok=%v, want pkg/sub/f.py", path, ok)
	}
	if _, ok := locatorPath("https://example.com/no-blob-here"); ok {
		t.Error("expected no path for a non-blob locator")
	}
}
