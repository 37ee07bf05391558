// Package annotations loads the code-search annotation feed and applies the
// query selection and candidate sampling rules used to build the eval set.
package annotations

// Candidate is one annotated (query, snippet) pair from the feed.
type Candidate struct {
	Locator   string // GitHub blob URL, optionally with a #L<start>-L<end> fragment.
	Relevance int    // Ordinal judgment, 0 (irrelevant) and up.
}

// Query groups all candidates annotated for one query text, in feed order.
type Query struct {
	Text       string
	Candidates []Candidate
}

// CountPositives returns the number of candidates at or above the threshold.
func CountPositives(candidates []Candidate, threshold int) int {
	n := 0
	for _, c := range candidates {
		if c.Relevance >= threshold {
			n++
		}
	}
	return n
}
