// Package retrieval runs a self-contained retrieval smoke check over a built
// artifact: the precomputed embeddings are loaded into an in-memory vector
// collection and each query is scored against its own ground truth. No
// embedding model is involved; this only checks that the artifact's vectors
// and ground truth are coherent.
package retrieval

import (
	"context"
	"fmt"
	"sort"
	"strings"

	chromem "github.com/philippgille/chromem-go"

	"evalgen/internal/dataset"
)

// DefaultKs are the cutoffs reported by Evaluate.
var DefaultKs = []int{1, 5, 10}

// Report holds retrieval quality numbers over one artifact.
type Report struct {
	Queries  int
	Chunks   int
	RecallAt map[int]float64
	MRR      float64
}

// Evaluate loads the artifact's chunks into a chromem collection and queries
// it with every query embedding. Recall@k averages, per query, the fraction
// of its relevant chunks found in the top k; MRR averages the reciprocal
// rank of the first relevant chunk.
func Evaluate(ctx context.Context, d *dataset.Dataset, ks []int) (*Report, error) {
	if len(d.Queries) == 0 || len(d.Chunks) == 0 {
		return nil, fmt.Errorf("artifact has no queries or chunks to evaluate")
	}
	if len(ks) == 0 {
		ks = DefaultKs
	}

	col, err := loadCollection(ctx, d)
	if err != nil {
		return nil, err
	}

	maxK := 0
	for _, k := range ks {
		if k > maxK {
			maxK = k
		}
	}
	if maxK > len(d.Chunks) {
		maxK = len(d.Chunks)
	}

	report := &Report{
		Queries:  len(d.Queries),
		Chunks:   len(d.Chunks),
		RecallAt: make(map[int]float64, len(ks)),
	}

	for _, q := range d.Queries {
		results, err := col.QueryEmbedding(ctx, q.Embedding, maxK, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("querying %s: %w", q.ID, err)
		}

		relevant := make(map[string]bool, len(q.RelevantIDs))
		for _, id := range q.RelevantIDs {
			relevant[id] = true
		}

		firstRank := 0
		for _, k := range ks {
			hits := 0
			for i, r := range results {
				if i >= k {
					break
				}
				if relevant[r.ID] {
					hits++
				}
			}
			report.RecallAt[k] += float64(hits) / float64(len(q.RelevantIDs))
		}
		for i, r := range results {
			if relevant[r.ID] {
				firstRank = i + 1
				break
			}
		}
		if firstRank > 0 {
			report.MRR += 1 / float64(firstRank)
		}
	}

	for _, k := range ks {
		report.RecallAt[k] /= float64(len(d.Queries))
	}
	report.MRR /= float64(len(d.Queries))
	return report, nil
}

// loadCollection builds an in-memory collection from precomputed embeddings.
// The embedding func is never invoked because every document and query
// carries its vector.
func loadCollection(ctx context.Context, d *dataset.Dataset) (*chromem.Collection, error) {
	db := chromem.NewDB()
	col, err := db.CreateCollection("eval", nil, func(context.Context, string) ([]float32, error) {
		return nil, fmt.Errorf("artifact evaluation uses precomputed embeddings only")
	})
	if err != nil {
		return nil, fmt.Errorf("creating collection: %w", err)
	}

	docs := make([]chromem.Document, len(d.Chunks))
	for i, c := range d.Chunks {
		docs[i] = chromem.Document{
			ID:        c.ID,
			Content:   c.Code,
			Embedding: c.Embedding,
			Metadata:  map[string]string{"query_id": c.QueryID},
		}
	}
	if err := col.AddDocuments(ctx, docs, 1); err != nil {
		return nil, fmt.Errorf("loading chunks: %w", err)
	}
	return col, nil
}

// String renders the report for terminal output.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d queries over %d chunks\n", r.Queries, r.Chunks)

	ks := make([]int, 0, len(r.RecallAt))
	for k := range r.RecallAt {
		ks = append(ks, k)
	}
	sort.Ints(ks)
	for _, k := range ks {
		fmt.Fprintf(&b, "Recall@%-2d %.4f\n", k, r.RecallAt[k])
	}
	fmt.Fprintf(&b, "MRR       %.4f", r.MRR)
	return b.String()
}
