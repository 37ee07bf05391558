package dataset

import (
	"fmt"
	"math"
)

// normTolerance is the allowed deviation from unit L2 norm.
const normTolerance = 1e-4

// Validate checks the structural invariants of a dataset artifact: count
// fields match slice lengths, every referenced chunk ID exists exactly once,
// each query's relevant set is a subset of its chunk set with at least
// minPositives members (pass 0 to skip that check), and every embedding is a
// unit vector of the declared dimensionality.
func Validate(d *Dataset, minPositives int) error {
	if len(d.Chunks) != d.ChunkCount {
		return fmt.Errorf("chunkCount is %d but %d chunks present", d.ChunkCount, len(d.Chunks))
	}
	if len(d.Queries) != d.QueryCount {
		return fmt.Errorf("queryCount is %d but %d queries present", d.QueryCount, len(d.Queries))
	}

	chunkIDs := make(map[string]bool, len(d.Chunks))
	for _, c := range d.Chunks {
		if chunkIDs[c.ID] {
			return fmt.Errorf("duplicate chunk id %q", c.ID)
		}
		chunkIDs[c.ID] = true
		if err := checkEmbedding(c.Embedding, d.Dims); err != nil {
			return fmt.Errorf("chunk %q: %w", c.ID, err)
		}
	}

	for _, q := range d.Queries {
		if err := checkEmbedding(q.Embedding, d.Dims); err != nil {
			return fmt.Errorf("query %q: %w", q.ID, err)
		}

		inQuery := make(map[string]bool, len(q.ChunkIDs))
		for _, id := range q.ChunkIDs {
			if !chunkIDs[id] {
				return fmt.Errorf("query %q references unknown chunk %q", q.ID, id)
			}
			inQuery[id] = true
		}
		for _, id := range q.RelevantIDs {
			if !inQuery[id] {
				return fmt.Errorf("query %q: relevant id %q is not among its chunkIds", q.ID, id)
			}
		}
		for id := range q.RelevanceScores {
			if !inQuery[id] {
				return fmt.Errorf("query %q: relevanceScores key %q is not among its chunkIds", q.ID, id)
			}
		}
		if minPositives > 0 && len(q.RelevantIDs) < minPositives {
			return fmt.Errorf("query %q has %d relevant chunks, need at least %d", q.ID, len(q.RelevantIDs), minPositives)
		}
	}

	return nil
}

func checkEmbedding(v []float32, dims int) error {
	if len(v) != dims {
		return fmt.Errorf("embedding has %d dims, want %d", len(v), dims)
	}
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if math.Abs(math.Sqrt(sum)-1) > normTolerance {
		return fmt.Errorf("embedding norm %.6f is not unit", math.Sqrt(sum))
	}
	return nil
}
