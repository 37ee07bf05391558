package dataset

import (
	"fmt"
	"time"

	"evalgen/internal/annotations"
)

// Params are the sampling/validation knobs the assembler shares with the
// fetch planning phase. Assembly re-runs the exact sampling used to build
// the fetch job list, so both phases must see identical values.
type Params struct {
	MaxCandidates      int
	MinPositives       int
	RelevanceThreshold int
}

// Assembled is the pre-embedding dataset: queries that survived resolution,
// with their chunks, in emission order.
type Assembled struct {
	Chunks         []Chunk
	Queries        []EvalQuery
	DroppedQueries int // selected queries discarded after resolution
}

// FetchLocators returns every locator the selected queries will need, by
// re-applying sampling per query. Duplicates across queries are preserved
// here; the fetch pool de-duplicates them.
func FetchLocators(selected []annotations.Query, p Params) []string {
	var locators []string
	for _, q := range selected {
		for _, c := range annotations.Sample(q.Candidates, p.MaxCandidates, p.RelevanceThreshold) {
			locators = append(locators, c.Locator)
		}
	}
	return locators
}

// Assemble joins resolved snippets back to the selected queries. Candidates
// whose locator is absent from resolved are dropped silently. Ground truth
// is then recomputed from the chunks that actually exist: a query whose
// resolved positives fall under MinPositives is discarded entirely, along
// with its chunks.
//
// Query IDs are positional over the selected slice, so a dropped query
// leaves a gap rather than shifting later IDs. Chunk sequence numbers are
// 1-based and scoped per query, assigned in resolution encounter order.
func Assemble(selected []annotations.Query, resolved map[string]string, p Params) *Assembled {
	out := &Assembled{}

	for qi, q := range selected {
		queryID := fmt.Sprintf("q_%02d", qi)

		var chunks []Chunk
		for _, c := range annotations.Sample(q.Candidates, p.MaxCandidates, p.RelevanceThreshold) {
			code, ok := resolved[c.Locator]
			if !ok || code == "" {
				continue
			}
			chunks = append(chunks, Chunk{
				ID:            fmt.Sprintf("%s_c%02d", queryID, len(chunks)+1),
				QueryID:       queryID,
				Relevance:     c.Relevance,
				SourceLocator: c.Locator,
				Code:          code,
			})
		}

		if len(chunks) == 0 {
			out.DroppedQueries++
			continue
		}

		var relevantIDs []string
		relevanceScores := make(map[string]int, len(chunks))
		chunkIDs := make([]string, 0, len(chunks))
		for _, c := range chunks {
			chunkIDs = append(chunkIDs, c.ID)
			relevanceScores[c.ID] = c.Relevance
			if c.Relevance >= p.RelevanceThreshold {
				relevantIDs = append(relevantIDs, c.ID)
			}
		}

		if len(relevantIDs) < p.MinPositives {
			// The query spent its positives on fetches that failed.
			out.DroppedQueries++
			continue
		}

		out.Queries = append(out.Queries, EvalQuery{
			ID:              queryID,
			Query:           q.Text,
			RelevantIDs:     relevantIDs,
			RelevanceScores: relevanceScores,
			ChunkIDs:        chunkIDs,
		})
		out.Chunks = append(out.Chunks, chunks...)
	}

	return out
}

// Finalize merges the assembled entities with their embedding vectors into
// the persisted Dataset shape. chunkEmbeddings and queryEmbeddings must be
// in assembler emission order.
func Finalize(a *Assembled, chunkEmbeddings, queryEmbeddings [][]float32, model string, dims int, name, url string, generatedAt time.Time) (*Dataset, error) {
	if len(chunkEmbeddings) != len(a.Chunks) {
		return nil, fmt.Errorf("got %d chunk embeddings for %d chunks", len(chunkEmbeddings), len(a.Chunks))
	}
	if len(queryEmbeddings) != len(a.Queries) {
		return nil, fmt.Errorf("got %d query embeddings for %d queries", len(queryEmbeddings), len(a.Queries))
	}

	d := &Dataset{
		Model:       model,
		Dims:        dims,
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
		Dataset:     name,
		DatasetURL:  url,
		QueryCount:  len(a.Queries),
		ChunkCount:  len(a.Chunks),
	}
	for i, c := range a.Chunks {
		d.Chunks = append(d.Chunks, EmbeddedChunk{
			ID:        c.ID,
			QueryID:   c.QueryID,
			Relevance: c.Relevance,
			Code:      c.Code,
			Embedding: chunkEmbeddings[i],
		})
	}
	for i, q := range a.Queries {
		d.Queries = append(d.Queries, EmbeddedQuery{
			ID:              q.ID,
			Query:           q.Query,
			RelevantIDs:     q.RelevantIDs,
			RelevanceScores: q.RelevanceScores,
			ChunkIDs:        q.ChunkIDs,
			Embedding:       queryEmbeddings[i],
		})
	}
	return d, nil
}
