// Package pipeline wires the dataset build end to end: load annotations,
// select queries, resolve snippets, assemble, embed, and persist.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"evalgen/internal/annotations"
	"evalgen/internal/config"
	"evalgen/internal/dataset"
	"evalgen/internal/embeddings"
	"evalgen/internal/fetcher"
)

// ProgressFunc reports snippet resolution progress.
type ProgressFunc func(done, total int, locator string)

// Pipeline orchestrates the full build: load -> select -> sample -> resolve
// -> assemble -> embed -> write. Stages run strictly in order; only snippet
// resolution is concurrent.
type Pipeline struct {
	cfg        *config.Config
	embedder   embeddings.Embedder
	resolver   *fetcher.Resolver
	cache      *fetcher.Cache // nil disables snippet caching
	onProgress ProgressFunc
}

// New creates a Pipeline. cache may be nil.
func New(cfg *config.Config, embedder embeddings.Embedder, resolver *fetcher.Resolver, cache *fetcher.Cache) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		embedder: embedder,
		resolver: resolver,
		cache:    cache,
	}
}

// SetProgressFunc sets the resolution progress callback.
func (p *Pipeline) SetProgressFunc(fn ProgressFunc) {
	p.onProgress = fn
}

// Result summarizes one build run.
type Result struct {
	RunID string `json:"runId"`

	QueriesLoaded   int `json:"queriesLoaded"`
	QueriesSelected int `json:"queriesSelected"`
	QueriesEmitted  int `json:"queriesEmitted"`
	QueriesDropped  int `json:"queriesDropped"`
	ChunksEmitted   int `json:"chunksEmitted"`

	LocatorsPlanned  int                           `json:"locatorsPlanned"`
	LocatorsDistinct int                           `json:"locatorsDistinct"`
	Resolved         int                           `json:"resolved"`
	CacheHits        int                           `json:"cacheHits"`
	FetchFailures    map[fetcher.FailureReason]int `json:"fetchFailures"`

	OutputPath string        `json:"outputPath"`
	Duration   time.Duration `json:"duration"`
}

// Run executes the full build and writes the artifact to cfg.OutputPath.
// Snippet-level failures degrade silently; anything returned here is fatal
// and guarantees no artifact was written by this run.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: uuid.NewString()}

	// Load the annotation feed.
	queries, err := annotations.Load(ctx, p.cfg.AnnotationsURL, p.cfg.AnnotationsFile, annotations.LoadOptions{
		Language:     p.cfg.Language,
		ExcludePaths: p.cfg.ExcludePaths,
	})
	if err != nil {
		return nil, fmt.Errorf("loading annotations: %w", err)
	}
	if len(queries) == 0 {
		return nil, fmt.Errorf("annotation feed has no %s rows", p.cfg.Language)
	}
	result.QueriesLoaded = len(queries)

	// Select queries with enough positive signal.
	selected := annotations.Select(queries, p.cfg.TargetQueries, p.cfg.MinPositives, p.cfg.RelevanceThreshold)
	if len(selected) == 0 {
		return nil, fmt.Errorf("no query meets min_positives=%d at relevance_threshold=%d",
			p.cfg.MinPositives, p.cfg.RelevanceThreshold)
	}
	result.QueriesSelected = len(selected)

	// Resolve every sampled locator, de-duplicated across queries.
	params := dataset.Params{
		MaxCandidates:      p.cfg.MaxCandidates,
		MinPositives:       p.cfg.MinPositives,
		RelevanceThreshold: p.cfg.RelevanceThreshold,
	}
	locators := dataset.FetchLocators(selected, params)
	result.LocatorsPlanned = len(locators)

	pool := fetcher.NewPool(p.resolver, p.cache, p.cfg.Concurrency, fetcher.ProgressFunc(p.onProgress))
	resolved, stats := pool.ResolveAll(ctx, locators)
	result.LocatorsDistinct = stats.Attempted
	result.Resolved = stats.Resolved
	result.CacheHits = stats.CacheHits
	result.FetchFailures = stats.Failures

	// Assemble and re-validate against what actually resolved.
	assembled := dataset.Assemble(selected, resolved, params)
	result.QueriesEmitted = len(assembled.Queries)
	result.QueriesDropped = assembled.DroppedQueries
	result.ChunksEmitted = len(assembled.Chunks)

	// One embedding batch over chunk codes followed by query texts, so every
	// vector comes from the same model configuration.
	texts := make([]string, 0, len(assembled.Chunks)+len(assembled.Queries))
	for _, c := range assembled.Chunks {
		texts = append(texts, c.Code)
	}
	for _, q := range assembled.Queries {
		texts = append(texts, q.Query)
	}

	vectors, err := p.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding %d texts: %w", len(texts), err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(texts))
	}
	split := len(assembled.Chunks)

	d, err := dataset.Finalize(assembled, vectors[:split], vectors[split:],
		p.embedder.Name(), p.embedder.Dimensions(),
		p.cfg.DatasetName, p.cfg.DatasetURL, time.Now())
	if err != nil {
		return nil, fmt.Errorf("finalizing dataset: %w", err)
	}

	if err := dataset.Validate(d, p.cfg.MinPositives); err != nil {
		return nil, fmt.Errorf("built dataset failed validation: %w", err)
	}

	if err := dataset.Write(p.cfg.OutputPath, d); err != nil {
		return nil, fmt.Errorf("writing artifact: %w", err)
	}

	result.OutputPath = p.cfg.OutputPath
	result.Duration = time.Since(start)
	return result, nil
}
