package fetcher

import (
	"context"
	"sync"
	"sync/atomic"
)

// ProgressFunc is invoked after each locator completes (resolved or not).
type ProgressFunc func(done, total int, locator string)

// Stats counts what happened during a ResolveAll pass.
type Stats struct {
	Attempted int
	Resolved  int
	CacheHits int
	Failures  map[FailureReason]int
}

// Pool resolves a batch of locators with bounded concurrency. Each distinct
// locator is resolved at most once per run, no matter how many queries
// reference it.
type Pool struct {
	resolver   *Resolver
	cache      *Cache // optional
	workers    int
	onProgress ProgressFunc
}

// NewPool creates a Pool. cache may be nil to disable snippet caching.
func NewPool(resolver *Resolver, cache *Cache, workers int, onProgress ProgressFunc) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		resolver:   resolver,
		cache:      cache,
		workers:    workers,
		onProgress: onProgress,
	}
}

// ResolveAll resolves every distinct locator and returns the snippet text
// keyed by locator. Locators that failed to resolve are absent from the map.
// Individual failures never produce an error; they are tallied in Stats.
func (p *Pool) ResolveAll(ctx context.Context, locators []string) (map[string]string, *Stats) {
	distinct := dedupe(locators)
	total := len(distinct)

	stats := &Stats{Attempted: total, Failures: make(map[FailureReason]int)}
	results := make(map[string]string, total)
	if total == 0 {
		return results, stats
	}

	// Serve cache hits up front; only misses go to the network.
	var pending []string
	if p.cache != nil {
		for _, locator := range distinct {
			if code, ok, err := p.cache.Get(locator); err == nil && ok {
				results[locator] = code
				stats.CacheHits++
				stats.Resolved++
			} else {
				pending = append(pending, locator)
			}
		}
	} else {
		pending = distinct
	}

	var done int64
	report := func(locator string) {
		count := atomic.AddInt64(&done, 1)
		if p.onProgress != nil {
			p.onProgress(int(count)+stats.CacheHits, total, locator)
		}
	}

	sem := make(chan struct{}, p.workers)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, locator := range pending {
		select {
		case <-ctx.Done():
			mu.Lock()
			stats.Failures[FailFetch]++
			mu.Unlock()
			report(locator)
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(locator string) {
			defer wg.Done()
			defer func() { <-sem }()

			code, reason := p.resolver.Resolve(ctx, locator)

			mu.Lock()
			if reason == "" {
				results[locator] = code
				stats.Resolved++
			} else {
				stats.Failures[reason]++
			}
			mu.Unlock()

			if reason == "" && p.cache != nil {
				// Best effort; a failed write only costs a refetch next run.
				_ = p.cache.Put(locator, code)
			}

			report(locator)
		}(locator)
	}

	wg.Wait()
	return results, stats
}

// dedupe keeps the first occurrence of each locator.
func dedupe(locators []string) []string {
	seen := make(map[string]struct{}, len(locators))
	var distinct []string
	for _, l := range locators {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		distinct = append(distinct, l)
	}
	return distinct
}
