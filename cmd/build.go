package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"evalgen/internal/fetcher"
	"evalgen/internal/pipeline"
	"evalgen/internal/progress"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the eval dataset and write the embeddings artifact",
	Long: `Loads the annotation feed, selects queries, fetches the referenced code
snippets, embeds everything in one batch, and writes the final JSON artifact.
Individual fetch failures degrade gracefully; the run either produces one
complete artifact or nothing.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "artifact path (overrides config)")
	buildCmd.Flags().Int("concurrency", 0, "max parallel snippet fetches (overrides config)")
	buildCmd.Flags().Bool("no-cache", false, "bypass the local snippet cache")
	buildCmd.Flags().String("report", "", "write a JSON fetch report to this path")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		cfg.OutputPath = output
	}
	if concurrency, _ := cmd.Flags().GetInt("concurrency"); concurrency > 0 {
		cfg.Concurrency = concurrency
	}
	noCache, _ := cmd.Flags().GetBool("no-cache")
	reportPath, _ := cmd.Flags().GetString("report")

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	resolver := fetcher.NewResolver(fetcher.Options{
		Timeout:       cfg.FetchTimeout(),
		MinChars:      cfg.MinSnippetChars,
		MaxChars:      cfg.MaxSnippetChars,
		DefaultWindow: cfg.DefaultLineWindow,
	})

	var cache *fetcher.Cache
	if !noCache && cfg.CachePath != "" {
		cache, err = fetcher.OpenCache(cfg.CachePath)
		if err != nil {
			// A broken cache only costs refetches.
			fmt.Fprintf(os.Stderr, "Warning: snippet cache unavailable: %v\n", err)
		} else {
			defer cache.Close()
		}
	}

	p := pipeline.New(cfg, embedder, resolver, cache)

	onProgress, finishProgress := fetchProgress(progress.NewReporter())
	p.SetProgressFunc(onProgress)

	result, err := p.Run(ctx)
	finishProgress()
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %s: %d queries, %d chunks (model %s)\n",
		result.OutputPath, result.QueriesEmitted, result.ChunksEmitted, embedder.Name())
	fmt.Printf("Resolved %d/%d locators (%d cache hits), dropped %d queries, took %s\n",
		result.Resolved, result.LocatorsDistinct, result.CacheHits,
		result.QueriesDropped, result.Duration.Round(100*time.Millisecond))

	if verbose && len(result.FetchFailures) > 0 {
		fmt.Fprintln(os.Stderr, "Fetch failures by reason:")
		for reason, n := range result.FetchFailures {
			fmt.Fprintf(os.Stderr, "  %-10s %d\n", reason, n)
		}
	}

	if reportPath != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling report: %w", err)
		}
		if err := os.WriteFile(reportPath, data, 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Fetch report written to %s (run %s)\n", reportPath, result.RunID)
		}
	}

	return nil
}

// fetchProgress adapts a Reporter to the pipeline's progress callback. The
// total is only known once the pool has deduplicated its locators, so the
// reporter starts lazily on the first callback; the pool invokes callbacks
// from many worker goroutines, so the start is guarded by a sync.Once.
func fetchProgress(reporter progress.Reporter) (pipeline.ProgressFunc, func()) {
	var once sync.Once
	var started atomic.Bool

	fn := func(done, total int, locator string) {
		once.Do(func() {
			reporter.Start(total, "Fetching snippets")
			started.Store(true)
		})
		reporter.Update(done, locator)
	}
	finish := func() {
		if started.Load() {
			reporter.Finish()
		}
	}
	return fn, finish
}
