package config

// Defaults match the published CodeSearchNet annotation feed and the
// parameters the production eval set was built with.
const (
	DefaultAnnotationsURL = "https://raw.githubusercontent.com/github/CodeSearchNet/master/resources/annotationStore.csv"
	DefaultDatasetName    = "CodeSearchNet Python (annotated)"
	DefaultDatasetURL     = "https://github.com/github/CodeSearchNet"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		AnnotationsURL: DefaultAnnotationsURL,
		Language:       "Python",

		TargetQueries:      25,
		MaxCandidates:      12,
		MinPositives:       2,
		RelevanceThreshold: 2,

		FetchTimeoutSeconds: 12,
		Concurrency:         20,
		MinSnippetChars:     30,
		MaxSnippetChars:     2000,
		DefaultLineWindow:   40,
		CachePath:           ".evalgen/snippets.db",

		EmbeddingProvider: ProviderOpenAI,
		EmbeddingModel:    "text-embedding-3-small",
		OllamaURL:         "",
		OllamaDimensions:  768,

		OutputPath:  "eval-embeddings.json",
		DatasetName: DefaultDatasetName,
		DatasetURL:  DefaultDatasetURL,
	}
}
