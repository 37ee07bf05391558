package config

import "time"

// EmbeddingProvider identifies an embedding backend.
type EmbeddingProvider string

const (
	ProviderOpenAI EmbeddingProvider = "openai"
	ProviderOllama EmbeddingProvider = "ollama"
)

// Config is the top-level evalgen configuration, corresponding to .evalgen.yml.
type Config struct {
	// Annotation feed. URL is used unless File points at a local CSV.
	AnnotationsURL  string `yaml:"annotations_url" koanf:"annotations_url"`
	AnnotationsFile string `yaml:"annotations_file" koanf:"annotations_file"`
	Language        string `yaml:"language" koanf:"language"`

	// Selection and sampling.
	TargetQueries      int      `yaml:"target_queries" koanf:"target_queries"`
	MaxCandidates      int      `yaml:"max_candidates" koanf:"max_candidates"`
	MinPositives       int      `yaml:"min_positives" koanf:"min_positives"`
	RelevanceThreshold int      `yaml:"relevance_threshold" koanf:"relevance_threshold"`
	ExcludePaths       []string `yaml:"exclude_paths" koanf:"exclude_paths"`

	// Snippet resolution.
	FetchTimeoutSeconds int    `yaml:"fetch_timeout_seconds" koanf:"fetch_timeout_seconds"`
	Concurrency         int    `yaml:"concurrency" koanf:"concurrency"`
	MinSnippetChars     int    `yaml:"min_snippet_chars" koanf:"min_snippet_chars"`
	MaxSnippetChars     int    `yaml:"max_snippet_chars" koanf:"max_snippet_chars"`
	DefaultLineWindow   int    `yaml:"default_line_window" koanf:"default_line_window"`
	CachePath           string `yaml:"cache_path" koanf:"cache_path"`

	// Embedding.
	EmbeddingProvider EmbeddingProvider `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string            `yaml:"embedding_model" koanf:"embedding_model"`
	OllamaURL         string            `yaml:"ollama_url" koanf:"ollama_url"`
	OllamaDimensions  int               `yaml:"ollama_dimensions" koanf:"ollama_dimensions"`

	// Output artifact.
	OutputPath  string `yaml:"output_path" koanf:"output_path"`
	DatasetName string `yaml:"dataset_name" koanf:"dataset_name"`
	DatasetURL  string `yaml:"dataset_url" koanf:"dataset_url"`
}

// FetchTimeout returns the per-fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}
