package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (EVALGEN_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: EVALGEN_LANGUAGE -> language, etc.
	if err := k.Load(env.Provider("EVALGEN_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "EVALGEN_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validProviders is the set of recognized embedding provider values.
var validProviders = map[EmbeddingProvider]bool{
	ProviderOpenAI: true,
	ProviderOllama: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.AnnotationsURL == "" && c.AnnotationsFile == "" {
		return fmt.Errorf("one of annotations_url or annotations_file is required")
	}
	if c.Language == "" {
		return fmt.Errorf("language is required")
	}
	if c.TargetQueries < 1 {
		return fmt.Errorf("target_queries must be positive")
	}
	if c.MaxCandidates < 1 {
		return fmt.Errorf("max_candidates must be positive")
	}
	if c.MinPositives < 1 {
		return fmt.Errorf("min_positives must be positive")
	}
	if c.RelevanceThreshold < 0 {
		return fmt.Errorf("relevance_threshold must be non-negative")
	}
	if c.FetchTimeoutSeconds < 1 {
		return fmt.Errorf("fetch_timeout_seconds must be positive")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be positive")
	}
	if c.MinSnippetChars < 0 {
		return fmt.Errorf("min_snippet_chars must be non-negative")
	}
	if c.MaxSnippetChars < c.MinSnippetChars {
		return fmt.Errorf("max_snippet_chars must be >= min_snippet_chars")
	}
	if c.DefaultLineWindow < 1 {
		return fmt.Errorf("default_line_window must be positive")
	}
	if !validProviders[c.EmbeddingProvider] {
		return fmt.Errorf("invalid embedding_provider %q: must be one of openai, ollama", c.EmbeddingProvider)
	}
	if c.EmbeddingModel == "" {
		return fmt.Errorf("embedding_model is required")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output_path is required")
	}
	return nil
}

// APIKeyEnvVar returns the conventional environment variable name for
// the API key of the given provider, or "" when none is needed.
func APIKeyEnvVar(provider EmbeddingProvider) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}
