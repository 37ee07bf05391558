package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .evalgen.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to evalgen! Let's configure your eval dataset build.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Annotation feed.
	feedPrompt := promptui.Prompt{
		Label:   "Annotation CSV (URL or local path)",
		Default: DefaultAnnotationsURL,
	}
	feed, err := feedPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("annotation feed: %w", err)
	}
	if strings.HasPrefix(feed, "http://") || strings.HasPrefix(feed, "https://") {
		cfg.AnnotationsURL = feed
	} else {
		cfg.AnnotationsURL = ""
		cfg.AnnotationsFile = feed
	}

	// 2. Language filter.
	langPrompt := promptui.Prompt{
		Label:   "Language to keep from the feed",
		Default: cfg.Language,
	}
	if cfg.Language, err = langPrompt.Run(); err != nil {
		return nil, fmt.Errorf("language: %w", err)
	}

	// 3. Query budget.
	queriesPrompt := promptui.Prompt{
		Label:    "Number of queries to select",
		Default:  strconv.Itoa(cfg.TargetQueries),
		Validate: validatePositiveInt,
	}
	queriesStr, err := queriesPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("target queries: %w", err)
	}
	cfg.TargetQueries, _ = strconv.Atoi(queriesStr)

	// 4. Embedding provider.
	providerPrompt := promptui.Select{
		Label: "Select embedding provider",
		Items: []string{"openai", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.EmbeddingProvider = EmbeddingProvider(providerStr)
	if cfg.EmbeddingProvider == ProviderOllama {
		cfg.EmbeddingModel = "nomic-embed-text"
	}

	// 5. Embedding model.
	modelPrompt := promptui.Prompt{
		Label:   "Embedding model",
		Default: cfg.EmbeddingModel,
	}
	if cfg.EmbeddingModel, err = modelPrompt.Run(); err != nil {
		return nil, fmt.Errorf("embedding model: %w", err)
	}

	// 6. Output path.
	outputPrompt := promptui.Prompt{
		Label:   "Output artifact path",
		Default: cfg.OutputPath,
	}
	if cfg.OutputPath, err = outputPrompt.Run(); err != nil {
		return nil, fmt.Errorf("output path: %w", err)
	}

	// Check for API key.
	envVar := APIKeyEnvVar(cfg.EmbeddingProvider)
	if envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment before running evalgen build.\n", envVar)
	}

	configPath := ".evalgen.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}
