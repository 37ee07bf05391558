package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "evalgen",
	Short: "Build a fixed evaluation dataset for code-search embedding quality",
	Long: `evalgen builds a reproducible ground-truth dataset for scoring a
code-search/embedding service. It selects annotated queries with enough
positive signal, fetches the referenced code from GitHub, embeds queries
and snippets with a fixed model, and writes a single JSON artifact ready
for Recall@k / MRR scoring.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// API keys commonly live in a local .env file.
		_ = godotenv.Load()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".evalgen.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
