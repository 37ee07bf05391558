package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"evalgen/internal/dataset"
	"evalgen/internal/retrieval"
)

var checkCmd = &cobra.Command{
	Use:   "check <artifact>",
	Short: "Validate a built artifact's structure and ground truth",
	Long: `Checks a previously built artifact: counts match, every referenced chunk
id exists, relevant sets are subsets of chunk sets, and all embeddings are
unit vectors of the declared dimensionality. With --retrieval, additionally
loads the precomputed embeddings into an in-memory vector index and reports
Recall@k and MRR as a smoke check.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("retrieval", false, "also run the retrieval smoke check")
	checkCmd.Flags().Int("min-positives", 0, "require at least this many relevant chunks per query (0 = config value)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	d, err := dataset.Read(args[0])
	if err != nil {
		return err
	}

	minPositives, _ := cmd.Flags().GetInt("min-positives")
	if minPositives == 0 {
		if cfg, err := loadConfig(); err == nil {
			minPositives = cfg.MinPositives
		}
	}

	if err := dataset.Validate(d, minPositives); err != nil {
		return fmt.Errorf("artifact %s is invalid: %w", args[0], err)
	}
	fmt.Printf("%s is structurally valid: %d queries, %d chunks, %d dims (model %s)\n",
		args[0], d.QueryCount, d.ChunkCount, d.Dims, d.Model)

	if withRetrieval, _ := cmd.Flags().GetBool("retrieval"); withRetrieval {
		report, err := retrieval.Evaluate(context.Background(), d, retrieval.DefaultKs)
		if err != nil {
			return fmt.Errorf("retrieval check: %w", err)
		}
		fmt.Println()
		fmt.Println(report)
	}

	return nil
}
