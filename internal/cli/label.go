package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/gnosia/internal/label"
)

var (
	labelCSV       string
	labelObjective string
	labelOutput    string
	labelEmbedder  string
	labelModel     string
	labelDirect    float64
	labelIndirect  float64
	labelTimeout   time.Duration
	labelNoCache   bool
)

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Label a CSV article corpus by relevance to an objective",
	Long: `Label embeds each row of a CSV corpus (title and content columns
required) together with a reference objective, scores rows by cosine
similarity, nudges scores that match domain or geography keywords, and
sorts every row into one of three tiers:

  Directly Relevant   score >= direct threshold
  Indirectly Useful   score >= indirect threshold
  Not Relevant        everything else

The output CSV keeps the input columns and appends label and
semantic_score.

Examples:
  gnosia label --csv articles.csv --objective "mobile money adoption in Kenya"
  gnosia label --csv articles.csv --objective "..." --output labeled.csv --direct_threshold 0.6`,
	RunE: runLabel,
}

func init() {
	rootCmd.AddCommand(labelCmd)

	labelCmd.Flags().StringVar(&labelCSV, "csv", "", "input CSV path with title and content columns (required)")
	labelCmd.Flags().StringVar(&labelObjective, "objective", "", "reference objective text (required)")
	labelCmd.Flags().StringVar(&labelOutput, "output", "", "output CSV path (default <input>_labeled.csv)")
	labelCmd.Flags().StringVar(&labelEmbedder, "embedder", "", "embedding provider: openai, ollama, local")
	labelCmd.Flags().StringVar(&labelModel, "model", "", "embedding model identifier")
	labelCmd.Flags().Float64Var(&labelDirect, "direct_threshold", 0, "minimum score for Directly Relevant")
	labelCmd.Flags().Float64Var(&labelIndirect, "indirect_threshold", 0, "minimum score for Indirectly Useful")
	labelCmd.Flags().DurationVar(&labelTimeout, "timeout", 10*time.Minute, "overall run timeout")
	labelCmd.Flags().BoolVar(&labelNoCache, "no-cache", false, "disable the embedding cache")

	_ = labelCmd.MarkFlagRequired("csv")
	_ = labelCmd.MarkFlagRequired("objective")
}

func runLabel(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if labelEmbedder != "" {
		cfg.Embedding.Provider = labelEmbedder
	}
	if labelModel != "" {
		cfg.Embedding.Model = labelModel
	}
	if cmd.Flags().Changed("direct_threshold") {
		cfg.Labeler.DirectThreshold = labelDirect
	}
	if cmd.Flags().Changed("indirect_threshold") {
		cfg.Labeler.IndirectThreshold = labelIndirect
	}
	if labelNoCache {
		cfg.Cache.Enabled = false
	}

	embedder, err := resolveEmbedder(cfg)
	if err != nil {
		return err
	}
	if embedder == nil {
		return fmt.Errorf("label requires an embedding provider")
	}
	defer closeQuietly(embedder)

	labeler, err := label.NewLabeler(embedder, cfg.Labeler)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), labelTimeout)
	defer cancel()

	report, err := labeler.ProcessCSV(ctx, labelCSV, labelOutput, labelObjective)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Labeled corpus: %s\n", report.OutputPath)
	fmt.Println(report.Summary())
	return nil
}
