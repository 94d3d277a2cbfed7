package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/gnosia/internal/cluster"
	"github.com/ppiankov/gnosia/internal/profile"
	"github.com/ppiankov/gnosia/internal/worker"
)

var (
	batchConcurrency int
	batchOutputDir   string
	batchExtractor   string
	batchEmbedder    string
	batchTimeout     time.Duration
	batchNoCache     bool
	batchNoFooter    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Profile many companies from a manifest in parallel",
	Long: `Batch reads a manifest of company,articles-file lines (blank lines and
# comments skipped), builds every profile on a worker pool and writes a
JSON and a Markdown report per company into the output directory.

Example manifest:
  Acme Corp,data/acme.json
  Globex,data/globex.csv
  # retired
  #Initech,data/initech.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "parallel workers (0 = config value, else CPU count)")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "profiles", "directory for the per-company reports")
	batchCmd.Flags().StringVar(&batchExtractor, "extractor", "", "claim extractor: heuristic, openai, anthropic, ollama")
	batchCmd.Flags().StringVar(&batchEmbedder, "embedder", "", "embedding provider: openai, ollama, local, none")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "overall run timeout")
	batchCmd.Flags().BoolVar(&batchNoCache, "no-cache", false, "disable the embedding cache")
	batchCmd.Flags().BoolVar(&batchNoFooter, "no-footer", false, "omit the generated-at footer from reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	manifestPath := args[0]

	cfg := loadConfig()
	if batchExtractor != "" {
		cfg.Extractor.Provider = batchExtractor
	}
	if batchEmbedder != "" {
		cfg.Embedding.Provider = batchEmbedder
	}
	if batchEmbedder == "none" {
		cfg.Embedding.Provider = ""
	}
	if batchNoCache {
		cfg.Cache.Enabled = false
	}
	if batchNoFooter {
		cfg.Output.IncludeFooter = false
	}

	workers := cfg.Concurrency.Workers
	if batchConcurrency > 0 {
		workers = batchConcurrency
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	extractor, err := resolveExtractor(cfg)
	if err != nil {
		return err
	}
	embedder, err := resolveEmbedder(cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(embedder)

	if err := os.MkdirAll(batchOutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	engine := cluster.NewEngine(embedder, cfg.Clustering.SimilarityThreshold)
	synthesizer := profile.NewSynthesizer(extractor, engine, cfg.Profile)
	processor := worker.NewBatchProcessor(synthesizer, workers)
	renderer := profile.NewRenderer(cfg.Output.IncludeFooter)

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintln(os.Stderr, "═══════════════════════════════════════════════════")
	fmt.Fprintf(os.Stderr, "  Gnosia batch: %s (%d workers)\n", manifestPath, workers)
	fmt.Fprintln(os.Stderr, "═══════════════════════════════════════════════════")

	start := time.Now()
	results, err := processor.ProcessManifest(ctx, manifestPath)
	if err != nil {
		return err
	}

	succeeded := 0
	for _, result := range results {
		if result.Err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Company, result.Err)
			continue
		}

		slug := sanitizeFilename(result.Company)
		jsonPath := filepath.Join(batchOutputDir, slug+".json")
		mdPath := filepath.Join(batchOutputDir, slug+".md")
		if err := renderer.RenderJSON(result.Profile, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Company, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Profile, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Company, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s (%d articles)\n", result.Company, result.Profile.ArticlesAnalyzed)
		succeeded++
	}

	fmt.Fprintln(os.Stderr, "═══════════════════════════════════════════════════")
	fmt.Fprintf(os.Stderr, "  Companies: %d   Succeeded: %d   Failed: %d\n", len(results), succeeded, len(results)-succeeded)
	fmt.Fprintf(os.Stderr, "  Elapsed: %s   Reports: %s\n", time.Since(start).Round(time.Millisecond), batchOutputDir)
	fmt.Fprintln(os.Stderr, "═══════════════════════════════════════════════════")

	if succeeded == 0 && len(results) > 0 {
		return fmt.Errorf("all %d profiles failed", len(results))
	}
	return nil
}

// sanitizeFilename turns a company name into a safe report filename.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
	)
	sanitized := replacer.Replace(strings.TrimSpace(name))
	if len(sanitized) > 100 {
		sanitized = sanitized[:100]
	}
	return sanitized
}
