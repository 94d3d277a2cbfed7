package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/gnosia/internal/cluster"
	"github.com/ppiankov/gnosia/internal/fetch"
	"github.com/ppiankov/gnosia/internal/model"
	"github.com/ppiankov/gnosia/internal/profile"
)

var (
	profileArticles   string
	profileURLs       []string
	profileFeed       string
	profileFeedLimit  int
	profileJSONOut    string
	profileMDOut      string
	profileExtractor  string
	profileExtModel   string
	profileEmbedder   string
	profileEmbedModel string
	profileThreshold  float64
	profileTimeout    time.Duration
	profileUserAgent  string
	profileNoCache    bool
	profileNoFooter   bool
	profileInsecure   bool
)

var profileCmd = &cobra.Command{
	Use:   "profile <company>",
	Short: "Aggregate news articles into a company profile",
	Long: `Profile reads articles from a local file, a list of URLs or an RSS/Atom
feed, extracts claims about the company, clusters near-duplicates and
prints a profile with ranked strengths, weaknesses and opportunities.

Articles files may be JSON (array or {"articles": [...]}), CSV with
title and content columns, Markdown or plain text.

Examples:
  gnosia profile "Acme Corp" --articles articles.json
  gnosia profile "Acme Corp" --url https://example.com/a1 --url https://example.com/a2
  gnosia profile "Acme Corp" --feed https://example.com/rss --json acme.json
  gnosia profile "Acme Corp" --articles articles.csv --extractor openai --embedder openai`,
	Args: cobra.ExactArgs(1),
	RunE: runProfile,
}

func init() {
	rootCmd.AddCommand(profileCmd)

	profileCmd.Flags().StringVar(&profileArticles, "articles", "", "path to an articles file (JSON, CSV, Markdown or text)")
	profileCmd.Flags().StringArrayVar(&profileURLs, "url", nil, "article URL to fetch (repeatable)")
	profileCmd.Flags().StringVar(&profileFeed, "feed", "", "RSS/Atom feed URL to pull articles from")
	profileCmd.Flags().IntVar(&profileFeedLimit, "feed-limit", 20, "maximum feed items to read")
	profileCmd.Flags().StringVar(&profileJSONOut, "json", "", "write the profile as JSON to this path")
	profileCmd.Flags().StringVar(&profileMDOut, "md", "", "write the profile as Markdown to this path")
	profileCmd.Flags().StringVar(&profileExtractor, "extractor", "", "claim extractor: heuristic, openai, anthropic, ollama")
	profileCmd.Flags().StringVar(&profileExtModel, "extractor-model", "", "extractor model identifier")
	profileCmd.Flags().StringVar(&profileEmbedder, "embedder", "", "embedding provider: openai, ollama, local, none")
	profileCmd.Flags().StringVar(&profileEmbedModel, "embedding-model", "", "embedding model identifier")
	profileCmd.Flags().Float64Var(&profileThreshold, "threshold", 0, "cosine similarity threshold for claim clustering")
	profileCmd.Flags().DurationVar(&profileTimeout, "timeout", 5*time.Minute, "overall run timeout")
	profileCmd.Flags().StringVar(&profileUserAgent, "ua", "", "User-Agent for outbound fetches")
	profileCmd.Flags().BoolVar(&profileNoCache, "no-cache", false, "disable the embedding cache")
	profileCmd.Flags().BoolVar(&profileNoFooter, "no-footer", false, "omit the generated-at footer from reports")
	profileCmd.Flags().BoolVar(&profileInsecure, "insecure", false, "skip TLS certificate verification when fetching")
}

func runProfile(cmd *cobra.Command, args []string) error {
	company := args[0]

	cfg := loadConfig()
	if profileExtractor != "" {
		cfg.Extractor.Provider = profileExtractor
	}
	if profileExtModel != "" {
		cfg.Extractor.Model = profileExtModel
	}
	if profileEmbedder != "" {
		cfg.Embedding.Provider = profileEmbedder
	}
	if profileEmbedder == "none" {
		cfg.Embedding.Provider = ""
	}
	if profileEmbedModel != "" {
		cfg.Embedding.Model = profileEmbedModel
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Clustering.SimilarityThreshold = profileThreshold
	}
	if profileUserAgent != "" {
		cfg.HTTP.UserAgent = profileUserAgent
	}
	if profileNoCache {
		cfg.Cache.Enabled = false
	}
	if profileNoFooter {
		cfg.Output.IncludeFooter = false
	}
	cfg.HTTP.InsecureSkipVerify = profileInsecure
	cfg.Output.Verbose = verbose

	ctx, cancel := context.WithTimeout(context.Background(), profileTimeout)
	defer cancel()

	articles, err := gatherArticles(ctx, cfg)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Loaded %d articles\n", len(articles))
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

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙ Profiling %s (extractor: %s)...\n", company, extractor.Name())
	}

	engine := cluster.NewEngine(embedder, cfg.Clustering.SimilarityThreshold)
	synthesizer := profile.NewSynthesizer(extractor, engine, cfg.Profile)
	result := synthesizer.Aggregate(ctx, articles, company)

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Analyzed %d articles: %d strengths, %d weaknesses, %d opportunities\n",
			result.ArticlesAnalyzed, len(result.Strengths), len(result.Weaknesses), len(result.Opportunities))
	}

	renderer := profile.NewRenderer(cfg.Output.IncludeFooter)
	wroteFile := false
	if profileJSONOut != "" {
		if err := renderer.RenderJSON(result, profileJSONOut); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ JSON report: %s\n", profileJSONOut)
		wroteFile = true
	}
	if profileMDOut != "" {
		if err := renderer.RenderMarkdown(result, profileMDOut); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ Markdown report: %s\n", profileMDOut)
		wroteFile = true
	}
	if !wroteFile {
		fmt.Println(profile.FormatText(result))
	}

	return nil
}

// gatherArticles resolves the one configured input source. Fetch failures on
// individual URLs are reported and skipped; the run fails only when nothing
// could be read at all.
func gatherArticles(ctx context.Context, cfg *model.Config) ([]model.Article, error) {
	sources := 0
	if profileArticles != "" {
		sources++
	}
	if profileFeed != "" {
		sources++
	}
	if len(profileURLs) > 0 {
		sources++
	}
	if sources == 0 {
		return nil, fmt.Errorf("no input: provide --articles, --url or --feed")
	}
	if sources > 1 {
		return nil, fmt.Errorf("choose one input source: --articles, --url or --feed")
	}

	switch {
	case profileArticles != "":
		return fetch.LoadArticles(profileArticles)
	case profileFeed != "":
		return fetch.FetchFeed(ctx, profileFeed, profileFeedLimit)
	default:
		fetcher := fetch.NewFetcher(cfg.HTTP, cfg.RateLimiting)
		articles := make([]model.Article, 0, len(profileURLs))
		for _, rawURL := range profileURLs {
			article, err := fetcher.FetchArticle(ctx, rawURL)
			if err != nil {
				fmt.Fprintf(os.Stderr, "✗ %s: %v\n", rawURL, err)
				continue
			}
			if verbose {
				fmt.Fprintf(os.Stderr, "✓ Fetched %s\n", rawURL)
			}
			articles = append(articles, *article)
		}
		if len(articles) == 0 {
			return nil, fmt.Errorf("none of %d URLs could be fetched", len(profileURLs))
		}
		return articles, nil
	}
}
