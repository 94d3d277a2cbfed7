package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/ppiankov/gnosia/internal/embed"
	"github.com/ppiankov/gnosia/internal/extract"
	"github.com/ppiankov/gnosia/internal/model"
)

// loadConfig returns the defaults with config-file and GNOSIA_* environment
// overrides applied. Flag overrides happen afterwards in each command.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if viper.IsSet("embedding.provider") {
		cfg.Embedding.Provider = viper.GetString("embedding.provider")
	}
	if viper.IsSet("embedding.model") {
		cfg.Embedding.Model = viper.GetString("embedding.model")
	}
	if viper.IsSet("embedding.base_url") {
		cfg.Embedding.BaseURL = viper.GetString("embedding.base_url")
	}
	if viper.IsSet("embedding.model_path") {
		cfg.Embedding.ModelPath = viper.GetString("embedding.model_path")
	}
	if viper.IsSet("extractor.provider") {
		cfg.Extractor.Provider = viper.GetString("extractor.provider")
	}
	if viper.IsSet("extractor.model") {
		cfg.Extractor.Model = viper.GetString("extractor.model")
	}
	if viper.IsSet("extractor.base_url") {
		cfg.Extractor.BaseURL = viper.GetString("extractor.base_url")
	}
	if viper.IsSet("clustering.similarity_threshold") {
		cfg.Clustering.SimilarityThreshold = viper.GetFloat64("clustering.similarity_threshold")
	}
	if viper.IsSet("summarizer.domain") {
		cfg.Summarizer.Domain = viper.GetString("summarizer.domain")
	}
	if viper.IsSet("labeler.direct_threshold") {
		cfg.Labeler.DirectThreshold = viper.GetFloat64("labeler.direct_threshold")
	}
	if viper.IsSet("labeler.indirect_threshold") {
		cfg.Labeler.IndirectThreshold = viper.GetFloat64("labeler.indirect_threshold")
	}
	if viper.IsSet("http.user_agent") {
		cfg.HTTP.UserAgent = viper.GetString("http.user_agent")
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("cache.dir") {
		cfg.Cache.Dir = viper.GetString("cache.dir")
	}
	if viper.IsSet("concurrency.workers") {
		cfg.Concurrency.Workers = viper.GetInt("concurrency.workers")
	}

	return cfg
}

// resolveEmbedder builds the configured embedder, pulling API keys from the
// environment, and wraps it with the cache layers. Returns nil when
// embeddings are disabled.
func resolveEmbedder(cfg *model.Config) (embed.Embedder, error) {
	provider := strings.ToLower(cfg.Embedding.Provider)
	if cfg.Embedding.APIKey == "" {
		switch provider {
		case "openai":
			cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.Embedding.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			if cfg.Embedding.BaseURL == "" {
				cfg.Embedding.BaseURL = os.Getenv("OLLAMA_BASE_URL")
			}
		}
	}

	embedder, err := embed.NewEmbedder(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}
	if embedder == nil {
		return nil, nil
	}
	return embed.WithCache(embedder, cfg.Cache), nil
}

// resolveExtractor builds the configured claim extractor, pulling API keys
// from the environment.
func resolveExtractor(cfg *model.Config) (extract.Extractor, error) {
	if cfg.Extractor.APIKey == "" {
		switch strings.ToLower(cfg.Extractor.Provider) {
		case "openai":
			cfg.Extractor.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.Extractor.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.Extractor.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.Extractor.APIKey == "" {
				return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			if cfg.Extractor.BaseURL == "" {
				cfg.Extractor.BaseURL = os.Getenv("OLLAMA_BASE_URL")
			}
		}
	}

	extractor, err := extract.NewExtractor(cfg.Extractor)
	if err != nil {
		return nil, fmt.Errorf("create extractor: %w", err)
	}
	return extractor, nil
}

// closeQuietly releases provider resources (local ONNX sessions) at command
// exit.
func closeQuietly(v any) {
	if closer, ok := v.(io.Closer); ok {
		_ = closer.Close()
	}
}
