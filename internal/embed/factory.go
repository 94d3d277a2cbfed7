package embed

import (
	"fmt"
	"strings"

	"github.com/ppiankov/gnosia/internal/cache"
	"github.com/ppiankov/gnosia/internal/model"
)

// NewEmbedder creates an embedder based on configuration. An empty provider
// returns (nil, nil): embedding is disabled and callers degrade to their
// documented fallbacks.
func NewEmbedder(cfg model.EmbeddingConfig) (Embedder, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIEmbedder(cfg)

	case "ollama":
		return NewOllamaEmbedder(cfg)

	case "local", "onnx":
		return NewLocalEmbedder(cfg)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown embedding provider: %s (supported: openai, ollama, local)", cfg.Provider)
	}
}

// WithCache wraps an embedder with the configured cache layers. A nil
// embedder or disabled cache passes through unchanged.
func WithCache(e Embedder, cfg model.CacheConfig) Embedder {
	if e == nil || !cfg.Enabled {
		return e
	}

	layered := cache.NewLayeredCache(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL)
	return NewCachedEmbedder(e, layered, cfg.DiskTTL)
}
