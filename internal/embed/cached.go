package embed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ppiankov/gnosia/internal/cache"
)

// CachedEmbedder wraps another Embedder with a byte cache. Hits skip the
// upstream call entirely; misses are embedded in one upstream call and
// written back. Keys include the model name, so one cache serves mixed
// providers safely.
type CachedEmbedder struct {
	inner Embedder
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedEmbedder creates a caching wrapper around inner.
func NewCachedEmbedder(inner Embedder, c cache.Cache, ttl time.Duration) *CachedEmbedder {
	return &CachedEmbedder{
		inner: inner,
		cache: c,
		ttl:   ttl,
	}
}

// Model returns the wrapped embedder's model identifier
func (e *CachedEmbedder) Model() string {
	return e.inner.Model()
}

// Embed returns vectors for the given texts, serving cached ones and
// embedding only the misses.
func (e *CachedEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float64, len(texts))
	var missTexts []string
	var missIdx []int

	for i, text := range texts {
		key := cache.Key(e.inner.Model(), text)
		if data, found := e.cache.Get(key); found {
			var v []float64
			if err := json.Unmarshal(data, &v); err == nil {
				vectors[i] = v
				continue
			}
			// Corrupt entry; drop it and re-embed
			_ = e.cache.Delete(key)
		}
		missTexts = append(missTexts, text)
		missIdx = append(missIdx, i)
	}

	if len(missTexts) == 0 {
		return vectors, nil
	}

	fresh, err := e.inner.Embed(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missTexts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(missTexts), len(fresh))
	}

	for j, v := range fresh {
		vectors[missIdx[j]] = v

		data, err := json.Marshal(v)
		if err != nil {
			continue
		}
		key := cache.Key(e.inner.Model(), missTexts[j])
		_ = e.cache.Set(key, data, e.ttl)
	}

	return vectors, nil
}

// Close releases the wrapped embedder's resources when it holds any.
func (e *CachedEmbedder) Close() error {
	if closer, ok := e.inner.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
