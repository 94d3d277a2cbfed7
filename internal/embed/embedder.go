// Package embed provides the semantic embedding capability used for claim
// clustering and relevance labeling. Providers return L2-normalized vectors
// so cosine similarity reduces to a dot product.
package embed

import (
	"context"
	"math"
)

// Embedder maps texts to fixed-length normalized vectors. Implementations
// must return exactly one vector per input text, aligned by index, and must
// be safe for concurrent use after construction.
type Embedder interface {
	// Embed returns one L2-normalized vector per text.
	Embed(ctx context.Context, texts []string) ([][]float64, error)

	// Model returns the model identifier, used for cache keys.
	Model() string
}

// Normalize scales v to unit length in place and returns it. The zero
// vector is left untouched.
func Normalize(v []float64) []float64 {
	var sumSq float64
	for _, x := range v {
		sumSq += x * x
	}
	if sumSq == 0 {
		return v
	}
	norm := math.Sqrt(sumSq)
	for i := range v {
		v[i] /= norm
	}
	return v
}

// Similarity computes cosine similarity of two normalized vectors via dot
// product. Result is in [-1, 1]. Mismatched lengths score 0.
func Similarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot
}

// toFloat64 widens a provider's float32 vector and normalizes it.
func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return Normalize(out)
}
