// Package cache provides the byte-value cache backing the embedding layer.
// Embeddings are the expensive part of a profile run; caching them makes
// re-running a company with tweaked thresholds nearly free.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key for an embedding of text under the given model.
// The model name is part of the hash so switching models never serves stale
// vectors.
func Key(model, text string) string {
	hash := sha256.Sum256([]byte(model + "\x00" + text))
	return "gnosia:v1:" + hex.EncodeToString(hash[:])
}
