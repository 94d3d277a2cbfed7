package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the complete runtime configuration. Commands start from
// DefaultConfig and override sections from flags; the config file and
// GNOSIA_* environment variables sit between the two (see internal/cli).
type Config struct {
	Embedding    EmbeddingConfig    `yaml:"embedding"`
	Extractor    ExtractorConfig    `yaml:"extractor"`
	Clustering   ClusteringConfig   `yaml:"clustering"`
	Profile      ProfileConfig      `yaml:"profile"`
	Summarizer   SummarizerConfig   `yaml:"summarizer"`
	Labeler      LabelerConfig      `yaml:"labeler"`
	HTTP         HTTPConfig         `yaml:"http"`
	Cache        CacheConfig        `yaml:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting"`
	Output       OutputConfig       `yaml:"output"`
}

// EmbeddingConfig configures the semantic embedder capability.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`   // "openai", "ollama", "local", "" (disabled)
	Model     string `yaml:"model"`      // Provider-specific model identifier
	APIKey    string `yaml:"api_key"`    // From env, never written to config files
	BaseURL   string `yaml:"base_url"`   // Custom endpoint (Ollama, proxies)
	ModelPath string `yaml:"model_path"` // ONNX model directory for the local provider
	BatchSize int    `yaml:"batch_size"` // Texts per upstream call; throughput tunable only
	Timeout   int    `yaml:"timeout"`    // Seconds per upstream call
}

// ExtractorConfig configures the claim extractor capability.
type ExtractorConfig struct {
	Provider  string `yaml:"provider"` // "openai", "anthropic", "ollama", "heuristic"
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"`
	MaxTokens int    `yaml:"max_tokens"`
}

// ClusteringConfig tunes the claim clustering engine. The importance formula
// weights are fixed; only the similarity threshold is operator-facing.
type ClusteringConfig struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
}

// ProfileConfig caps the ranked category lists in the final profile.
type ProfileConfig struct {
	MaxStrengths     int `yaml:"max_strengths"`
	MaxWeaknesses    int `yaml:"max_weaknesses"`
	MaxOpportunities int `yaml:"max_opportunities"`
}

// SummarizerConfig tunes the extractive summarizer.
type SummarizerConfig struct {
	Domain       string `yaml:"domain"`        // Keyword domain, "general" if empty
	MaxSentences int    `yaml:"max_sentences"` // 0 derives the target from word count
}

// LabelerConfig tunes the similarity labeler thresholds and nudges. The
// thresholds are deliberately not validated against each other; an inverted
// pair silently degenerates the top tier (caller error, kept as-is).
type LabelerConfig struct {
	DirectThreshold   float64  `yaml:"direct_threshold"`
	IndirectThreshold float64  `yaml:"indirect_threshold"`
	DomainKeywords    []string `yaml:"domain_keywords,omitempty"`
	GeoKeywords       []string `yaml:"geo_keywords,omitempty"`
}

// HTTPConfig configures outbound article fetching.
type HTTPConfig struct {
	Timeout            time.Duration `yaml:"timeout"`
	UserAgent          string        `yaml:"user_agent"`
	MaxBodyBytes       int64         `yaml:"max_body_bytes"`
	InsecureSkipVerify bool          `yaml:"insecure_skip_verify"`
	HTTPProxy          string        `yaml:"http_proxy"`
	HTTPSProxy         string        `yaml:"https_proxy"`
	NoProxy            string        `yaml:"no_proxy"`
}

// CacheConfig configures the embedding cache layers.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig sizes the batch worker pool. Individual pipeline calls
// stay sequential; workers only parallelize across companies.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// RateLimitingConfig throttles outbound requests per host.
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// defaultCacheDir sits next to the config file under ~/.gnosia.
func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "gnosia-cache")
	}
	return filepath.Join(home, ".gnosia", "cache")
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			BatchSize: 256,
			Timeout:   30,
		},
		Extractor: ExtractorConfig{
			Provider:  "heuristic",
			Timeout:   45,
			MaxTokens: 1500,
		},
		Clustering: ClusteringConfig{
			SimilarityThreshold: 0.75,
		},
		Profile: ProfileConfig{
			MaxStrengths:     10,
			MaxWeaknesses:    8,
			MaxOpportunities: 8,
		},
		Summarizer: SummarizerConfig{
			Domain: "general",
		},
		Labeler: LabelerConfig{
			DirectThreshold:   0.55,
			IndirectThreshold: 0.35,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Gnosia/0.1 (+https://github.com/ppiankov/gnosia)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
