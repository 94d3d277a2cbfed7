package extract

import (
	"fmt"
	"strings"

	"github.com/ppiankov/gnosia/internal/model"
)

// NewExtractor creates an extractor based on configuration. The heuristic
// provider is the default so profile runs work without any API keys.
func NewExtractor(cfg model.ExtractorConfig) (Extractor, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIExtractor(cfg)

	case "anthropic", "claude":
		return NewAnthropicExtractor(cfg)

	case "ollama":
		return NewOllamaExtractor(cfg)

	case "heuristic", "":
		return NewHeuristicExtractor(), nil

	default:
		return nil, fmt.Errorf("unknown extractor provider: %s (supported: openai, anthropic, ollama, heuristic)", cfg.Provider)
	}
}
