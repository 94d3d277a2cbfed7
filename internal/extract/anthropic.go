package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/ppiankov/gnosia/internal/model"
)

// AnthropicExtractor implements Extractor using Anthropic's Messages API.
type AnthropicExtractor struct {
	client    *anthropic.Client
	model     anthropic.Model
	maxTokens int64
	timeout   time.Duration
}

// NewAnthropicExtractor creates a new Anthropic extractor
func NewAnthropicExtractor(cfg model.ExtractorConfig) (*AnthropicExtractor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := anthropic.NewClient(opts...)

	chatModel := anthropic.Model(cfg.Model)
	if cfg.Model == "" {
		chatModel = anthropic.ModelClaudeHaiku4_5
	}

	maxTokens := int64(cfg.MaxTokens)
	if maxTokens == 0 {
		maxTokens = 1500
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 45 * time.Second
	}

	return &AnthropicExtractor{
		client:    &client,
		model:     chatModel,
		maxTokens: maxTokens,
		timeout:   timeout,
	}, nil
}

// Name returns the provider name
func (e *AnthropicExtractor) Name() string {
	return "anthropic"
}

// Extract returns candidate claims for one article
func (e *AnthropicExtractor) Extract(ctx context.Context, req Request) (*Result, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.Messages.New(ctxWithTimeout, anthropic.MessageNewParams{
		Model:     e.model,
		MaxTokens: e.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(req))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("no response from anthropic")
	}

	return parseResponse(resp.Content[0].Text)
}
