// Package extract provides the claim extraction capability: given one
// article, produce candidate claims about the company tagged as description,
// strength, weakness or opportunity. Providers range from LLM-backed to a
// purely lexical heuristic that needs no network.
package extract

import (
	"context"

	"github.com/ppiankov/gnosia/internal/model"
)

// Request carries one article through extraction.
type Request struct {
	CompanyName string
	Title       string
	Content     string
}

// Result holds the claims extracted from a single article. Description is
// nil when the article contains no usable company description.
type Result struct {
	Description   *model.Claim
	Strengths     []model.Claim
	Weaknesses    []model.Claim
	Opportunities []model.Claim
}

// Extractor defines the interface for claim extraction providers.
// Implementations must be safe for concurrent use after construction.
type Extractor interface {
	// Extract returns candidate claims for one article.
	Extract(ctx context.Context, req Request) (*Result, error)

	// Name returns the provider name
	Name() string
}

// Empty reports whether the result carries no claims at all.
func (r *Result) Empty() bool {
	return r == nil ||
		(r.Description == nil && len(r.Strengths) == 0 && len(r.Weaknesses) == 0 && len(r.Opportunities) == 0)
}
