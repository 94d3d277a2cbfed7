// Package profile orchestrates extraction over an article set and
// synthesizes the aggregate company profile: one description, ranked and
// capped strengths, weaknesses and opportunities, and rendering.
package profile

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ppiankov/gnosia/internal/cluster"
	"github.com/ppiankov/gnosia/internal/extract"
	"github.com/ppiankov/gnosia/internal/model"
)

// Fixed fallback strings. They are part of the output contract, not
// placeholders, so downstream consumers can match on them.
const (
	noArticlesDescription   = "No articles available"
	noDescriptionAvailable  = "No description available."
	defaultMaxStrengths     = 10
	defaultMaxWeaknesses    = 8
	defaultMaxOpportunities = 8
)

// Synthesizer builds company profiles from articles.
type Synthesizer struct {
	extractor extract.Extractor
	engine    *cluster.Engine

	maxStrengths     int
	maxWeaknesses    int
	maxOpportunities int
}

// NewSynthesizer creates a profile synthesizer. Zero caps fall back to the
// defaults (10 strengths, 8 weaknesses, 8 opportunities).
func NewSynthesizer(extractor extract.Extractor, engine *cluster.Engine, cfg model.ProfileConfig) *Synthesizer {
	maxStrengths := cfg.MaxStrengths
	if maxStrengths <= 0 {
		maxStrengths = defaultMaxStrengths
	}
	maxWeaknesses := cfg.MaxWeaknesses
	if maxWeaknesses <= 0 {
		maxWeaknesses = defaultMaxWeaknesses
	}
	maxOpportunities := cfg.MaxOpportunities
	if maxOpportunities <= 0 {
		maxOpportunities = defaultMaxOpportunities
	}

	return &Synthesizer{
		extractor:        extractor,
		engine:           engine,
		maxStrengths:     maxStrengths,
		maxWeaknesses:    maxWeaknesses,
		maxOpportunities: maxOpportunities,
	}
}

// Aggregate builds a Profile from the article set. It never fails: empty
// input and per-article extraction errors degrade to documented defaults.
// Articles with empty content are skipped silently and not counted.
func (s *Synthesizer) Aggregate(ctx context.Context, articles []model.Article, companyName string) *model.Profile {
	p := &model.Profile{
		CompanyName:   companyName,
		Strengths:     []string{},
		Weaknesses:    []string{},
		Opportunities: []string{},
		GeneratedAt:   time.Now().UTC(),
		Metadata:      make(map[string]int),
		Details:       make(map[string][]model.Finding),
	}

	if len(articles) == 0 {
		p.Description = noArticlesDescription
		return p
	}

	pool := s.extractClaims(ctx, articles, companyName, p)

	p.Description = synthesizeDescription(pool.descriptions)

	strengths := s.engine.ClusterAndRank(ctx, pool.strengths)
	weaknesses := s.engine.ClusterAndRank(ctx, pool.weaknesses)
	opportunities := s.engine.ClusterAndRank(ctx, pool.opportunities)

	strengths = topN(strengths, s.maxStrengths)
	weaknesses = topN(weaknesses, s.maxWeaknesses)
	opportunities = topN(opportunities, s.maxOpportunities)

	for _, f := range strengths {
		p.Strengths = append(p.Strengths, labelStrength(f.Text))
	}
	for _, f := range weaknesses {
		p.Weaknesses = append(p.Weaknesses, f.Text)
	}
	for _, f := range opportunities {
		p.Opportunities = append(p.Opportunities, f.Text)
	}

	p.Details["strengths"] = strengths
	p.Details["weaknesses"] = weaknesses
	p.Details["opportunities"] = opportunities

	p.Metadata["descriptions_found"] = len(pool.descriptions)
	p.Metadata["strengths_total"] = len(pool.strengths)
	p.Metadata["strengths_unique"] = len(strengths)
	p.Metadata["weaknesses_total"] = len(pool.weaknesses)
	p.Metadata["weaknesses_unique"] = len(weaknesses)
	p.Metadata["opportunities_total"] = len(pool.opportunities)
	p.Metadata["opportunities_unique"] = len(opportunities)

	return p
}

// claimPool collects all claims across articles, grouped by category.
type claimPool struct {
	descriptions  []model.Claim
	strengths     []model.Claim
	weaknesses    []model.Claim
	opportunities []model.Claim
}

func (s *Synthesizer) extractClaims(ctx context.Context, articles []model.Article, companyName string, p *model.Profile) *claimPool {
	pool := &claimPool{}

	for _, article := range articles {
		if strings.TrimSpace(article.Content) == "" {
			continue
		}

		result, err := s.extractor.Extract(ctx, extract.Request{
			CompanyName: companyName,
			Title:       article.Title,
			Content:     article.Content,
		})
		if err != nil {
			slog.Warn("[Profile] extraction failed, skipping article",
				slog.String("title", article.Title),
				slog.String("error", err.Error()))
			continue
		}

		p.ArticlesAnalyzed++

		if result.Description != nil {
			pool.descriptions = append(pool.descriptions, *result.Description)
		}
		pool.strengths = append(pool.strengths, result.Strengths...)
		pool.weaknesses = append(pool.weaknesses, result.Weaknesses...)
		pool.opportunities = append(pool.opportunities, result.Opportunities...)
	}

	return pool
}

// synthesizeDescription picks the single best description claim by raw
// score, first wins ties. No cross-description merging is attempted; one
// good sentence beats a stitched paragraph.
func synthesizeDescription(descriptions []model.Claim) string {
	switch len(descriptions) {
	case 0:
		return noDescriptionAvailable
	case 1:
		return descriptions[0].Text
	}

	best := 0
	for i := 1; i < len(descriptions); i++ {
		if descriptions[i].Score > descriptions[best].Score {
			best = i
		}
	}
	return descriptions[best].Text
}

// topN keeps the first n findings; the input is already ranked.
func topN(findings []model.Finding, n int) []model.Finding {
	if len(findings) > n {
		return findings[:n]
	}
	return findings
}
