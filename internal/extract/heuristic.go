package extract

import (
	"context"
	"strings"

	"github.com/jonreiter/govader"

	"github.com/ppiankov/gnosia/internal/model"
	"github.com/ppiankov/gnosia/internal/textutil"
)

// HeuristicExtractor extracts claims with keyword matching plus VADER
// sentiment. No network, no API keys; quality is below the LLM providers
// but it makes the pipeline usable offline and is the default provider.
type HeuristicExtractor struct {
	analyzer *govader.SentimentIntensityAnalyzer

	strengthKeywords    []string
	weaknessKeywords    []string
	opportunityKeywords []string
	descriptionKeywords []string
}

// Sentence length bounds for claim candidates, in characters.
const (
	minClaimLen = 30
	maxClaimLen = 500
)

// NewHeuristicExtractor creates a new heuristic extractor
func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
		strengthKeywords: []string{
			"leader", "leading", "largest", "dominant", "strong", "growth",
			"growing", "record", "profit", "revenue", "expanded", "award",
			"innovative", "partnership", "acquired", "milestone", "surpassed",
		},
		weaknessKeywords: []string{
			"decline", "loss", "losses", "lawsuit", "layoff", "weak",
			"struggling", "debt", "fine", "penalty", "outage", "breach",
			"recall", "shortfall", "missed", "downgrade", "churn",
		},
		opportunityKeywords: []string{
			"plans to", "expects to", "will launch", "opportunity",
			"potential", "expansion", "emerging", "untapped", "upcoming",
			"pipeline", "explore", "pilot", "roadmap", "eyeing",
		},
		descriptionKeywords: []string{
			"is a", "is an", "is the", "provides", "operates", "offers",
			"specializes", "headquartered", "founded",
		},
	}
}

// Name returns the provider name
func (e *HeuristicExtractor) Name() string {
	return "heuristic"
}

// Extract returns candidate claims for one article
func (e *HeuristicExtractor) Extract(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := textutil.Clean(req.Content)
	sentences := textutil.SplitSentences(text)

	result := &Result{}
	company := strings.ToLower(req.CompanyName)

	for i, sentence := range sentences {
		if len(sentence) < minClaimLen || len(sentence) > maxClaimLen {
			continue
		}

		lower := strings.ToLower(sentence)
		mentionsCompany := company != "" && strings.Contains(lower, company)

		if result.Description == nil && mentionsCompany && e.looksLikeDescription(lower) {
			c := e.makeClaim(sentence, i, mentionsCompany, model.CategoryDescription)
			result.Description = &c
			continue
		}

		// Future-looking phrasing wins over polarity keywords: "plans to
		// expand" is an opportunity even though "expand" reads as strength.
		switch {
		case matchesAny(lower, e.opportunityKeywords):
			result.Opportunities = append(result.Opportunities, e.makeClaim(sentence, i, mentionsCompany, model.CategoryOpportunity))

		case matchesAny(lower, e.weaknessKeywords) && e.compound(sentence) <= 0:
			result.Weaknesses = append(result.Weaknesses, e.makeClaim(sentence, i, mentionsCompany, model.CategoryWeakness))

		case matchesAny(lower, e.strengthKeywords) && e.compound(sentence) >= 0:
			result.Strengths = append(result.Strengths, e.makeClaim(sentence, i, mentionsCompany, model.CategoryStrength))
		}
	}

	return result, nil
}

func (e *HeuristicExtractor) looksLikeDescription(lower string) bool {
	return matchesAny(lower, e.descriptionKeywords)
}

func (e *HeuristicExtractor) compound(sentence string) float64 {
	return e.analyzer.PolarityScores(sentence).Compound
}

// makeClaim scores a sentence from sentiment magnitude, with a small bump
// when the company is named explicitly.
func (e *HeuristicExtractor) makeClaim(sentence string, index int, mentionsCompany bool, category model.Category) model.Claim {
	compound := e.compound(sentence)
	magnitude := compound
	if magnitude < 0 {
		magnitude = -magnitude
	}

	score := 0.5 + 0.4*magnitude
	if mentionsCompany {
		score += 0.05
	}
	if score > 1.0 {
		score = 1.0
	}

	confidence := model.ConfidenceLow
	switch {
	case magnitude >= 0.5:
		confidence = model.ConfidenceHigh
	case magnitude >= 0.2:
		confidence = model.ConfidenceMedium
	}

	return model.Claim{
		Text:       sentence,
		Score:      score,
		Confidence: confidence,
		Category:   category,
	}
}

func matchesAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
