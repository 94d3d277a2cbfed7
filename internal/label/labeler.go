// Package label scores a corpus of articles against a reference objective
// text and partitions it into three relevance tiers. It is a batch utility:
// the objective is embedded once, every row is embedded and compared by
// cosine similarity, keyword matches nudge borderline scores, and two
// thresholds cut the tiers.
package label

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/gnosia/internal/embed"
	"github.com/ppiankov/gnosia/internal/model"
)

// Label is the relevance tier assigned to one row.
type Label string

const (
	LabelDirect      Label = "Directly Relevant"
	LabelIndirect    Label = "Indirectly Useful"
	LabelNotRelevant Label = "Not Relevant"
)

// Keyword nudges are additive and small. They tip borderline rows over a
// threshold but never move the semantic signal by more than 0.08 absolute.
const (
	domainBoost = 0.05
	geoBoost    = 0.03
)

const (
	defaultDirectThreshold   = 0.55
	defaultIndirectThreshold = 0.35
)

// defaultDomainKeywords covers the mobile-money fintech vocabulary this
// labeler was built around. Overridable via config.
var defaultDomainKeywords = []string{
	"mobile money",
	"mobile wallet",
	"digital wallet",
	"mobile banking",
	"fintech",
	"payments",
	"remittance",
	"agent network",
	"financial inclusion",
	"merchant",
	"ussd",
	"airtime",
}

// defaultGeoKeywords covers the markets the default corpus is drawn from.
var defaultGeoKeywords = []string{
	"africa",
	"kenya",
	"nigeria",
	"ghana",
	"tanzania",
	"uganda",
	"rwanda",
	"ethiopia",
	"senegal",
	"zambia",
	"cameroon",
	"ivory coast",
}

// Row is one corpus item: an article title and body.
type Row struct {
	Title   string
	Content string
}

func (r Row) combined() string {
	return strings.TrimSpace(r.Title + " " + r.Content)
}

// Result is the relevance judgment for one row, index-aligned with the
// input. Score is the boosted value the thresholds were applied to.
type Result struct {
	Score float64
	Label Label
}

// Labeler scores rows against a reference objective using a shared
// embedder. Safe for concurrent use after construction.
type Labeler struct {
	embedder          embed.Embedder
	directThreshold   float64
	indirectThreshold float64
	domainKeywords    []string
	geoKeywords       []string
}

// NewLabeler creates a labeler. The embedder is required: unlike claim
// clustering there is no lexical fallback for corpus relevance. Thresholds
// at or below zero fall back to the defaults (0.55 direct, 0.35 indirect).
// An inverted threshold pair is taken as given, not corrected; the direct
// tier then swallows the indirect band.
func NewLabeler(embedder embed.Embedder, cfg model.LabelerConfig) (*Labeler, error) {
	if embedder == nil {
		return nil, fmt.Errorf("labeler requires an embedding provider")
	}

	direct := cfg.DirectThreshold
	if direct <= 0 {
		direct = defaultDirectThreshold
	}
	indirect := cfg.IndirectThreshold
	if indirect <= 0 {
		indirect = defaultIndirectThreshold
	}
	domainKeywords := cfg.DomainKeywords
	if len(domainKeywords) == 0 {
		domainKeywords = defaultDomainKeywords
	}
	geoKeywords := cfg.GeoKeywords
	if len(geoKeywords) == 0 {
		geoKeywords = defaultGeoKeywords
	}

	return &Labeler{
		embedder:          embedder,
		directThreshold:   direct,
		indirectThreshold: indirect,
		domainKeywords:    domainKeywords,
		geoKeywords:       geoKeywords,
	}, nil
}

// LabelCorpus scores every row against the objective. The objective is
// embedded once; the rows go through the embedder in a single call and
// providers chunk upstream requests at their configured batch size.
func (l *Labeler) LabelCorpus(ctx context.Context, rows []Row, objective string) ([]Result, error) {
	results := make([]Result, 0, len(rows))
	if len(rows) == 0 {
		return results, nil
	}

	refVecs, err := l.embedder.Embed(ctx, []string{objective})
	if err != nil {
		return nil, fmt.Errorf("embedding objective: %w", err)
	}
	if len(refVecs) != 1 {
		return nil, fmt.Errorf("embedding objective: expected 1 vector, got %d", len(refVecs))
	}
	ref := refVecs[0]

	texts := make([]string, len(rows))
	for i, row := range rows {
		texts[i] = row.combined()
	}

	vecs, err := l.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding corpus: %w", err)
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("embedding corpus: expected %d vectors, got %d", len(texts), len(vecs))
	}

	for i, vec := range vecs {
		score := l.boost(texts[i], embed.Similarity(vec, ref))
		results = append(results, Result{Score: score, Label: l.classify(score)})
	}
	return results, nil
}

// boost applies the keyword nudges to a raw similarity. Matching any domain
// keyword adds 0.05 and any geography keyword adds 0.03; the result is
// capped at 1.0.
func (l *Labeler) boost(combined string, score float64) float64 {
	lower := strings.ToLower(combined)
	if matchesAny(lower, l.domainKeywords) {
		score += domainBoost
	}
	if matchesAny(lower, l.geoKeywords) {
		score += geoBoost
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func (l *Labeler) classify(score float64) Label {
	switch {
	case score >= l.directThreshold:
		return LabelDirect
	case score >= l.indirectThreshold:
		return LabelIndirect
	default:
		return LabelNotRelevant
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
