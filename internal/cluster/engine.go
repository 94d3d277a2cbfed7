// Package cluster groups near-duplicate claims from many articles and merges
// each group into one ranked finding.
package cluster

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/ppiankov/gnosia/internal/embed"
	"github.com/ppiankov/gnosia/internal/model"
)

// DefaultSimilarityThreshold is the cosine similarity at which two claims
// are considered the same finding.
const DefaultSimilarityThreshold = 0.75

// Engine clusters claims by embedding similarity and ranks the merged
// findings by importance.
type Engine struct {
	embedder  embed.Embedder
	threshold float64
}

// NewEngine creates a clustering engine. A nil embedder is allowed: every
// claim then becomes its own finding.
func NewEngine(embedder embed.Embedder, threshold float64) *Engine {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &Engine{
		embedder:  embedder,
		threshold: threshold,
	}
}

// ClusterAndRank groups near-duplicate claims, merges each group into one
// finding, and returns the findings sorted by importance (descending, stable
// for ties). Never fails: when embedding is unavailable it degrades to one
// finding per claim.
func (e *Engine) ClusterAndRank(ctx context.Context, claims []model.Claim) []model.Finding {
	if len(claims) == 0 {
		return []model.Finding{}
	}

	clusters := e.cluster(ctx, claims)

	findings := make([]model.Finding, 0, len(clusters))
	for _, members := range clusters {
		f := merge(members)
		f.Importance = importance(f)
		findings = append(findings, f)
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Importance > findings[j].Importance
	})

	return findings
}

// cluster runs the seed-based single-link pass. Claims are visited in input
// order; each unassigned claim seeds a new cluster and captures every later
// unassigned claim whose similarity to the seed (not to other members)
// clears the threshold. Deliberately not transitive closure: two members of
// one cluster are only guaranteed similar to the seed, not to each other.
func (e *Engine) cluster(ctx context.Context, claims []model.Claim) [][]model.Claim {
	vectors := e.embedAll(ctx, claims)
	if vectors == nil {
		return singletons(claims)
	}

	assigned := make([]bool, len(claims))
	var clusters [][]model.Claim

	for i := range claims {
		if assigned[i] {
			continue
		}
		assigned[i] = true
		members := []model.Claim{claims[i]}

		for j := i + 1; j < len(claims); j++ {
			if assigned[j] {
				continue
			}
			if embed.Similarity(vectors[i], vectors[j]) >= e.threshold {
				assigned[j] = true
				members = append(members, claims[j])
			}
		}

		clusters = append(clusters, members)
	}

	return clusters
}

// embedAll embeds every claim text in one batch call. Returns nil when
// embedding is disabled or fails, which callers treat as "skip clustering".
func (e *Engine) embedAll(ctx context.Context, claims []model.Claim) [][]float64 {
	if e.embedder == nil {
		return nil
	}

	texts := make([]string, len(claims))
	for i, c := range claims {
		texts[i] = c.Text
	}

	vectors, err := e.embedder.Embed(ctx, texts)
	if err != nil {
		slog.Warn("[Cluster] embedding failed, using singleton findings",
			slog.String("error", err.Error()))
		return nil
	}
	if len(vectors) != len(claims) {
		slog.Warn("[Cluster] embedding count mismatch, using singleton findings",
			slog.Int("want", len(claims)),
			slog.Int("got", len(vectors)))
		return nil
	}

	return vectors
}

func singletons(claims []model.Claim) [][]model.Claim {
	clusters := make([][]model.Claim, len(claims))
	for i, c := range claims {
		clusters[i] = []model.Claim{c}
	}
	return clusters
}

// merge collapses one cluster into a Finding. Representative text is the
// member with the highest raw score (first wins ties). The finding's score
// is the arithmetic mean over members. Confidence is the most frequent
// label, ties broken by whichever label reached that count first.
func merge(members []model.Claim) model.Finding {
	best := 0
	var sum float64
	for k, m := range members {
		sum += m.Score
		if m.Score > members[best].Score {
			best = k
		}
	}

	counts := make(map[model.Confidence]int)
	var modeConf model.Confidence
	modeCount := 0
	for _, m := range members {
		counts[m.Confidence]++
		if counts[m.Confidence] > modeCount {
			modeCount = counts[m.Confidence]
			modeConf = m.Confidence
		}
	}

	var variations []string
	for k, m := range members {
		if k != best {
			variations = append(variations, m.Text)
		}
	}

	return model.Finding{
		Text:       members[best].Text,
		Score:      sum / float64(len(members)),
		Confidence: modeConf,
		Mentions:   len(members),
		Variations: variations,
	}
}

// importance blends mean score, confidence and repetition:
// 0.4*score + 0.3*confidence_weight + 0.3*frequency_weight with
// frequency_weight = min(mentions/3, 1.5). The frequency term exceeds 1 past
// three mentions, so a heavily repeated finding outranks any single
// perfectly scored claim. Intentional: repetition across articles is the
// strongest signal the corpus gives us.
func importance(f model.Finding) float64 {
	confWeight := f.Confidence.Weight()
	freqWeight := math.Min(float64(f.Mentions)/3.0, 1.5)
	return 0.4*f.Score + 0.3*confWeight + 0.3*freqWeight
}
