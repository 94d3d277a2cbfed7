package cluster

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/ppiankov/gnosia/internal/model"
)

// stubEmbedder returns fixed vectors per text, or a fixed error.
type stubEmbedder struct {
	vectors map[string][]float64
	err     error
}

func (s *stubEmbedder) Model() string { return "stub" }

func (s *stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float64, len(texts))
	for i, t := range texts {
		v, ok := s.vectors[t]
		if !ok {
			return nil, fmt.Errorf("no stub vector for %q", t)
		}
		out[i] = v
	}
	return out, nil
}

func TestClusterAndRank_IdenticalClaimsMergeIntoOneFinding(t *testing.T) {
	text := "Acme dominates the logistics market"
	embedder := &stubEmbedder{vectors: map[string][]float64{
		text: {1, 0},
	}}
	engine := NewEngine(embedder, 0.75)

	claims := []model.Claim{
		{Text: text, Score: 0.9, Confidence: model.ConfidenceHigh},
		{Text: text, Score: 0.8, Confidence: model.ConfidenceMedium},
	}

	findings := engine.ClusterAndRank(context.Background(), claims)

	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.Mentions != 2 {
		t.Errorf("Expected mentions=2, got %d", f.Mentions)
	}
	if math.Abs(f.Score-0.85) > 1e-9 {
		t.Errorf("Expected mean score 0.85, got %f", f.Score)
	}
	if f.Text != text {
		t.Errorf("Expected representative text '%s', got '%s'", text, f.Text)
	}
	if f.Confidence != model.ConfidenceHigh {
		t.Errorf("Expected confidence 'high' (first encountered on tie), got '%s'", f.Confidence)
	}
	if len(f.Variations) != 1 || f.Variations[0] != text {
		t.Errorf("Expected one variation holding the non-representative text, got %v", f.Variations)
	}
}

func TestClusterAndRank_ConfidenceTieBrokenByFirstEncountered(t *testing.T) {
	text := "Acme reported strong quarterly results"
	embedder := &stubEmbedder{vectors: map[string][]float64{
		text: {1, 0},
	}}
	engine := NewEngine(embedder, 0.75)

	claims := []model.Claim{
		{Text: text, Score: 0.8, Confidence: model.ConfidenceMedium},
		{Text: text, Score: 0.9, Confidence: model.ConfidenceHigh},
	}

	findings := engine.ClusterAndRank(context.Background(), claims)

	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(findings))
	}
	// medium and high both count 1; medium reached that count first.
	if findings[0].Confidence != model.ConfidenceMedium {
		t.Errorf("Expected tie broken toward first-encountered 'medium', got '%s'", findings[0].Confidence)
	}
	// Representative is still the higher-scored member.
	if findings[0].Text != text {
		t.Errorf("Expected representative '%s', got '%s'", text, findings[0].Text)
	}
}

func TestClusterAndRank_MentionsSumEqualsClaimCount(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float64{
		"claim a": {1, 0, 0},
		"claim b": {0, 1, 0},
		"claim c": {0, 0, 1},
	}}
	engine := NewEngine(embedder, 0.75)

	claims := []model.Claim{
		{Text: "claim a", Score: 0.5, Confidence: model.ConfidenceLow},
		{Text: "claim a", Score: 0.6, Confidence: model.ConfidenceLow},
		{Text: "claim b", Score: 0.7, Confidence: model.ConfidenceMedium},
		{Text: "claim c", Score: 0.8, Confidence: model.ConfidenceHigh},
		{Text: "claim c", Score: 0.4, Confidence: model.ConfidenceLow},
	}

	findings := engine.ClusterAndRank(context.Background(), claims)

	total := 0
	for _, f := range findings {
		total += f.Mentions
	}
	if total != len(claims) {
		t.Errorf("Expected mentions to sum to %d, got %d", len(claims), total)
	}
}

func TestClusterAndRank_SeedBasedNotTransitive(t *testing.T) {
	// near is similar to seed (0.8) and joins. far is similar to near
	// (0.96) but not to the seed (0.6), so it must NOT join: membership is
	// decided against the seed only.
	embedder := &stubEmbedder{vectors: map[string][]float64{
		"seed": {1, 0},
		"near": {0.8, 0.6},
		"far":  {0.6, 0.8},
	}}
	engine := NewEngine(embedder, 0.75)

	claims := []model.Claim{
		{Text: "seed", Score: 0.5, Confidence: model.ConfidenceMedium},
		{Text: "near", Score: 0.5, Confidence: model.ConfidenceMedium},
		{Text: "far", Score: 0.5, Confidence: model.ConfidenceMedium},
	}

	findings := engine.ClusterAndRank(context.Background(), claims)

	if len(findings) != 2 {
		t.Fatalf("Expected 2 findings (seed+near, far), got %d", len(findings))
	}

	var seedCluster, farCluster *model.Finding
	for i := range findings {
		switch findings[i].Mentions {
		case 2:
			seedCluster = &findings[i]
		case 1:
			farCluster = &findings[i]
		}
	}
	if seedCluster == nil || farCluster == nil {
		t.Fatalf("Expected one 2-member and one 1-member finding, got %+v", findings)
	}
	if farCluster.Text != "far" {
		t.Errorf("Expected 'far' isolated, got '%s'", farCluster.Text)
	}
}

func TestClusterAndRank_MeanWithinMemberBounds(t *testing.T) {
	text := "repeated claim about the same thing"
	embedder := &stubEmbedder{vectors: map[string][]float64{
		text: {0, 1},
	}}
	engine := NewEngine(embedder, 0.75)

	claims := []model.Claim{
		{Text: text, Score: 0.2, Confidence: model.ConfidenceLow},
		{Text: text, Score: 0.5, Confidence: model.ConfidenceLow},
		{Text: text, Score: 0.8, Confidence: model.ConfidenceLow},
	}

	findings := engine.ClusterAndRank(context.Background(), claims)

	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(findings))
	}
	if findings[0].Score < 0.2 || findings[0].Score > 0.8 {
		t.Errorf("Expected mean within [0.2, 0.8], got %f", findings[0].Score)
	}
	if math.Abs(findings[0].Score-0.5) > 1e-9 {
		t.Errorf("Expected mean 0.5, got %f", findings[0].Score)
	}
}

func TestClusterAndRank_ImportanceDescendingAndStable(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float64{
		"strong claim": {1, 0, 0},
		"tied one":     {0, 1, 0},
		"tied two":     {0, 0, 1},
	}}
	engine := NewEngine(embedder, 0.75)

	claims := []model.Claim{
		{Text: "tied one", Score: 0.5, Confidence: model.ConfidenceMedium},
		{Text: "tied two", Score: 0.5, Confidence: model.ConfidenceMedium},
		{Text: "strong claim", Score: 1.0, Confidence: model.ConfidenceHigh},
	}

	findings := engine.ClusterAndRank(context.Background(), claims)

	if len(findings) != 3 {
		t.Fatalf("Expected 3 findings, got %d", len(findings))
	}
	for i := 1; i < len(findings); i++ {
		if findings[i].Importance > findings[i-1].Importance {
			t.Errorf("Expected non-increasing importance, got %f before %f",
				findings[i-1].Importance, findings[i].Importance)
		}
	}
	if findings[0].Text != "strong claim" {
		t.Errorf("Expected 'strong claim' ranked first, got '%s'", findings[0].Text)
	}
	// The two tied findings keep their input order.
	if findings[1].Text != "tied one" || findings[2].Text != "tied two" {
		t.Errorf("Expected stable order for tied findings, got '%s' then '%s'",
			findings[1].Text, findings[2].Text)
	}
}

func TestClusterAndRank_ImportanceFormula(t *testing.T) {
	text := "heavily repeated finding"
	embedder := &stubEmbedder{vectors: map[string][]float64{
		text: {1, 0},
	}}
	engine := NewEngine(embedder, 0.75)

	// Five identical claims: frequency weight caps at 1.5.
	var claims []model.Claim
	for i := 0; i < 5; i++ {
		claims = append(claims, model.Claim{Text: text, Score: 1.0, Confidence: model.ConfidenceHigh})
	}

	findings := engine.ClusterAndRank(context.Background(), claims)

	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(findings))
	}
	// 0.4*1.0 + 0.3*1.0 + 0.3*1.5 = 1.15, above the nominal [0,1] range.
	if math.Abs(findings[0].Importance-1.15) > 1e-9 {
		t.Errorf("Expected importance 1.15, got %f", findings[0].Importance)
	}
}

func TestClusterAndRank_EmptyInput(t *testing.T) {
	engine := NewEngine(&stubEmbedder{}, 0.75)

	findings := engine.ClusterAndRank(context.Background(), nil)

	if findings == nil {
		t.Fatal("Expected empty slice, got nil")
	}
	if len(findings) != 0 {
		t.Errorf("Expected no findings, got %d", len(findings))
	}
}

func TestClusterAndRank_NilEmbedderYieldsSingletons(t *testing.T) {
	engine := NewEngine(nil, 0.75)

	claims := []model.Claim{
		{Text: "one", Score: 0.5, Confidence: model.ConfidenceLow},
		{Text: "one", Score: 0.5, Confidence: model.ConfidenceLow},
		{Text: "two", Score: 0.5, Confidence: model.ConfidenceLow},
	}

	findings := engine.ClusterAndRank(context.Background(), claims)

	if len(findings) != 3 {
		t.Fatalf("Expected 3 singleton findings without an embedder, got %d", len(findings))
	}
	for _, f := range findings {
		if f.Mentions != 1 {
			t.Errorf("Expected singleton mentions=1, got %d", f.Mentions)
		}
	}
}

func TestClusterAndRank_EmbedderFailureYieldsSingletons(t *testing.T) {
	engine := NewEngine(&stubEmbedder{err: fmt.Errorf("service down")}, 0.75)

	claims := []model.Claim{
		{Text: "alpha", Score: 0.7, Confidence: model.ConfidenceMedium},
		{Text: "beta", Score: 0.6, Confidence: model.ConfidenceLow},
	}

	findings := engine.ClusterAndRank(context.Background(), claims)

	if len(findings) != 2 {
		t.Fatalf("Expected clustering to degrade to singletons, got %d findings", len(findings))
	}
	total := 0
	for _, f := range findings {
		total += f.Mentions
	}
	if total != len(claims) {
		t.Errorf("Expected every claim accounted for, mentions sum %d", total)
	}
}

func TestClusterAndRank_UnknownConfidenceWeight(t *testing.T) {
	engine := NewEngine(nil, 0.75)

	claims := []model.Claim{
		{Text: "claim with odd label", Score: 1.0, Confidence: "certain"},
	}

	findings := engine.ClusterAndRank(context.Background(), claims)

	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(findings))
	}
	// Unknown labels weigh 0.5: 0.4*1.0 + 0.3*0.5 + 0.3*(1/3) = 0.65.
	if math.Abs(findings[0].Importance-0.65) > 1e-9 {
		t.Errorf("Expected importance 0.65 for unknown confidence, got %f", findings[0].Importance)
	}
}
