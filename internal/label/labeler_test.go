package label

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
	calls   int
}

func (s *stubEmbedder) Model() string { return "stub" }

func (s *stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	s.calls++
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

const objective = "mobile money growth in emerging markets"

// unit2 builds a 2-d unit vector whose dot product with {1,0} is cos.
func unit2(cos float64) []float64 {
	return []float64{cos, math.Sqrt(1 - cos*cos)}
}

func newTestLabeler(t *testing.T, vectors map[string][]float64, cfg model.LabelerConfig) (*Labeler, *stubEmbedder) {
	t.Helper()
	vectors[objective] = []float64{1, 0}
	stub := &stubEmbedder{vectors: vectors}
	l, err := NewLabeler(stub, cfg)
	if err != nil {
		t.Fatalf("NewLabeler failed: %v", err)
	}
	return l, stub
}

func TestNewLabeler_RequiresEmbedder(t *testing.T) {
	if _, err := NewLabeler(nil, model.LabelerConfig{}); err == nil {
		t.Error("Expected error for nil embedder")
	}
}

func TestLabelCorpus_KeywordBoostCrossesDirectThreshold(t *testing.T) {
	// Raw cosine exactly 0.50: below the 0.55 direct threshold on its own.
	// The domain keyword "mobile wallet" adds 0.05, landing exactly on the
	// threshold, which classifies as directly relevant.
	row := Row{Title: "Mobile wallet adoption surges", Content: "Transaction volumes doubled this quarter."}
	l, _ := newTestLabeler(t, map[string][]float64{
		row.combined(): unit2(0.5),
	}, model.LabelerConfig{})

	results, err := l.LabelCorpus(context.Background(), []Row{row}, objective)
	if err != nil {
		t.Fatalf("LabelCorpus failed: %v", err)
	}

	if math.Abs(results[0].Score-0.55) > 1e-9 {
		t.Errorf("Expected boosted score 0.55, got %f", results[0].Score)
	}
	if results[0].Label != LabelDirect {
		t.Errorf("Expected %s at the threshold boundary, got %s", LabelDirect, results[0].Label)
	}
}

func TestLabelCorpus_Tiers(t *testing.T) {
	// Keyword-free rows so only the raw cosine drives classification.
	rows := []Row{
		{Title: "Quarterly results beat estimates", Content: "The company posted record numbers."},
		{Title: "New office opening", Content: "A regional branch was announced."},
		{Title: "Weather delays flights", Content: "Storms grounded several routes."},
	}
	l, _ := newTestLabeler(t, map[string][]float64{
		rows[0].combined(): unit2(0.9),
		rows[1].combined(): unit2(0.4),
		rows[2].combined(): unit2(0.1),
	}, model.LabelerConfig{})

	results, err := l.LabelCorpus(context.Background(), rows, objective)
	if err != nil {
		t.Fatalf("LabelCorpus failed: %v", err)
	}

	want := []Label{LabelDirect, LabelIndirect, LabelNotRelevant}
	for i, w := range want {
		if results[i].Label != w {
			t.Errorf("Row %d: expected %s, got %s (score %f)", i, w, results[i].Label, results[i].Score)
		}
	}
}

func TestLabelCorpus_BothBoostsApply(t *testing.T) {
	row := Row{Title: "Fintech expansion in Kenya", Content: "Agents now cover rural counties."}
	l, _ := newTestLabeler(t, map[string][]float64{
		row.combined(): unit2(0.5),
	}, model.LabelerConfig{})

	results, err := l.LabelCorpus(context.Background(), []Row{row}, objective)
	if err != nil {
		t.Fatalf("LabelCorpus failed: %v", err)
	}

	if math.Abs(results[0].Score-0.58) > 1e-9 {
		t.Errorf("Expected 0.5 + 0.05 + 0.03 = 0.58, got %f", results[0].Score)
	}
}

func TestLabelCorpus_BoostCappedAtOne(t *testing.T) {
	row := Row{Title: "Mobile money platform milestone", Content: "The service processed a billion transfers."}
	l, _ := newTestLabeler(t, map[string][]float64{
		row.combined(): unit2(0.99),
	}, model.LabelerConfig{})

	results, err := l.LabelCorpus(context.Background(), []Row{row}, objective)
	if err != nil {
		t.Fatalf("LabelCorpus failed: %v", err)
	}

	if results[0].Score > 1.0 {
		t.Errorf("Expected score capped at 1.0, got %f", results[0].Score)
	}
	if math.Abs(results[0].Score-1.0) > 1e-9 {
		t.Errorf("Expected 0.99 + 0.05 capped to 1.0, got %f", results[0].Score)
	}
}

func TestLabelCorpus_EmptyInput(t *testing.T) {
	stub := &stubEmbedder{vectors: map[string][]float64{}}
	l, err := NewLabeler(stub, model.LabelerConfig{})
	if err != nil {
		t.Fatalf("NewLabeler failed: %v", err)
	}

	results, err := l.LabelCorpus(context.Background(), nil, objective)
	if err != nil {
		t.Fatalf("LabelCorpus failed: %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("Expected empty non-nil result, got %v", results)
	}
	if stub.calls != 0 {
		t.Errorf("Expected embedder never called for empty input, got %d calls", stub.calls)
	}
}

func TestLabelCorpus_EmbedderErrorPropagates(t *testing.T) {
	stub := &stubEmbedder{err: fmt.Errorf("service down")}
	l, err := NewLabeler(stub, model.LabelerConfig{})
	if err != nil {
		t.Fatalf("NewLabeler failed: %v", err)
	}

	if _, err := l.LabelCorpus(context.Background(), []Row{{Title: "t", Content: "c"}}, objective); err == nil {
		t.Error("Expected error when embedding fails")
	}
}

func TestLabelCorpus_InvertedThresholdsNotCorrected(t *testing.T) {
	// Thresholds are taken as configured. With direct below indirect the
	// direct tier swallows the whole middle band.
	row := Row{Title: "Quarterly update", Content: "Steady performance reported."}
	l, _ := newTestLabeler(t, map[string][]float64{
		row.combined(): unit2(0.45),
	}, model.LabelerConfig{DirectThreshold: 0.35, IndirectThreshold: 0.55})

	results, err := l.LabelCorpus(context.Background(), []Row{row}, objective)
	if err != nil {
		t.Fatalf("LabelCorpus failed: %v", err)
	}

	if results[0].Label != LabelDirect {
		t.Errorf("Expected inverted thresholds to classify 0.45 as %s, got %s", LabelDirect, results[0].Label)
	}
}
