package model

import "fmt"

// Claim represents one atomic assertion about a company extracted from a
// single article. Claims are immutable once created; the clustering engine
// reads them but never mutates them.
type Claim struct {
	Text       string     `json:"text"`       // The claim text itself
	Score      float64    `json:"score"`      // Raw extraction score in [0,1]
	Confidence Confidence `json:"confidence"` // Categorical extraction confidence
	Category   Category   `json:"category"`   // Which profile section the claim belongs to
}

// Confidence is the categorical confidence assigned by the extractor.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Weight converts a confidence label to its scoring weight. Unrecognized
// labels (including empty) fall back to the low weight instead of failing.
func (c Confidence) Weight() float64 {
	switch c {
	case ConfidenceHigh:
		return 1.0
	case ConfidenceMedium:
		return 0.8
	case ConfidenceLow:
		return 0.5
	default:
		return 0.5
	}
}

// Category classifies the nature of the claim.
type Category string

const (
	CategoryDescription Category = "description"
	CategoryStrength    Category = "strength"
	CategoryWeakness    Category = "weakness"
	CategoryOpportunity Category = "opportunity"
)

// ClaimValue is a tagged union for claim-shaped values that arrive either as
// plain text or as structured records (e.g., when outreach context is built
// from mixed upstream payloads). Exactly one arm is set.
type ClaimValue struct {
	Text       string
	Structured map[string]any
}

// TextValue wraps a plain-text claim value.
func TextValue(s string) ClaimValue {
	return ClaimValue{Text: s}
}

// StructuredValue wraps a structured claim record.
func StructuredValue(fields map[string]any) ClaimValue {
	return ClaimValue{Structured: fields}
}

// DisplayText extracts the displayable text from either arm. Structured
// records are probed for a "text" field first, then coerced with %v so that
// malformed payloads still render something rather than failing.
func (v ClaimValue) DisplayText() string {
	if v.Structured == nil {
		return v.Text
	}
	if t, ok := v.Structured["text"].(string); ok {
		return t
	}
	return fmt.Sprintf("%v", v.Structured)
}
