package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ppiankov/gnosia/internal/model"
)

const systemPrompt = `You are an analyst extracting factual claims about a company from a news article. Respond with JSON only, no prose.`

// buildPrompt constructs the extraction prompt shared by all LLM providers.
func buildPrompt(req Request) string {
	return fmt.Sprintf(`Analyze this article about %s and extract claims about the company.

Article title: %s

Article content:
%s

Return a JSON object with exactly this shape:
{
  "description": {"text": "...", "score": 0.0-1.0, "confidence": "high|medium|low"} or null,
  "strengths": [{"text": "...", "score": 0.0-1.0, "confidence": "high|medium|low"}],
  "weaknesses": [{"text": "...", "score": 0.0-1.0, "confidence": "high|medium|low"}],
  "opportunities": [{"text": "...", "score": 0.0-1.0, "confidence": "high|medium|low"}]
}

Rules:
- "description" is a single neutral sentence describing what the company is and does, or null if the article has none.
- Each claim must be a standalone sentence grounded in the article text. Do not invent facts.
- "score" reflects how strongly the article supports the claim.
- Use empty arrays for categories with no claims.`, req.CompanyName, req.Title, req.Content)
}

// Wire format for LLM responses
type wireClaim struct {
	Text       string  `json:"text"`
	Score      float64 `json:"score"`
	Confidence string  `json:"confidence"`
}

type wireResult struct {
	Description   *wireClaim  `json:"description"`
	Strengths     []wireClaim `json:"strengths"`
	Weaknesses    []wireClaim `json:"weaknesses"`
	Opportunities []wireClaim `json:"opportunities"`
}

// parseResponse decodes an LLM response into a Result. Models sometimes wrap
// JSON in markdown fences or surrounding prose; both are stripped first.
func parseResponse(content string) (*Result, error) {
	content = cleanJSONResponse(content)

	var wire wireResult
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		return nil, fmt.Errorf("parse extraction response: %w", err)
	}

	result := &Result{
		Strengths:     toClaims(wire.Strengths, model.CategoryStrength),
		Weaknesses:    toClaims(wire.Weaknesses, model.CategoryWeakness),
		Opportunities: toClaims(wire.Opportunities, model.CategoryOpportunity),
	}

	if wire.Description != nil && strings.TrimSpace(wire.Description.Text) != "" {
		c := toClaim(*wire.Description, model.CategoryDescription)
		result.Description = &c
	}

	return result, nil
}

func toClaims(wire []wireClaim, category model.Category) []model.Claim {
	var claims []model.Claim
	for _, w := range wire {
		if strings.TrimSpace(w.Text) == "" {
			continue
		}
		claims = append(claims, toClaim(w, category))
	}
	return claims
}

func toClaim(w wireClaim, category model.Category) model.Claim {
	score := w.Score
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return model.Claim{
		Text:       strings.TrimSpace(w.Text),
		Score:      score,
		Confidence: model.Confidence(strings.ToLower(strings.TrimSpace(w.Confidence))),
		Category:   category,
	}
}

// cleanJSONResponse strips markdown fences and surrounding prose from a
// model response, leaving the outermost JSON object.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
