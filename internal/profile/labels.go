package profile

import "strings"

// strengthRule maps trigger phrases to a display title. Rules are checked
// in order and the first match wins, so earlier rules own their phrases
// even when a later rule's phrase also appears.
type strengthRule struct {
	title    string
	keywords []string
}

// strengthRules is the fixed ordered labeling table. "Market Leadership"
// deliberately matches only market-qualified phrases so that plain
// "leadership" falls through to the management rule at the bottom.
var strengthRules = []strengthRule{
	{
		title:    "Market Leadership",
		keywords: []string{"market leader", "market leadership", "market share", "market position", "largest", "dominant"},
	},
	{
		title:    "Customer Base",
		keywords: []string{"customer", "subscriber", "user base", "client"},
	},
	{
		title:    "Network/Infrastructure",
		keywords: []string{"network", "infrastructure", "coverage", "footprint", "data center"},
	},
	{
		title:    "Financial Performance",
		keywords: []string{"revenue", "profit", "margin", "earnings", "financial", "cash flow"},
	},
	{
		title:    "Brand Recognition",
		keywords: []string{"brand", "reputation", "recognized", "trusted", "award"},
	},
	{
		title:    "Technology/Innovation",
		keywords: []string{"technology", "innovation", "innovative", "patent", "proprietary", "platform"},
	},
	{
		title:    "Strategic Partnerships",
		keywords: []string{"partnership", "alliance", "collaboration", "joint venture"},
	},
	{
		title:    "Leadership/Management",
		keywords: []string{"leadership", "management", "ceo", "founder", "executive"},
	},
}

// labelStrength prefixes a strength with its category title when one of the
// ordered rules matches (case-insensitive substring). Unmatched text passes
// through unchanged. Weaknesses and opportunities are never labeled.
func labelStrength(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range strengthRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.title + ": " + text
			}
		}
	}
	return text
}
