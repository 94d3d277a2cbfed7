package model

// Finding is the deduplicated, merged representation of one cluster of
// similar claims. A finding's Mentions always equals the size of the cluster
// it was merged from; Importance is zero until the ranking pass fills it in.
type Finding struct {
	Text       string     `json:"text"`                 // Best representative claim text
	Score      float64    `json:"score"`                // Arithmetic mean of cluster member scores
	Confidence Confidence `json:"confidence"`           // Most frequent confidence in the cluster
	Mentions   int        `json:"mentions"`             // Cluster size
	Variations []string   `json:"variations,omitempty"` // Non-representative member texts
	Importance float64    `json:"importance_score"`     // Populated by ranking
}

