package model

import "time"

// Profile is the aggregate output of profiling one company across a set of
// articles. It is built fresh per call and owned by the caller; nothing in
// the pipeline retains a reference after returning it.
type Profile struct {
	CompanyName      string    `json:"company_name"`
	ArticlesAnalyzed int       `json:"articles_analyzed"`
	Description      string    `json:"description"`
	Strengths        []string  `json:"strengths"`
	Weaknesses       []string  `json:"weaknesses"`
	Opportunities    []string  `json:"opportunities"`
	GeneratedAt      time.Time `json:"generated_at"`

	// Metadata reports per-category extraction counts such as
	// "strengths_total" and "strengths_unique". Observability only; it never
	// affects profile content.
	Metadata map[string]int `json:"metadata,omitempty"`

	// Details keeps the full ranked findings per category for callers that
	// need mention counts and variations (e.g., outreach context building).
	Details map[string][]Finding `json:"detailed_items,omitempty"`
}

// Article is one unit of input text about a company. Content may arrive as
// plain text, HTML, or Markdown; ingestion normalizes it to plain text
// before extraction. URL and Source are provenance only.
type Article struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url,omitempty"`
	Source  string `json:"source,omitempty"`
}
