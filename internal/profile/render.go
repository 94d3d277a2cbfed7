package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/gnosia/internal/model"
)

// FormatText renders a profile as a Markdown document. Empty sections are
// omitted entirely rather than rendered as empty headings.
func FormatText(p *model.Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", p.CompanyName)
	fmt.Fprintf(&b, "%s\n\n", p.Description)
	fmt.Fprintf(&b, "(Based on analysis of %d articles)\n", p.ArticlesAnalyzed)

	writeSection(&b, "Strengths", p.Strengths)
	writeSection(&b, "Weaknesses", p.Weaknesses)
	writeSection(&b, "Opportunities", p.Opportunities)

	return b.String()
}

func writeSection(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}

	fmt.Fprintf(b, "\n## %s\n\n", heading)
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
}

// Renderer writes profiles to files.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer. includeFooter controls the provenance
// line at the bottom of Markdown output.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the profile as indented JSON.
func (r *Renderer) RenderJSON(p *model.Profile, path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}
	return nil
}

// RenderMarkdown writes the profile as a Markdown document.
func (r *Renderer) RenderMarkdown(p *model.Profile, path string) error {
	var b strings.Builder
	b.WriteString(FormatText(p))
	if r.includeFooter {
		fmt.Fprintf(&b, "\n---\nGenerated by Gnosia at %s\n",
			p.GeneratedAt.Format(time.RFC3339))
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write Markdown report: %w", err)
	}
	return nil
}
