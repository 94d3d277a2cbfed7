package profile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ppiankov/gnosia/internal/model"
)

// OutreachContext condenses a profile into a short plain-text briefing for
// downstream message drafting. Extra sections carry caller-supplied items
// that arrive either as plain strings or structured records; the ClaimValue
// union normalizes both to displayable text.
type OutreachContext struct {
	Profile *model.Profile
	Extras  map[string][]model.ClaimValue
}

// sectionCap bounds each list in the briefing.
const sectionCap = 3

// Render produces the briefing text.
func (o *OutreachContext) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Company: %s\n", o.Profile.CompanyName)
	if o.Profile.Description != "" {
		fmt.Fprintf(&b, "About: %s\n", o.Profile.Description)
	}

	writeOutreachList(&b, "Key strengths", o.Profile.Strengths)
	writeOutreachList(&b, "Openings", o.Profile.Opportunities)

	names := make([]string, 0, len(o.Extras))
	for name := range o.Extras {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		values := o.Extras[name]
		texts := make([]string, 0, len(values))
		for _, v := range values {
			if t := v.DisplayText(); t != "" {
				texts = append(texts, t)
			}
		}
		writeOutreachList(&b, name, texts)
	}

	return b.String()
}

func writeOutreachList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	if len(items) > sectionCap {
		items = items[:sectionCap]
	}

	fmt.Fprintf(b, "%s:\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}
