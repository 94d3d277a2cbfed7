package profile

import (
	"strings"
	"testing"

	"github.com/ppiankov/gnosia/internal/model"
)

func TestFormatText_FullProfile(t *testing.T) {
	p := &model.Profile{
		CompanyName:      "Acme",
		ArticlesAnalyzed: 3,
		Description:      "Acme is a freight logistics company.",
		Strengths:        []string{"Market Leadership: Acme dominates regional freight"},
		Weaknesses:       []string{"High fuel cost exposure"},
		Opportunities:    []string{"Cold-chain expansion under review"},
	}

	out := FormatText(p)

	wantParts := []string{
		"# Acme\n",
		"Acme is a freight logistics company.\n",
		"(Based on analysis of 3 articles)\n",
		"## Strengths\n\n1. Market Leadership: Acme dominates regional freight\n",
		"## Weaknesses\n\n1. High fuel cost exposure\n",
		"## Opportunities\n\n1. Cold-chain expansion under review\n",
	}
	for _, part := range wantParts {
		if !strings.Contains(out, part) {
			t.Errorf("Expected output to contain %q, got:\n%s", part, out)
		}
	}
}

func TestFormatText_OmitsEmptySections(t *testing.T) {
	p := &model.Profile{
		CompanyName:      "Acme",
		ArticlesAnalyzed: 1,
		Description:      "Acme is a freight logistics company.",
		Strengths:        []string{"Strong brand"},
	}

	out := FormatText(p)

	if !strings.Contains(out, "## Strengths") {
		t.Error("Expected strengths section present")
	}
	if strings.Contains(out, "## Weaknesses") {
		t.Error("Expected empty weaknesses section omitted")
	}
	if strings.Contains(out, "## Opportunities") {
		t.Error("Expected empty opportunities section omitted")
	}
}

func TestFormatText_NumbersItems(t *testing.T) {
	p := &model.Profile{
		CompanyName: "Acme",
		Description: "desc",
		Strengths:   []string{"first", "second", "third"},
	}

	out := FormatText(p)

	for _, want := range []string{"1. first", "2. second", "3. third"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected numbered item %q in output", want)
		}
	}
}

func TestOutreachContext_Render(t *testing.T) {
	ctx := &OutreachContext{
		Profile: &model.Profile{
			CompanyName:   "Acme",
			Description:   "Acme is a freight logistics company.",
			Strengths:     []string{"s1", "s2", "s3", "s4"},
			Opportunities: []string{"o1"},
		},
		Extras: map[string][]model.ClaimValue{
			"Recent wins": {
				model.TextValue("Won the Nordics contract"),
				model.StructuredValue(map[string]any{"text": "Opened Hamburg hub"}),
			},
		},
	}

	out := ctx.Render()

	if !strings.Contains(out, "Company: Acme\n") {
		t.Error("Expected company line")
	}
	if !strings.Contains(out, "About: Acme is a freight logistics company.\n") {
		t.Error("Expected description line")
	}
	if !strings.Contains(out, "Key strengths:\n- s1\n- s2\n- s3\n") {
		t.Errorf("Expected strengths capped at 3, got:\n%s", out)
	}
	if strings.Contains(out, "s4") {
		t.Error("Expected fourth strength dropped by section cap")
	}
	if !strings.Contains(out, "Openings:\n- o1\n") {
		t.Error("Expected opportunities section")
	}
	if !strings.Contains(out, "Recent wins:\n- Won the Nordics contract\n- Opened Hamburg hub\n") {
		t.Errorf("Expected extras with both value kinds rendered, got:\n%s", out)
	}
}

func TestOutreachContext_ExtrasSortedAndSkipEmpty(t *testing.T) {
	ctx := &OutreachContext{
		Profile: &model.Profile{CompanyName: "Acme"},
		Extras: map[string][]model.ClaimValue{
			"Zebra":  {model.TextValue("z item")},
			"Apple":  {model.TextValue("a item")},
			"Hollow": {model.TextValue("")},
		},
	}

	out := ctx.Render()

	apple := strings.Index(out, "Apple:")
	zebra := strings.Index(out, "Zebra:")
	if apple == -1 || zebra == -1 || apple > zebra {
		t.Errorf("Expected extras rendered in sorted order, got:\n%s", out)
	}
	if strings.Contains(out, "Hollow") {
		t.Error("Expected section with no displayable text omitted")
	}
}

func TestClaimValue_DisplayText(t *testing.T) {
	tests := []struct {
		name string
		v    model.ClaimValue
		want string
	}{
		{"plain text", model.TextValue("hello"), "hello"},
		{"structured with text field", model.StructuredValue(map[string]any{"text": "from field"}), "from field"},
		{"structured without text field", model.StructuredValue(map[string]any{"note": "x"}), "map[note:x]"},
	}

	for _, tt := range tests {
		if got := tt.v.DisplayText(); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}
