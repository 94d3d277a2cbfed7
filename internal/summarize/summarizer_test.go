package summarize

import (
	"strings"
	"testing"
	"unicode"
)

func TestSummarize_EmptyInput(t *testing.T) {
	s := New(Options{})

	if got := s.Summarize("", ""); got != "" {
		t.Errorf("Expected empty summary for empty text, got '%s'", got)
	}
	if got := s.Summarize("   \n\t  ", "title"); got != "" {
		t.Errorf("Expected empty summary for whitespace text, got '%s'", got)
	}
	if got := s.Summarize("https://example.com/only-a-link", ""); got != "" {
		t.Errorf("Expected empty summary for URL-only text, got '%s'", got)
	}
}

func TestSummarize_ShortDocumentPicksOneSentence(t *testing.T) {
	s := New(Options{})

	// Under 50 words, so the derived target is a single sentence.
	text := "The company reported strong revenue growth this quarter. " +
		"Management credited the new product line for the gains. " +
		"Analysts expect continued momentum through next year."

	got := s.Summarize(text, "")

	if got == "" {
		t.Fatal("Expected non-empty summary")
	}

	// Exactly one source sentence should survive selection.
	core := strings.ToLower(strings.TrimSuffix(got, "."))
	matches := 0
	for _, sentence := range []string{
		"the company reported strong revenue growth this quarter",
		"management credited the new product line for the gains",
		"analysts expect continued momentum through next year",
	} {
		if core == sentence {
			matches++
		}
	}
	if matches != 1 {
		t.Errorf("Expected summary to be exactly one source sentence, got '%s'", got)
	}
}

func TestSummarize_RespectsMaxSentences(t *testing.T) {
	s := New(Options{MaxSentences: 2})

	sentences := []string{
		"The logistics firm expanded into fourteen new regional markets this year",
		"Quarterly revenue climbed well past every internal forecast the board had set",
		"A new distribution hub outside Rotterdam cut delivery times significantly",
		"Hiring accelerated across engineering and operations despite wage pressure",
		"Competitors responded by slashing prices across their core shipping products",
		"Regulators in two countries opened reviews of the pricing changes",
	}
	text := strings.Join(sentences, ". ") + "."

	got := s.Summarize(text, "")

	if got == "" {
		t.Fatal("Expected non-empty summary")
	}
	appeared := 0
	for _, sentence := range sentences {
		if strings.Contains(strings.ToLower(got), strings.ToLower(sentence)) {
			appeared++
		}
	}
	if appeared > 2 {
		t.Errorf("Expected at most 2 sentences selected, found %d in '%s'", appeared, got)
	}
	if appeared == 0 {
		t.Errorf("Expected source sentences in summary, got '%s'", got)
	}
}

func TestSummarize_DiversityGateSkipsNearDuplicates(t *testing.T) {
	s := New(Options{MaxSentences: 2})

	text := "The company reported record revenue growth in the third quarter of the fiscal year. " +
		"The company reported record revenue growth in the fourth quarter of the fiscal year. " +
		"Analysts remain cautious about rising operational costs and currency headwinds."

	got := strings.ToLower(s.Summarize(text, ""))

	if got == "" {
		t.Fatal("Expected non-empty summary")
	}
	if !strings.Contains(got, "cautious") {
		t.Errorf("Expected the distinct sentence selected over a near-duplicate, got '%s'", got)
	}
	if strings.Contains(got, "third quarter") && strings.Contains(got, "fourth quarter") {
		t.Errorf("Expected near-duplicate sentences not selected together, got '%s'", got)
	}
}

func TestSummarize_SelectionStaysDiverse(t *testing.T) {
	s := New(Options{MaxSentences: 3})

	text := "Acme expanded aggressively into the European freight market last spring. " +
		"Acme expanded aggressively into the European freight market last summer. " +
		"Acme expanded aggressively into the European freight market last autumn. " +
		"Profit margins narrowed as fuel costs rose across the industry. " +
		"The chief executive announced a multi-year automation investment program."

	got := s.Summarize(text, "")
	if got == "" {
		t.Fatal("Expected non-empty summary")
	}

	lower := strings.ToLower(got)
	seasons := 0
	for _, season := range []string{"spring", "summer", "autumn"} {
		if strings.Contains(lower, season) {
			seasons++
		}
	}
	if seasons > 1 {
		t.Errorf("Expected at most one of the near-duplicate sentences, got %d in '%s'", seasons, got)
	}
}

func TestSummarize_JoinsAllWhenFewerThanTarget(t *testing.T) {
	s := New(Options{MaxSentences: 5})

	text := "the company doubled its engineering headcount this year. " +
		"Revenue from the new platform exceeded early projections."

	got := s.Summarize(text, "")

	lower := strings.ToLower(got)
	first := strings.Index(lower, "doubled its engineering")
	second := strings.Index(lower, "exceeded early projections")
	if first < 0 || second < 0 {
		t.Fatalf("Expected both sentences kept, got '%s'", got)
	}
	if first > second {
		t.Errorf("Expected source order preserved, got '%s'", got)
	}
}

func TestSummarize_CapitalizedAndTerminated(t *testing.T) {
	s := New(Options{})

	got := s.Summarize("the quiet launch still drew thousands of early sign-ups from developers", "")

	if got == "" {
		t.Fatal("Expected non-empty summary")
	}
	runes := []rune(got)
	if !unicode.IsUpper(runes[0]) {
		t.Errorf("Expected capitalized first character, got '%s'", got)
	}
	last := got[len(got)-1]
	if last != '.' && last != '!' && last != '?' {
		t.Errorf("Expected terminated summary, got '%s'", got)
	}
}

func TestSummarize_FiltersBoilerplate(t *testing.T) {
	s := New(Options{})

	text := "Click here to subscribe to our premium newsletter for more stories. " +
		"The startup closed a major funding round led by two growth funds."

	got := strings.ToLower(s.Summarize(text, ""))

	if strings.Contains(got, "subscribe") || strings.Contains(got, "click here") {
		t.Errorf("Expected boilerplate filtered out, got '%s'", got)
	}
	if !strings.Contains(got, "funding round") {
		t.Errorf("Expected the real sentence kept, got '%s'", got)
	}
}

func TestSummarize_NeverEmptyWhenValidSentenceExists(t *testing.T) {
	s := New(Options{})

	// One valid sentence among fragments that fail the filters.
	text := "No. Tiny bit! The acquisition closed after months of regulatory review. Ok?"

	got := s.Summarize(text, "")

	if got == "" {
		t.Fatal("Expected non-empty summary when a valid sentence exists")
	}
	if !strings.Contains(strings.ToLower(got), "regulatory review") {
		t.Errorf("Expected the valid sentence selected, got '%s'", got)
	}
}

func TestSummarize_TitleSteersSelection(t *testing.T) {
	s := New(Options{MaxSentences: 1})

	// The first two sentences share the top position score, so only title
	// overlap separates them.
	text := "The weather near the coast stayed mild through the week. " +
		"Satellite broadband coverage reached rural communities across the north. " +
		"Cafeteria menus rotated through four seasonal themes during the quarter. " +
		"Local officials praised the program without reservation at the briefing."

	withTitle := strings.ToLower(s.Summarize(text, "Satellite broadband coverage reached rural communities"))

	if !strings.Contains(withTitle, "satellite broadband") {
		t.Errorf("Expected title overlap to pull its sentence into the summary, got '%s'", withTitle)
	}
}

func TestDeriveTarget(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{10, 1},
		{49, 1},
		{50, 2},
		{149, 2},
		{150, 3},
		{299, 3},
		{300, 2}, // formula re-derives above 300 words: round(300*0.15/20) = 2
		{400, 3},
		{600, 4},
		{5000, 4},
	}

	for _, tt := range tests {
		if got := deriveTarget(tt.words); got != tt.want {
			t.Errorf("deriveTarget(%d) = %d, want %d", tt.words, got, tt.want)
		}
	}
}

func TestPositionScore(t *testing.T) {
	tests := []struct {
		i, n int
		want float64
	}{
		{0, 5, 1.0},
		{1, 5, 1.0},
		{4, 5, 0.8},
		{2, 5, 0.5},
		{1, 2, 1.0}, // first-two rule wins over last-sentence rule
	}

	for _, tt := range tests {
		if got := positionScore(tt.i, tt.n); got != tt.want {
			t.Errorf("positionScore(%d, %d) = %f, want %f", tt.i, tt.n, got, tt.want)
		}
	}
}

func TestNumericalScore_Saturates(t *testing.T) {
	if got := numericalScore("plain words only here"); got != 0 {
		t.Errorf("Expected 0 for no figures, got %f", got)
	}
	if got := numericalScore("revenue hit $2.3 billion, up 45% from 2024 across 12 regions"); got != 1.0 {
		t.Errorf("Expected saturation at 1.0, got %f", got)
	}
	one := numericalScore("the team grew to 40 people")
	if one <= 0 || one > 1 {
		t.Errorf("Expected partial score in (0,1], got %f", one)
	}
}

func TestEntityScore_SkipsFirstWordAndStopwords(t *testing.T) {
	// "The" leads the sentence, "The" mid-sentence is a stopword; only
	// "Rotterdam" and "Acme" count.
	score := entityScore("The shipment reached Rotterdam before The Acme deadline", 8)

	want := 2.0 / 8.0
	if score != want {
		t.Errorf("Expected %f, got %f", want, score)
	}
}
