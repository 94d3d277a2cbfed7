// Package summarize implements the extractive summarizer: pick the few
// sentences that carry a document, preferring the lede, title overlap and
// concrete figures, while keeping the selection non-redundant.
package summarize

import (
	"math"
	"sort"
	"strings"

	"github.com/ppiankov/gnosia/internal/textutil"
)

// Sentence filter bounds, in characters and words.
const (
	minSentenceLen      = 15
	maxSentenceLen      = 150
	minSentenceWords    = 3
	minContentWords     = 2
	diversityThreshold  = 0.7
	candidateMultiplier = 2
)

// Options configures a Summarizer.
type Options struct {
	// Domain selects the keyword set for keyword_density ("general",
	// "technology", "finance", "healthcare"). Empty means "general".
	Domain string

	// MaxSentences fixes the summary length. Zero derives it from the
	// document's word count.
	MaxSentences int
}

// Summarizer extracts short summaries from single documents. Stateless per
// call and safe for concurrent use.
type Summarizer struct {
	keywords     map[string]bool
	maxSentences int
}

// New creates a Summarizer.
func New(opts Options) *Summarizer {
	return &Summarizer{
		keywords:     keywordsForDomain(opts.Domain),
		maxSentences: opts.MaxSentences,
	}
}

// Summarize returns an extractive summary of text. The title, when present,
// steers selection toward sentences that overlap it. Returns "" when the
// document yields no valid sentences.
func (s *Summarizer) Summarize(text, title string) string {
	cleaned := textutil.Clean(text)
	if cleaned == "" {
		return ""
	}

	sentences := s.validSentences(cleaned)
	if len(sentences) == 0 {
		return ""
	}

	target := s.maxSentences
	if target <= 0 {
		target = deriveTarget(len(textutil.Words(cleaned)))
	}

	// Short documents skip scoring: everything valid goes in.
	if len(sentences) <= target {
		return assemble(sentences)
	}

	ranked := scoreSentences(sentences, title, s.keywords)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	selected := selectDiverse(ranked, target)

	// Restore source order before assembly.
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].index < selected[j].index
	})
	texts := make([]string, len(selected))
	for i, sc := range selected {
		texts[i] = sc.text
	}
	return assemble(texts)
}

// validSentences splits the cleaned text and keeps sentences that look like
// article prose: mid-range length, at least a few words, enough content
// words, and no boilerplate.
func (s *Summarizer) validSentences(cleaned string) []string {
	var out []string
	for _, sentence := range textutil.SplitSentences(cleaned) {
		if len(sentence) < minSentenceLen || len(sentence) > maxSentenceLen {
			continue
		}
		if len(textutil.Words(sentence)) < minSentenceWords {
			continue
		}
		if !isValidSentence(sentence) {
			continue
		}
		out = append(out, sentence)
	}
	return out
}

func isValidSentence(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, phrase := range boilerplatePhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	return len(textutil.ContentWords(sentence)) >= minContentWords
}

// deriveTarget maps document length to summary length: one sentence for
// snippets, up to four for long articles.
func deriveTarget(wordCount int) int {
	switch {
	case wordCount < 50:
		return 1
	case wordCount < 150:
		return 2
	case wordCount < 300:
		return 3
	}

	t := int(math.Round(float64(wordCount) * 0.15 / 20.0))
	if t < 2 {
		t = 2
	}
	if t > 4 {
		t = 4
	}
	return t
}

// selectDiverse takes the top-ranked sentence unconditionally, then walks
// the next ranks (up to 2x target) accepting only candidates whose word
// overlap with every already-selected sentence stays below the diversity
// threshold.
func selectDiverse(ranked []scored, target int) []scored {
	selected := []scored{ranked[0]}

	limit := candidateMultiplier * target
	if limit > len(ranked) {
		limit = len(ranked)
	}

	for i := 1; i < limit && len(selected) < target; i++ {
		candidate := ranked[i]
		redundant := false
		for _, chosen := range selected {
			if textutil.JaccardWords(candidate.text, chosen.text) >= diversityThreshold {
				redundant = true
				break
			}
		}
		if !redundant {
			selected = append(selected, candidate)
		}
	}

	return selected
}

// assemble joins sentences in order, tidies whitespace, capitalizes the
// first character and terminates the summary.
func assemble(sentences []string) string {
	joined := textutil.CollapseWhitespace(strings.Join(sentences, " "))
	if joined == "" {
		return ""
	}
	return textutil.EnsureTerminated(textutil.CapitalizeFirst(joined))
}
