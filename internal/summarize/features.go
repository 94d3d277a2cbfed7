package summarize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/ppiankov/gnosia/internal/textutil"
)

// Feature weights, tuned so position and title overlap dominate while the
// lexical signals nudge. They sum to 1.0.
const (
	weightPosition   = 0.25
	weightTitle      = 0.30
	weightTFIDF      = 0.10
	weightKeyword    = 0.12
	weightLength     = 0.08
	weightEntity     = 0.08
	weightNumerical  = 0.05
	weightCentrality = 0.02
)

// idealSentenceWords is the word count at which length_score peaks.
const idealSentenceWords = 20

// numericalRe matches figures worth surfacing in a summary: currency
// amounts, percentages, plain numbers and magnitude words.
var numericalRe = regexp.MustCompile(`\$\d[\d,]*(?:\.\d+)?|\d+(?:\.\d+)?%|\b\d[\d,]*(?:\.\d+)?\b|\b(?:million|billion|trillion|percent)\b`)

// scored pairs a sentence with its composite feature score.
type scored struct {
	index int
	text  string
	score float64
}

// scoreSentences computes the composite score for every sentence. The
// TF-IDF dependent features degrade to uniform 1.0 when fitting fails
// (single sentence, all-stopword vocabulary).
func scoreSentences(sentences []string, title string, keywords map[string]bool) []scored {
	n := len(sentences)

	tfidfScores := uniform(n)
	centralityScores := uniform(n)
	if matrix, err := fitTFIDF(sentences); err == nil {
		tfidfScores = matrix.rowScores()
		centralityScores = matrix.centrality()
	}

	maxWords := 0
	wordCounts := make([]int, n)
	for i, s := range sentences {
		wordCounts[i] = len(textutil.Words(s))
		if wordCounts[i] > maxWords {
			maxWords = wordCounts[i]
		}
	}

	titleTokens := textutil.TokenSet(title)

	out := make([]scored, n)
	for i, s := range sentences {
		composite := weightLength*lengthScore(wordCounts[i], maxWords) +
			weightPosition*positionScore(i, n) +
			weightTitle*titleSimilarity(s, titleTokens) +
			weightTFIDF*tfidfScores[i] +
			weightKeyword*keywordDensity(s, wordCounts[i], keywords) +
			weightEntity*entityScore(s, wordCounts[i]) +
			weightNumerical*numericalScore(s) +
			weightCentrality*centralityScores[i]

		out[i] = scored{index: i, text: s, score: composite}
	}

	return out
}

// lengthScore peaks at the ideal word count and falls off linearly,
// scaled by the document's longest sentence. Deliberately unclamped: a
// sentence much longer than ideal in a document of short sentences can go
// negative, which just buries it in the ranking.
func lengthScore(words, maxWords int) float64 {
	if maxWords == 0 {
		return 0
	}
	diff := float64(words - idealSentenceWords)
	if diff < 0 {
		diff = -diff
	}
	return 1 - diff/float64(maxWords)
}

// positionScore favors the lede: first two sentences 1.0, last sentence
// 0.8, everything else 0.5. The first-two rule wins when a document has
// only two sentences.
func positionScore(i, n int) float64 {
	if i <= 1 {
		return 1.0
	}
	if i == n-1 {
		return 0.8
	}
	return 0.5
}

// titleSimilarity is token overlap with the title divided by the title's
// token count. Zero when there is no title.
func titleSimilarity(sentence string, titleTokens map[string]bool) float64 {
	if len(titleTokens) == 0 {
		return 0
	}
	overlap := 0
	for t := range textutil.TokenSet(sentence) {
		if titleTokens[t] {
			overlap++
		}
	}
	return float64(overlap) / float64(len(titleTokens))
}

// keywordDensity is the share of sentence tokens that are domain keywords.
func keywordDensity(sentence string, words int, keywords map[string]bool) float64 {
	if words == 0 {
		return 0
	}
	hits := 0
	for _, t := range textutil.Tokenize(sentence) {
		if keywords[t] {
			hits++
		}
	}
	return float64(hits) / float64(words)
}

// entityScore counts capitalized non-first, non-stopword words relative to
// sentence length. A crude proxy for named entities, not real NER.
func entityScore(sentence string, words int) float64 {
	if words == 0 {
		return 0
	}
	fields := textutil.Words(sentence)
	count := 0
	for i, w := range fields {
		if i == 0 {
			continue
		}
		r := []rune(w)
		if len(r) == 0 || !unicode.IsUpper(r[0]) {
			continue
		}
		if textutil.IsStopword(strings.ToLower(w)) {
			continue
		}
		count++
	}
	return float64(count) / float64(words)
}

// numericalScore saturates at three figures per sentence.
func numericalScore(sentence string) float64 {
	matches := numericalRe.FindAllString(strings.ToLower(sentence), -1)
	score := float64(len(matches)) / 3.0
	if score > 1.0 {
		return 1.0
	}
	return score
}
