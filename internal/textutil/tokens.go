package textutil

import (
	"regexp"
	"strings"
)

var wordRe = regexp.MustCompile(`[a-zA-Z0-9$%]+(?:[-'][a-zA-Z0-9]+)*`)

// stopwords is the shared English stopword set. Process-lifetime
// configuration; never mutated after init.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "been": true, "but": true, "by": true, "can": true,
	"could": true, "did": true, "do": true, "does": true, "for": true,
	"from": true, "had": true, "has": true, "have": true, "he": true,
	"her": true, "his": true, "i": true, "if": true, "in": true,
	"into": true, "is": true, "it": true, "its": true, "may": true,
	"might": true, "more": true, "most": true, "not": true, "of": true,
	"on": true, "or": true, "our": true, "she": true, "should": true,
	"so": true, "some": true, "such": true, "than": true, "that": true,
	"the": true, "their": true, "them": true, "then": true, "there": true,
	"these": true, "they": true, "this": true, "those": true, "to": true,
	"was": true, "we": true, "were": true, "what": true, "when": true,
	"where": true, "which": true, "who": true, "will": true, "with": true,
	"would": true, "you": true, "your": true,
}

// IsStopword reports whether the lowercased token is an English stopword.
func IsStopword(token string) bool {
	return stopwords[strings.ToLower(token)]
}

// Tokenize lowercases s and returns its word tokens. Hyphenated words and
// contractions stay single tokens ("mobile-first", "company's").
func Tokenize(s string) []string {
	return wordRe.FindAllString(strings.ToLower(s), -1)
}

// Words splits s on whitespace without lowercasing. Used where original
// casing matters, such as the capitalization-based entity heuristic.
func Words(s string) []string {
	return strings.Fields(s)
}

// ContentWords returns the tokens of s with stopwords removed.
func ContentWords(s string) []string {
	tokens := Tokenize(s)
	kept := tokens[:0]
	for _, t := range tokens {
		if !stopwords[t] {
			kept = append(kept, t)
		}
	}
	return kept
}

// TokenSet returns the unique lowercased tokens of s.
func TokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range Tokenize(s) {
		set[t] = true
	}
	return set
}

// JaccardWords computes word-level Jaccard similarity between two strings:
// |intersection| / |union| over unique lowercased tokens. Two empty token
// sets count as identical.
func JaccardWords(a, b string) float64 {
	setA := TokenSet(a)
	setB := TokenSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}

	intersection := 0
	for t := range setA {
		if setB[t] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
