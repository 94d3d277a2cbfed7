// Package textutil holds the text normalization and tokenization helpers
// shared by the summarizer, the claim clustering pipeline and the article
// loaders. Everything here is pure string work with no I/O.
package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	urlRe        = regexp.MustCompile(`https?://\S+|www\.\S+`)

	// Characters allowed to survive cleaning: word chars, whitespace and
	// the punctuation that matters for sentence splitting and money/percent
	// figures. Everything else (emoji, smart quotes, markup leftovers) goes.
	disallowedRe = regexp.MustCompile(`[^\w\s.,!?;:\-$%]`)
)

// CollapseWhitespace replaces runs of whitespace with single spaces and
// trims the ends.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// StripURLs removes http(s) and www links.
func StripURLs(s string) string {
	return urlRe.ReplaceAllString(s, " ")
}

// Clean normalizes raw article text for analysis: collapses whitespace,
// drops URLs, then removes characters outside the whitelist.
func Clean(s string) string {
	s = CollapseWhitespace(s)
	s = StripURLs(s)
	s = disallowedRe.ReplaceAllString(s, "")
	return CollapseWhitespace(s)
}

// CapitalizeFirst upper-cases the first rune of s.
func CapitalizeFirst(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}

// EnsureTerminated appends a period unless s already ends with a sentence
// terminator.
func EnsureTerminated(s string) string {
	if s == "" {
		return s
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
		return s
	}
	return s + "."
}
