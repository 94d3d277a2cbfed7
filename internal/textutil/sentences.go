package textutil

import "strings"

// SplitSentences splits text into sentences on .!? followed by whitespace,
// keeping the terminator with its sentence. Abbreviations followed by a
// space ("U.S. officials") still split; callers filter the fragments by
// length and word count, which absorbs most of the noise.
func SplitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for i, r := range text {
		current.WriteRune(r)
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 >= len(text) || text[i+1] == ' ' || text[i+1] == '\t' {
			flush()
		}
	}
	flush()

	return sentences
}
