package summarize

import (
	"fmt"
	"math"

	"github.com/ppiankov/gnosia/internal/textutil"
)

// tfidfMatrix holds L2-normalized TF-IDF rows fit over one document's
// sentences. Freshly fit per call; vocabulary comes only from the document
// itself (stopwords excluded).
type tfidfMatrix struct {
	rows [][]float64
}

// fitTFIDF builds the matrix. Fitting fails on degenerate input: fewer than
// two sentences, or an empty vocabulary after stopword removal. Callers fall
// back to uniform scores.
func fitTFIDF(sentences []string) (*tfidfMatrix, error) {
	if len(sentences) < 2 {
		return nil, fmt.Errorf("need at least 2 sentences, have %d", len(sentences))
	}

	tokenized := make([][]string, len(sentences))
	vocab := make(map[string]int)
	for i, s := range sentences {
		tokenized[i] = textutil.ContentWords(s)
		for _, t := range tokenized[i] {
			if _, ok := vocab[t]; !ok {
				vocab[t] = len(vocab)
			}
		}
	}
	if len(vocab) == 0 {
		return nil, fmt.Errorf("empty vocabulary")
	}

	// Document frequency per term
	df := make([]int, len(vocab))
	for _, tokens := range tokenized {
		seen := make(map[int]bool)
		for _, t := range tokens {
			idx := vocab[t]
			if !seen[idx] {
				seen[idx] = true
				df[idx]++
			}
		}
	}

	// Smoothed IDF, then L2-normalized rows
	n := float64(len(sentences))
	idf := make([]float64, len(vocab))
	for i, d := range df {
		idf[i] = math.Log((1+n)/(1+float64(d))) + 1
	}

	rows := make([][]float64, len(sentences))
	for i, tokens := range tokenized {
		row := make([]float64, len(vocab))
		for _, t := range tokens {
			row[vocab[t]]++
		}
		var sumSq float64
		for j := range row {
			row[j] *= idf[j]
			sumSq += row[j] * row[j]
		}
		if sumSq > 0 {
			norm := math.Sqrt(sumSq)
			for j := range row {
				row[j] /= norm
			}
		}
		rows[i] = row
	}

	return &tfidfMatrix{rows: rows}, nil
}

// rowScores returns each sentence's TF-IDF row-sum normalized by the
// maximum row-sum. A degenerate all-zero matrix scores everything 1.0.
func (m *tfidfMatrix) rowScores() []float64 {
	sums := make([]float64, len(m.rows))
	maxSum := 0.0
	for i, row := range m.rows {
		for _, v := range row {
			sums[i] += v
		}
		if sums[i] > maxSum {
			maxSum = sums[i]
		}
	}

	if maxSum == 0 {
		return uniform(len(m.rows))
	}
	for i := range sums {
		sums[i] /= maxSum
	}
	return sums
}

// centrality returns each sentence's pairwise-cosine row-sum (self
// included) normalized by the maximum. Rows are already unit length, so
// cosine is a plain dot product.
func (m *tfidfMatrix) centrality() []float64 {
	n := len(m.rows)
	sums := make([]float64, n)
	maxSum := 0.0

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sums[i] += dot(m.rows[i], m.rows[j])
		}
		if sums[i] > maxSum {
			maxSum = sums[i]
		}
	}

	if maxSum == 0 {
		return uniform(n)
	}
	for i := range sums {
		sums[i] /= maxSum
	}
	return sums
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func uniform(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1.0
	}
	return out
}
