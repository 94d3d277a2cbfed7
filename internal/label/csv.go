package label

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CSVReport summarizes one labeling run for the CLI summary line.
type CSVReport struct {
	OutputPath string
	Total      int
	Counts     map[Label]int
}

// Summary renders the one-line label-count report.
func (r *CSVReport) Summary() string {
	return fmt.Sprintf("%d rows labeled: %d %s, %d %s, %d %s",
		r.Total,
		r.Counts[LabelDirect], LabelDirect,
		r.Counts[LabelIndirect], LabelIndirect,
		r.Counts[LabelNotRelevant], LabelNotRelevant)
}

// DefaultOutputPath derives the output file next to the input:
// corpus.csv becomes corpus_labeled.csv.
func DefaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	if ext == "" {
		ext = ".csv"
	}
	return base + "_labeled" + ext
}

// ProcessCSV labels every row of the input CSV against the objective and
// writes the same rows with label and semantic_score columns appended. An
// empty outputPath defaults next to the input. Missing file or missing
// title/content columns fail immediately; nothing is written on error.
func (l *Labeler) ProcessCSV(ctx context.Context, inputPath, outputPath, objective string) (*CSVReport, error) {
	header, records, titleIdx, contentIdx, err := readCorpus(inputPath)
	if err != nil {
		return nil, err
	}
	if outputPath == "" {
		outputPath = DefaultOutputPath(inputPath)
	}

	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = Row{Title: rec[titleIdx], Content: rec[contentIdx]}
	}

	results, err := l.LabelCorpus(ctx, rows, objective)
	if err != nil {
		return nil, err
	}

	if err := writeLabeled(outputPath, header, records, results); err != nil {
		return nil, err
	}

	report := &CSVReport{
		OutputPath: outputPath,
		Total:      len(results),
		Counts:     make(map[Label]int),
	}
	for _, res := range results {
		report.Counts[res.Label]++
	}
	return report, nil
}

// readCorpus loads the whole CSV. Batch labeling needs every row in memory
// anyway, so there is no point streaming.
func readCorpus(path string) (header []string, records [][]string, titleIdx, contentIdx int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, 0, 0, fmt.Errorf("opening CSV: %w", err)
	}
	defer f.Close()

	all, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, 0, 0, fmt.Errorf("reading CSV: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, 0, 0, fmt.Errorf("reading CSV: file is empty")
	}

	header = all[0]
	titleIdx, contentIdx = -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "title":
			if titleIdx == -1 {
				titleIdx = i
			}
		case "content":
			if contentIdx == -1 {
				contentIdx = i
			}
		}
	}
	if titleIdx == -1 || contentIdx == -1 {
		return nil, nil, 0, 0, fmt.Errorf("CSV must have title and content columns, got %v", header)
	}
	return header, all[1:], titleIdx, contentIdx, nil
}

func writeLabeled(path string, header []string, records [][]string, results []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	out := append(append([]string{}, header...), "label", "semantic_score")
	if err := w.Write(out); err != nil {
		return fmt.Errorf("writing output CSV: %w", err)
	}
	for i, rec := range records {
		out = append(append([]string{}, rec...),
			string(results[i].Label),
			strconv.FormatFloat(results[i].Score, 'f', 4, 64))
		if err := w.Write(out); err != nil {
			return fmt.Errorf("writing output CSV: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing output CSV: %w", err)
	}
	return nil
}
