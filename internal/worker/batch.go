package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/gnosia/internal/fetch"
	"github.com/ppiankov/gnosia/internal/model"
)

// Profiler builds one company profile from its articles. Satisfied by
// profile.Synthesizer.
type Profiler interface {
	Aggregate(ctx context.Context, articles []model.Article, companyName string) *model.Profile
}

// ManifestEntry is one line of a batch manifest: a company and the path of
// its offline article file.
type ManifestEntry struct {
	Company      string
	ArticlesPath string
}

// ProfileJob profiles one company from an offline article file.
type ProfileJob struct {
	Entry    ManifestEntry
	Profiler Profiler
}

// Execute loads the articles and aggregates the profile.
func (j *ProfileJob) Execute(ctx context.Context) Result {
	articles, err := fetch.LoadArticles(j.Entry.ArticlesPath)
	if err != nil {
		return &ProfileResult{
			Company: j.Entry.Company,
			Err:     fmt.Errorf("load articles: %w", err),
		}
	}
	return &ProfileResult{
		Company: j.Entry.Company,
		Profile: j.Profiler.Aggregate(ctx, articles, j.Entry.Company),
	}
}

// ProfileResult is the outcome of one company's profile job.
type ProfileResult struct {
	Company string
	Profile *model.Profile
	Err     error
}

// GetError returns the job's error, if any.
func (r *ProfileResult) GetError() error {
	return r.Err
}

// BatchProcessor profiles many companies concurrently.
type BatchProcessor struct {
	profiler Profiler
	workers  int
}

// NewBatchProcessor creates a batch processor with the given concurrency.
func NewBatchProcessor(profiler Profiler, workers int) *BatchProcessor {
	return &BatchProcessor{profiler: profiler, workers: workers}
}

// ProcessManifest reads a manifest file and profiles every company in it.
func (b *BatchProcessor) ProcessManifest(ctx context.Context, manifestPath string) ([]*ProfileResult, error) {
	entries, err := ReadManifest(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return b.ProcessEntries(ctx, entries), nil
}

// ProcessEntries profiles the given companies concurrently. Results arrive
// in completion order, not manifest order.
func (b *BatchProcessor) ProcessEntries(ctx context.Context, entries []ManifestEntry) []*ProfileResult {
	if len(entries) == 0 {
		return []*ProfileResult{}
	}

	pool := NewPool(ctx, b.workers)
	pool.Start()

	go func() {
		defer pool.Close()
		for _, entry := range entries {
			pool.Submit(&ProfileJob{Entry: entry, Profiler: b.profiler})
		}
	}()

	results := make([]*ProfileResult, 0, len(entries))
	for result := range pool.Results() {
		results = append(results, result.(*ProfileResult))
	}
	return results
}

// ReadManifest parses a batch manifest. Each line is
// "company name,articles-file"; blank lines and # comments are skipped and
// repeated company names keep only their first entry.
func ReadManifest(path string) ([]ManifestEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer func() { _ = file.Close() }()

	var entries []ManifestEntry
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		company, articlesPath, ok := strings.Cut(line, ",")
		company = strings.TrimSpace(company)
		articlesPath = strings.TrimSpace(articlesPath)
		if !ok || company == "" || articlesPath == "" {
			return nil, fmt.Errorf("manifest line %d: want \"company,articles-file\", got %q", lineNo, line)
		}

		if seen[company] {
			continue
		}
		seen[company] = true
		entries = append(entries, ManifestEntry{Company: company, ArticlesPath: articlesPath})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan manifest: %w", err)
	}
	return entries, nil
}
