package fetch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/gnosia/internal/model"
	"github.com/ppiankov/gnosia/internal/textutil"
)

// LoadArticles reads articles from an offline file. JSON and CSV files may
// carry many articles; Markdown and plain-text files load as a single
// article titled after the file.
func LoadArticles(path string) ([]model.Article, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadJSON(path)
	case ".csv":
		return loadCSV(path)
	case ".md", ".markdown":
		return loadText(path, textutil.MarkdownToText)
	default:
		return loadText(path, textutil.CollapseWhitespace)
	}
}

// loadJSON accepts either a bare array of articles or an object with an
// "articles" field.
func loadJSON(path string) ([]model.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read articles file: %w", err)
	}

	var articles []model.Article
	if err := json.Unmarshal(data, &articles); err == nil {
		return articles, nil
	}

	var wrapper struct {
		Articles []model.Article `json:"articles"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("parse JSON articles: %w", err)
	}
	return wrapper.Articles, nil
}

func loadCSV(path string) ([]model.Article, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read articles file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse CSV articles: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse CSV articles: file is empty")
	}

	idx := make(map[string]int)
	for i, col := range records[0] {
		name := strings.ToLower(strings.TrimSpace(col))
		if _, exists := idx[name]; !exists {
			idx[name] = i
		}
	}
	titleIdx, hasTitle := idx["title"]
	contentIdx, hasContent := idx["content"]
	if !hasTitle || !hasContent {
		return nil, fmt.Errorf("CSV must have title and content columns, got %v", records[0])
	}

	articles := make([]model.Article, 0, len(records)-1)
	for _, rec := range records[1:] {
		a := model.Article{Title: rec[titleIdx], Content: rec[contentIdx]}
		if i, ok := idx["url"]; ok {
			a.URL = rec[i]
		}
		if i, ok := idx["source"]; ok {
			a.Source = rec[i]
		}
		articles = append(articles, a)
	}
	return articles, nil
}

func loadText(path string, normalize func(string) string) ([]model.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read articles file: %w", err)
	}
	return []model.Article{{
		Title:   titleFromFilename(path),
		Content: normalize(string(data)),
	}}, nil
}

func titleFromFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	return base
}
