package fetch

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/ppiankov/gnosia/internal/model"
	"github.com/ppiankov/gnosia/internal/textutil"
)

// FetchFeed pulls an RSS/Atom feed and converts its items to articles.
// Item content is preferred over the (usually truncated) description and is
// stripped of markup. maxItems <= 0 keeps every item.
func FetchFeed(ctx context.Context, feedURL string, maxItems int) ([]model.Article, error) {
	feed, err := gofeed.NewParser().ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := feed.Items
	if maxItems > 0 && len(items) > maxItems {
		items = items[:maxItems]
	}

	articles := make([]model.Article, 0, len(items))
	for _, item := range items {
		body := item.Content
		if strings.TrimSpace(body) == "" {
			body = item.Description
		}

		articles = append(articles, model.Article{
			Title:   strings.TrimSpace(item.Title),
			Content: textutil.HTMLToText(body),
			URL:     item.Link,
			Source:  feed.Title,
		})
	}
	return articles, nil
}
