// Package fetch acquires articles for profiling: live pages over HTTP,
// RSS/Atom feeds, and offline article files. Fetched content is normalized
// to plain text before it reaches extraction.
package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ppiankov/gnosia/internal/model"
	"github.com/ppiankov/gnosia/internal/textutil"
	"github.com/ppiankov/gnosia/internal/util"
)

const (
	maxFetchAttempts = 3
	retryBaseDelay   = 500 * time.Millisecond
	defaultTimeout   = 30 * time.Second
	defaultMaxBytes  = 2 << 20
)

// fetchSleepFunc is swapped out in tests to avoid real backoff sleeps.
var fetchSleepFunc = time.Sleep

// Fetcher retrieves single pages politely: robots.txt is consulted, per-host
// rate limits are respected, bodies are size-capped, and transient upstream
// failures are retried with linear backoff.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *Limiter
}

// NewFetcher creates a Fetcher from the HTTP and rate-limit configuration.
func NewFetcher(httpCfg model.HTTPConfig, rateCfg model.RateLimitingConfig) *Fetcher {
	timeout := httpCfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxBytes := httpCfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}

	transport := &http.Transport{
		Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
	}
	if httpCfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: httpCfg.UserAgent,
		maxBytes:  maxBytes,
		robots:    util.NewRobotsChecker(httpCfg.UserAgent, timeout),
		limiter:   NewLimiter(rateCfg.RequestsPerSecond, rateCfg.BurstSize),
	}
}

// page is one fetched document before normalization.
type page struct {
	body        string
	contentType string
	finalURL    string
}

// FetchArticle retrieves one URL and converts it to a plain-text article.
// Transient failures (5xx, 429, connection drops) are retried up to three
// attempts; robots.txt denials and client errors fail immediately.
func (f *Fetcher) FetchArticle(ctx context.Context, rawURL string) (*model.Article, error) {
	allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("blocked by robots.txt: %s", rawURL)
	}

	var lastErr error
	for attempt := 1; attempt <= maxFetchAttempts; attempt++ {
		if err := f.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}

		p, err := f.fetch(ctx, rawURL)
		if err == nil {
			return articleFromPage(p), nil
		}
		lastErr = err
		if !isRetryableFetchError(err) {
			return nil, err
		}
		if attempt < maxFetchAttempts {
			fetchSleepFunc(time.Duration(attempt) * retryBaseDelay)
		}
	}
	return nil, lastErr
}

// fetch performs a single GET attempt.
func (f *Fetcher) fetch(ctx context.Context, rawURL string) (*page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &page{
		body:        string(body),
		contentType: resp.Header.Get("Content-Type"),
		finalURL:    resp.Request.URL.String(),
	}, nil
}

// articleFromPage normalizes a fetched document into a plain-text article.
// The title comes from the HTML <title> when present, otherwise from the
// de-slugified last URL path segment.
func articleFromPage(p *page) *model.Article {
	var content, title string
	switch {
	case strings.Contains(p.contentType, "markdown"):
		content = textutil.MarkdownToText(p.body)
	case strings.Contains(p.contentType, "text/plain"):
		content = textutil.CollapseWhitespace(p.body)
	default:
		content = textutil.HTMLToText(p.body)
		title = textutil.HTMLTitle(p.body)
	}
	if title == "" {
		title = titleFromURL(p.finalURL)
	}

	var source string
	if parsed, err := url.Parse(p.finalURL); err == nil {
		source = parsed.Host
	}

	return &model.Article{
		Title:   title,
		Content: content,
		URL:     p.finalURL,
		Source:  source,
	}
}

// titleFromURL derives a readable title from the last URL path segment:
// slug separators become spaces and file extensions are dropped. Falls back
// to the host for path-less URLs.
func titleFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return parsed.Host
	}

	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]
	last = strings.ReplaceAll(last, "_", " ")
	last = strings.ReplaceAll(last, "-", " ")
	if idx := strings.LastIndex(last, "."); idx > 0 {
		last = last[:idx]
	}
	return last
}

// isRetryableFetchError reports whether a fetch failure is worth another
// attempt: server-side statuses (5xx, 429) and transport-level errors are;
// client errors, request construction and body reads are not.
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if strings.Contains(msg, "unexpected status:") {
		return strings.Contains(msg, "unexpected status: 5") ||
			strings.Contains(msg, "unexpected status: 429")
	}
	return strings.HasPrefix(msg, "fetch:")
}
