package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/gnosia/internal/model"
)

func testFetcher() *Fetcher {
	return NewFetcher(
		model.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "test-agent", MaxBodyBytes: 1 << 20},
		model.RateLimitingConfig{RequestsPerSecond: 100, BurstSize: 10},
	)
}

func TestFetchArticle_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, "<html><head><title>Acme Expands</title></head><body><p>Acme opened a new hub.</p></body></html>")
	}))
	defer server.Close()

	article, err := testFetcher().FetchArticle(context.Background(), server.URL+"/news/acme-expands")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if article.Title != "Acme Expands" {
		t.Errorf("Expected title from <title>, got '%s'", article.Title)
	}
	if !strings.Contains(article.Content, "Acme opened a new hub.") {
		t.Errorf("Expected body text in content, got '%s'", article.Content)
	}
	if article.URL == "" || article.Source == "" {
		t.Errorf("Expected URL and source populated, got %+v", article)
	}
}

func TestFetchArticle_TransientThenSuccess(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		n := attempts.Add(1)
		if n <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, "<html><body>recovered</body></html>")
	}))
	defer server.Close()

	origSleep := fetchSleepFunc
	fetchSleepFunc = func(d time.Duration) {}
	defer func() { fetchSleepFunc = origSleep }()

	article, err := testFetcher().FetchArticle(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if !strings.Contains(article.Content, "recovered") {
		t.Errorf("Unexpected content: %s", article.Content)
	}
	if attempts.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts.Load())
	}
}

func TestFetchArticle_PermanentFailureNotRetried(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	origSleep := fetchSleepFunc
	fetchSleepFunc = func(d time.Duration) {}
	defer func() { fetchSleepFunc = origSleep }()

	_, err := testFetcher().FetchArticle(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error for 404, got nil")
	}
	if attempts.Load() != 1 {
		t.Errorf("Expected 404 to fail without retry, got %d attempts", attempts.Load())
	}
}

func TestFetchArticle_RobotsDisallowed(t *testing.T) {
	var pageHits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /\n")
			return
		}
		pageHits.Add(1)
	}))
	defer server.Close()

	_, err := testFetcher().FetchArticle(context.Background(), server.URL+"/private")
	if err == nil {
		t.Fatal("Expected robots.txt denial")
	}
	if !strings.Contains(err.Error(), "blocked by robots.txt") {
		t.Errorf("Unexpected error: %v", err)
	}
	if pageHits.Load() != 0 {
		t.Errorf("Expected page never requested, got %d hits", pageHits.Load())
	}
}

func TestIsRetryableFetchError(t *testing.T) {
	tests := []struct {
		err       string
		retryable bool
	}{
		{"unexpected status: 503 Service Unavailable", true},
		{"unexpected status: 500 Internal Server Error", true},
		{"unexpected status: 429 Too Many Requests", true},
		{"unexpected status: 404 Not Found", false},
		{"unexpected status: 403 Forbidden", false},
		{"fetch: connection refused", true},
		{"fetch: connection reset by peer", true},
		{"create request: invalid URL", false},
		{"read body: unexpected EOF", false},
		{"blocked by robots.txt: http://x", false},
	}

	for _, tt := range tests {
		err := fmt.Errorf("%s", tt.err)
		if got := isRetryableFetchError(err); got != tt.retryable {
			t.Errorf("isRetryableFetchError(%q) = %v, want %v", tt.err, got, tt.retryable)
		}
	}

	if isRetryableFetchError(nil) {
		t.Error("Expected nil error to not be retryable")
	}
}

func TestTitleFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/news/acme-expands-into-europe", "acme expands into europe"},
		{"https://example.com/posts/q3_results.html", "q3 results"},
		{"https://example.com/", "example.com"},
	}

	for _, tt := range tests {
		if got := titleFromURL(tt.url); got != tt.want {
			t.Errorf("titleFromURL(%s) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
