package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewsAPISearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Api-Key"); got != "test-key" {
			t.Errorf("api key header = %q", got)
		}
		if got := r.URL.Query().Get("q"); got != "anthropic" {
			t.Errorf("query = %q", got)
		}
		w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{"title": "A", "description": "da", "url": "https://a.com", "publishedAt": "2026-08-01T10:00:00Z", "source": {"name": "Wire"}},
				{"title": "B", "description": "db", "url": "https://b.com", "publishedAt": "not-a-date", "source": {}},
				{"title": "C", "description": "dc", "url": "https://c.com", "publishedAt": "2026-08-02T10:00:00Z", "source": {"name": "Other"}}
			]
		}`))
	}))
	defer srv.Close()

	c := NewNewsAPIClient("test-key")
	c.endpoint = srv.URL

	articles, err := c.SearchNews(context.Background(), "anthropic", 30, 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected results capped at 2, got %d", len(articles))
	}
	if articles[0].Title != "A" || articles[0].Source != "Wire" {
		t.Errorf("unexpected first article: %+v", articles[0])
	}
	if !articles[1].PublishedAt.IsZero() {
		t.Errorf("unparseable date should be zero, got %v", articles[1].PublishedAt)
	}
	if articles[1].Source != "Unknown" {
		t.Errorf("missing source should be Unknown, got %q", articles[1].Source)
	}
}

func TestNewsAPISearchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewNewsAPIClient("test-key")
	c.endpoint = srv.URL
	if _, err := c.SearchNews(context.Background(), "x", 30, 5); err == nil {
		t.Error("expected error on non-200")
	}
}

func TestNewsAPISearchNoKey(t *testing.T) {
	c := NewNewsAPIClient("")
	_, err := c.SearchNews(context.Background(), "x", 30, 5)
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestSerpSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("api_key"); got != "serp-key" {
			t.Errorf("api_key = %q", got)
		}
		w.Write([]byte(`{
			"organic_results": [
				{"title": "Guide", "link": "https://g.com", "snippet": "all about it"},
				{"title": "Docs", "link": "https://d.com", "snippet": "reference"}
			]
		}`))
	}))
	defer srv.Close()

	c := NewSerpClient("serp-key")
	c.endpoint = srv.URL

	results, err := c.SearchWeb(context.Background(), "anthropic", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Title != "Guide" || results[0].Snippet != "all about it" {
		t.Errorf("unexpected first result: %+v", results[0])
	}
}

func TestSerpSearchNoKey(t *testing.T) {
	c := NewSerpClient("")
	_, err := c.SearchWeb(context.Background(), "x", 5)
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestGoogleNewsSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "anthropic" {
			t.Errorf("query = %q", got)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		recent := time.Now().Add(-2 * time.Hour).UTC().Format(time.RFC1123)
		w.Write([]byte(`<?xml version="1.0"?>
<rss version="2.0"><channel>
  <title>Google News</title>
  <item>
    <title>Big launch - The Wire</title>
    <link>https://news.example/1</link>
    <description>&lt;p&gt;Details &lt;b&gt;here&lt;/b&gt;&lt;/p&gt;</description>
    <pubDate>` + recent + `</pubDate>
  </item>
  <item>
    <title>Old story - Daily</title>
    <link>https://news.example/2</link>
    <description>stale</description>
    <pubDate>Mon, 06 Jan 2020 10:00:00 GMT</pubDate>
  </item>
</channel></rss>`))
	}))
	defer srv.Close()

	c := NewGoogleNewsClient()
	c.endpoint = srv.URL

	articles, err := c.SearchNews(context.Background(), "anthropic", 30, 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected old item filtered out, got %d articles", len(articles))
	}
	a := articles[0]
	if a.Title != "Big launch" || a.Source != "The Wire" {
		t.Errorf("unexpected article: %+v", a)
	}
	if a.Description != "Details here" {
		t.Errorf("expected HTML stripped, got %q", a.Description)
	}
}

func TestSplitGoogleTitle(t *testing.T) {
	tests := []struct {
		input  string
		title  string
		source string
	}{
		{"Headline - Publisher", "Headline", "Publisher"},
		{"Multi - part - Publisher", "Multi - part", "Publisher"},
		{"No publisher", "No publisher", "Google News"},
		{"Trailing - ", "Trailing", "Google News"},
	}
	for _, tt := range tests {
		title, source := splitGoogleTitle(tt.input)
		if title != tt.title || source != tt.source {
			t.Errorf("splitGoogleTitle(%q) = (%q, %q), want (%q, %q)",
				tt.input, title, source, tt.title, tt.source)
		}
	}
}

func TestScrapePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><style>p{color:red}</style></head>
<body><script>var x = 1;</script><p>Hello   world</p><p>again</p></body></html>`))
	}))
	defer srv.Close()

	text, err := ScrapePage(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	if text != "Hello world again" {
		t.Errorf("text = %q", text)
	}
}

func TestScrapePageNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := ScrapePage(context.Background(), srv.URL); err == nil {
		t.Error("expected error on 404")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello world", 8); got != "hello..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
}
