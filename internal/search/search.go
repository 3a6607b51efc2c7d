// Package search provides the external news and web search collaborators
// used by the research pipeline. Every client is a thin request/response
// wrapper: one attempt, bounded timeout, no retries.
package search

import (
	"context"
	"errors"
	"time"
)

// ErrNoAPIKey indicates a client was asked to search without credentials.
var ErrNoAPIKey = errors.New("search: API key not configured")

// NewsArticle is one news search result.
type NewsArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
}

// WebResult is one general web search result.
type WebResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type NewsSearcher interface {
	SearchNews(ctx context.Context, query string, daysBack, maxResults int) ([]NewsArticle, error)
}

type WebSearcher interface {
	SearchWeb(ctx context.Context, query string, maxResults int) ([]WebResult, error)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
