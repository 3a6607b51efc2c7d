package search

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const googleNewsEndpoint = "https://news.google.com/rss/search"

// GoogleNewsClient searches news through the keyless Google News RSS feed.
// Used when no NewsAPI key is configured.
type GoogleNewsClient struct {
	endpoint string
	parser   *gofeed.Parser
}

func NewGoogleNewsClient() *GoogleNewsClient {
	return &GoogleNewsClient{
		endpoint: googleNewsEndpoint,
		parser:   gofeed.NewParser(),
	}
}

func (c *GoogleNewsClient) SearchNews(ctx context.Context, query string, daysBack, maxResults int) ([]NewsArticle, error) {
	params := url.Values{
		"q":    {query},
		"hl":   {"en-US"},
		"gl":   {"US"},
		"ceid": {"US:en"},
	}

	feed, err := c.parser.ParseURLWithContext(c.endpoint+"?"+params.Encode(), ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	maxAge := now.AddDate(0, 0, -daysBack)
	articles := make([]NewsArticle, 0, maxResults)
	for _, item := range feed.Items {
		if len(articles) >= maxResults {
			break
		}

		pub := now
		if item.PublishedParsed != nil {
			pub = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			pub = *item.UpdatedParsed
		}
		if pub.Before(maxAge) {
			continue
		}

		title, source := splitGoogleTitle(item.Title)
		articles = append(articles, NewsArticle{
			Title:       title,
			Description: truncate(stripHTML(item.Description), 300),
			URL:         item.Link,
			Source:      source,
			PublishedAt: pub,
		})
	}

	return articles, nil
}

// splitGoogleTitle separates "Headline - Publisher" items into their parts.
func splitGoogleTitle(title string) (string, string) {
	idx := strings.LastIndex(title, " - ")
	if idx < 0 {
		return title, "Google News"
	}
	source := strings.TrimSpace(title[idx+3:])
	if source == "" {
		source = "Google News"
	}
	return strings.TrimSpace(title[:idx]), source
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
