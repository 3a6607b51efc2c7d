package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const newsAPIEndpoint = "https://newsapi.org/v2/everything"

// NewsAPIClient searches recent news through newsapi.org.
type NewsAPIClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewNewsAPIClient(apiKey string) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:     apiKey,
		endpoint:   newsAPIEndpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *NewsAPIClient) SearchNews(ctx context.Context, query string, daysBack, maxResults int) ([]NewsArticle, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	from := time.Now().AddDate(0, 0, -daysBack)
	params := url.Values{
		"q":        {query},
		"from":     {from.Format("2006-01-02")},
		"sortBy":   {"relevancy"},
		"language": {"en"},
		"pageSize": {strconv.Itoa(maxResults)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("newsapi %d: %s", resp.StatusCode, string(b))
	}

	var raw newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}

	articles := make([]NewsArticle, 0, len(raw.Articles))
	for _, item := range raw.Articles {
		if len(articles) >= maxResults {
			break
		}
		publishedAt, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			publishedAt = time.Time{}
		}

		source := item.Source.Name
		if source == "" {
			source = "Unknown"
		}

		articles = append(articles, NewsArticle{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			Source:      source,
			PublishedAt: publishedAt,
		})
	}

	return articles, nil
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	PublishedAt string        `json:"publishedAt"`
	Source      newsAPISource `json:"source"`
}

type newsAPISource struct {
	Name string `json:"name"`
}
