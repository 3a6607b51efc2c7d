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

const serpEndpoint = "https://serpapi.com/search.json"

// SerpClient searches the web through SerpAPI's Google results.
type SerpClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewSerpClient(apiKey string) *SerpClient {
	return &SerpClient{
		apiKey:     apiKey,
		endpoint:   serpEndpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *SerpClient) SearchWeb(ctx context.Context, query string, maxResults int) ([]WebResult, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	params := url.Values{
		"engine":  {"google"},
		"q":       {query},
		"num":     {strconv.Itoa(maxResults)},
		"api_key": {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("serpapi %d: %s", resp.StatusCode, string(b))
	}

	var raw serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("serpapi decode: %w", err)
	}

	results := make([]WebResult, 0, len(raw.OrganicResults))
	for _, item := range raw.OrganicResults {
		if len(results) >= maxResults {
			break
		}
		results = append(results, WebResult{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
	}

	return results, nil
}

type serpResponse struct {
	OrganicResults []serpResult `json:"organic_results"`
}

type serpResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}
