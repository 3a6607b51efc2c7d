package cache

import (
	"strings"
	"time"

	"github.com/tcoelho/intelpost/internal/search"
)

// Sentiment is the overall tone of a research summary.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// ParseSentiment normalizes free-text sentiment output. Anything not
// recognizably positive or negative maps to Neutral.
func ParseSentiment(s string) Sentiment {
	word := strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(word, " \n\t"); i >= 0 {
		word = word[:i]
	}
	word = strings.Trim(word, ".,!:")
	switch word {
	case "positive":
		return SentimentPositive
	case "negative":
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// Record is the structured result of one research run. It is built once
// by the research orchestrator and immutable afterwards; Cached is the
// only field the orchestrator flips when serving it from the store.
type Record struct {
	Topic        string               `json:"topic"`
	ResearchType string               `json:"research_type"`
	Timestamp    time.Time            `json:"timestamp"`
	NewsArticles []search.NewsArticle `json:"news_articles"`
	WebResults   []search.WebResult   `json:"web_results"`
	Summary      string               `json:"summary"`
	Insights     string               `json:"insights"`
	KeyFacts     string               `json:"key_facts"`
	Sentiment    Sentiment            `json:"sentiment"`
	Cached       bool                 `json:"cached"`
}

// Stats is a point-in-time census of the store.
type Stats struct {
	Total   int
	Valid   int
	Expired int
}
