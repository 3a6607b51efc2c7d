// Package research coordinates the data-gathering stage: cache lookup,
// search fan-out, and the completion calls that turn raw results into a
// summarized record. Every external call in this path is individually
// non-fatal; a usable record always comes back.
package research

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tcoelho/intelpost/internal/cache"
	"github.com/tcoelho/intelpost/internal/config"
	"github.com/tcoelho/intelpost/internal/llm"
	"github.com/tcoelho/intelpost/internal/search"
)

// ErrEmptyTopic is returned before any external call is attempted.
var ErrEmptyTopic = errors.New("research: topic must not be empty")

const insightsFallback = "Unable to extract insights"

const (
	maxNewsInBlob = 5
	maxWebResults = 5
	maxWebInBlob  = 3
)

type Orchestrator struct {
	completer llm.Completer
	news      search.NewsSearcher
	web       search.WebSearcher
	store     *cache.Store
	cfg       *config.Config
	log       *zap.Logger
}

func New(completer llm.Completer, news search.NewsSearcher, web search.WebSearcher, store *cache.Store, cfg *config.Config, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		completer: completer,
		news:      news,
		web:       web,
		store:     store,
		cfg:       cfg,
		log:       log,
	}
}

// Research returns a record for the topic, served from cache when a fresh
// entry exists, otherwise assembled from the search and completion
// collaborators. Within the ttl window cached data is unconditionally
// preferred over freshness.
func (o *Orchestrator) Research(ctx context.Context, topic, researchType string) (*cache.Record, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	if researchType == "" {
		researchType = "general"
	}

	caching := o.cfg.CacheEnabled() && o.store != nil
	if caching {
		if rec, ok := o.store.Get(topic, researchType); ok {
			rec.Cached = true
			return rec, nil
		}
	}

	o.log.Info("researching", zap.String("topic", topic), zap.String("type", researchType))

	news := o.searchNews(ctx, topic)
	web := o.searchWeb(ctx, topic)

	blob := buildSynthesis(topic, news, web)
	summary := o.summarize(ctx, topic, blob)

	rec := &cache.Record{
		Topic:        topic,
		ResearchType: researchType,
		Timestamp:    time.Now(),
		NewsArticles: news,
		WebResults:   web,
		Summary:      summary,
		Insights:     o.insights(ctx, topic, summary),
		KeyFacts:     o.keyFacts(ctx, summary),
		Sentiment:    o.sentiment(ctx, summary),
		Cached:       false,
	}

	if caching {
		// Best effort: a failed write just means this run goes uncached.
		o.store.Set(topic, researchType, rec)
	}

	return rec, nil
}

func (o *Orchestrator) searchNews(ctx context.Context, topic string) []search.NewsArticle {
	if o.news == nil {
		return []search.NewsArticle{}
	}
	articles, err := o.news.SearchNews(ctx, topic, o.cfg.GetDaysBack(), o.cfg.GetMaxResults())
	if err != nil {
		o.log.Warn("news search failed", zap.String("topic", topic), zap.Error(err))
		return []search.NewsArticle{}
	}
	return articles
}

func (o *Orchestrator) searchWeb(ctx context.Context, topic string) []search.WebResult {
	if o.web == nil {
		return []search.WebResult{}
	}
	max := o.cfg.GetMaxResults()
	if max > maxWebResults {
		max = maxWebResults
	}
	results, err := o.web.SearchWeb(ctx, topic, max)
	if err != nil {
		o.log.Warn("web search failed", zap.String("topic", topic), zap.Error(err))
		return []search.WebResult{}
	}
	return results
}

// buildSynthesis concatenates a bounded number of results from each
// source into one source-tagged text blob for summarization.
func buildSynthesis(topic string, news []search.NewsArticle, web []search.WebResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n\n", topic)

	b.WriteString("Recent News:\n")
	for i, a := range news {
		if i >= maxNewsInBlob {
			break
		}
		fmt.Fprintf(&b, "- %s\n", a.Title)
		if a.Description != "" {
			fmt.Fprintf(&b, "  %s\n", a.Description)
		}
	}

	b.WriteString("\nWeb Results:\n")
	for i, r := range web {
		if i >= maxWebInBlob {
			break
		}
		fmt.Fprintf(&b, "- %s\n", r.Title)
		fmt.Fprintf(&b, "  %s\n", r.Snippet)
	}

	return b.String()
}

func (o *Orchestrator) summarize(ctx context.Context, topic, blob string) string {
	summary, err := o.completer.Complete(ctx, fmt.Sprintf(summaryPrompt, topic, blob), llm.Options{})
	if err != nil {
		o.log.Warn("summary generation failed", zap.Error(err))
		return blob
	}
	return summary
}

func (o *Orchestrator) insights(ctx context.Context, topic, summary string) string {
	insights, err := o.completer.Complete(ctx,
		fmt.Sprintf(insightsPrompt, topic, summary),
		llm.Options{MaxTokens: llm.Tokens(300)})
	if err != nil {
		o.log.Warn("insight extraction failed", zap.Error(err))
		return insightsFallback
	}
	return insights
}

func (o *Orchestrator) keyFacts(ctx context.Context, summary string) string {
	facts, err := o.completer.Complete(ctx,
		fmt.Sprintf(keyFactsPrompt, summary),
		llm.Options{MaxTokens: llm.Tokens(300)})
	if err != nil {
		o.log.Warn("fact extraction failed", zap.Error(err))
		return ""
	}
	return facts
}

func (o *Orchestrator) sentiment(ctx context.Context, summary string) cache.Sentiment {
	out, err := o.completer.Complete(ctx,
		fmt.Sprintf(sentimentPrompt, clip(summary, 500)),
		llm.Options{Temperature: llm.Temp(0.3), MaxTokens: llm.Tokens(10)})
	if err != nil {
		o.log.Warn("sentiment analysis failed", zap.Error(err))
		return cache.SentimentNeutral
	}
	return cache.ParseSentiment(out)
}

const anglesFallback = "1. Main news update\n2. Industry impact\n3. Personal take"

// Angles suggests post angles based on a research summary.
func (o *Orchestrator) Angles(ctx context.Context, topic, summary string) string {
	angles, err := o.completer.Complete(ctx,
		fmt.Sprintf(anglesPrompt, topic, clip(summary, 1000)),
		llm.Options{MaxTokens: llm.Tokens(300)})
	if err != nil {
		o.log.Warn("angle generation failed", zap.Error(err))
		return anglesFallback
	}
	return angles
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
