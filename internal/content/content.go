// Package content turns research into styled LinkedIn posts. Every
// operation returns some usable text: completion failures degrade to
// fixed templates, never to errors.
package content

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tcoelho/intelpost/internal/llm"
)

// PostStyle selects a generation strategy.
type PostStyle int

const (
	StyleGeneric PostStyle = iota
	StyleNewsAnalysis
	StyleEducational
	StyleOpinion
	StyleEngagement
	StyleTrend
)

var styleNames = map[PostStyle]string{
	StyleGeneric:      "Generic",
	StyleNewsAnalysis: "News Analysis",
	StyleEducational:  "Educational Explainer",
	StyleOpinion:      "Personal Opinion",
	StyleEngagement:   "Engagement Question",
	StyleTrend:        "Trend Prediction",
}

func (s PostStyle) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return "Generic"
}

// ParseStyle maps a style name to its PostStyle by exact match; anything
// unrecognized falls back to the generic strategy.
func ParseStyle(name string) PostStyle {
	for style, n := range styleNames {
		if n == name && style != StyleGeneric {
			return style
		}
	}
	return StyleGeneric
}

// Styles lists the five named styles in display order.
func Styles() []PostStyle {
	return []PostStyle{
		StyleNewsAnalysis,
		StyleEducational,
		StyleOpinion,
		StyleEngagement,
		StyleTrend,
	}
}

type strategy struct {
	temperature float64
	prompt      func(topic, keyPoints string) string
}

type Generator struct {
	completer  llm.Completer
	log        *zap.Logger
	strategies map[PostStyle]strategy
}

func NewGenerator(completer llm.Completer, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Generator{completer: completer, log: log}
	g.strategies = map[PostStyle]strategy{
		StyleNewsAnalysis: {0.7, func(topic, kp string) string {
			return fmt.Sprintf(newsAnalysisPrompt, topic, kp)
		}},
		StyleEducational: {0.7, func(topic, kp string) string {
			return fmt.Sprintf(educationalPrompt, topic, kp)
		}},
		StyleOpinion: {0.8, func(topic, kp string) string {
			stance := fmt.Sprintf("This development in %s is significant", topic)
			return fmt.Sprintf(opinionPrompt, topic, stance, kp)
		}},
		StyleEngagement: {0.7, func(topic, kp string) string {
			return fmt.Sprintf(engagementPrompt, topic, kp)
		}},
		StyleTrend: {0.8, func(topic, kp string) string {
			return fmt.Sprintf(trendPrompt, topic, kp)
		}},
		StyleGeneric: {0.7, func(topic, kp string) string {
			return fmt.Sprintf(basePrompt, topic, "Informative", kp)
		}},
	}
	return g
}

// Generate produces a post for the topic in the given style. The angle,
// when set, narrows the focus of the key points.
func (g *Generator) Generate(ctx context.Context, topic, summary string, style PostStyle, angle string) string {
	keyPoints := g.keyPoints(ctx, summary)
	if angle != "" {
		keyPoints = "Focus angle: " + angle + "\n" + keyPoints
	}

	strat, ok := g.strategies[style]
	if !ok {
		strat = g.strategies[StyleGeneric]
	}

	post, err := g.completer.Complete(ctx, strat.prompt(topic, keyPoints),
		llm.Options{Temperature: llm.Temp(strat.temperature)})
	if err != nil {
		g.log.Warn("post generation failed", zap.String("style", style.String()), zap.Error(err))
		post = fallbackPost(topic, keyPoints)
	}

	return g.enhance(ctx, post, topic)
}

func (g *Generator) keyPoints(ctx context.Context, summary string) string {
	points, err := g.completer.Complete(ctx,
		fmt.Sprintf(keyPointsPrompt, clip(summary, 1500)),
		llm.Options{MaxTokens: llm.Tokens(300)})
	if err != nil {
		g.log.Warn("key point extraction failed", zap.Error(err))
		return clip(summary, 500)
	}
	return points
}

// enhance appends hashtags when the post has none.
func (g *Generator) enhance(ctx context.Context, post, topic string) string {
	if !strings.Contains(post, "#") {
		post = post + "\n\n" + g.hashtags(ctx, post, topic)
	}
	return strings.TrimSpace(post)
}

func (g *Generator) hashtags(ctx context.Context, post, topic string) string {
	tags, err := g.completer.Complete(ctx,
		fmt.Sprintf(hashtagsPrompt, clip(post, 500)),
		llm.Options{Temperature: llm.Temp(0.5), MaxTokens: llm.Tokens(50)})
	if err != nil {
		g.log.Warn("hashtag generation failed", zap.Error(err))
		return fallbackHashtags(topic)
	}
	return strings.TrimSpace(tags)
}

// ImproveHook replaces only the first line of a post with a stronger
// opener. The post comes back unchanged if the call fails.
func (g *Generator) ImproveHook(ctx context.Context, post, topic string) string {
	lines := strings.Split(post, "\n")
	currentHook := ""
	if len(lines) > 0 {
		currentHook = lines[0]
	}

	improved, err := g.completer.Complete(ctx,
		fmt.Sprintf(improveHookPrompt, currentHook, topic),
		llm.Options{Temperature: llm.Temp(0.8), MaxTokens: llm.Tokens(50)})
	if err != nil {
		g.log.Warn("hook improvement failed", zap.Error(err))
		return post
	}

	lines[0] = strings.TrimSpace(improved)
	return strings.Join(lines, "\n")
}

// Regenerate produces an entirely different post on the same topic and
// style. The previous post comes back unchanged if the call fails.
func (g *Generator) Regenerate(ctx context.Context, topic, summary string, style PostStyle, previousPost string) string {
	post, err := g.completer.Complete(ctx,
		fmt.Sprintf(regeneratePrompt, previousPost, topic, style.String(), clip(summary, 500)),
		llm.Options{Temperature: llm.Temp(0.9)})
	if err != nil {
		g.log.Warn("regeneration failed", zap.Error(err))
		return previousPost
	}
	return g.enhance(ctx, post, topic)
}

func fallbackPost(topic, keyPoints string) string {
	return fmt.Sprintf(`Interesting developments in %s 🔍

%s

What are your thoughts on this?

#Technology #Innovation #Business`, topic, keyPoints)
}

func fallbackHashtags(topic string) string {
	words := strings.Fields(topic)
	if len(words) > 2 {
		words = words[:2]
	}
	return fmt.Sprintf("#%s #AI #Technology #Innovation #Business", strings.Join(words, ""))
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
