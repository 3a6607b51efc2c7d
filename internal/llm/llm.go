// Package llm wraps the external text completion services. Exactly one
// attempt per call, no retries; callers own their fallbacks.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/tcoelho/intelpost/internal/config"
)

// ErrNoAPIKey indicates the completion service cannot be constructed.
// There is no fallback for a missing credential, so this is the one hard
// error in the pipeline.
var ErrNoAPIKey = errors.New("completion API key not configured")

const systemPrompt = "You are a helpful AI assistant."

// Options overrides the configured sampling parameters for one call.
// Nil fields keep the defaults.
type Options struct {
	Temperature *float64
	MaxTokens   *int64
}

func Temp(t float64) *float64 { return &t }
func Tokens(n int64) *int64   { return &n }

// Completer generates text from a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
}

// New creates a Completer from the given config.
func New(cfg *config.Config) (Completer, error) {
	key := cfg.CompletionKey()
	if key == "" {
		return nil, ErrNoAPIKey
	}

	switch cfg.Completion.Provider {
	case "", "openai":
		model := cfg.Completion.Model
		if model == "" {
			model = "gpt-4o-mini"
		}
		return newOpenAIClient(key, model, cfg.GetTemperature(), cfg.GetMaxTokens()), nil
	case "anthropic":
		model := cfg.Completion.Model
		if model == "" {
			model = "claude-haiku-4-5"
		}
		return newAnthropicClient(key, model, cfg.GetTemperature(), cfg.GetMaxTokens()), nil
	default:
		return nil, fmt.Errorf("unknown completion provider: %q (valid: openai, anthropic)", cfg.Completion.Provider)
	}
}

func resolve(opts Options, defTemp float64, defTokens int64) (float64, int64) {
	temp := defTemp
	if opts.Temperature != nil {
		temp = *opts.Temperature
	}
	tokens := defTokens
	if opts.MaxTokens != nil {
		tokens = *opts.MaxTokens
	}
	return temp, tokens
}
