package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type anthropicClient struct {
	client      *anthropic.Client
	model       anthropic.Model
	temperature float64
	maxTokens   int64
}

func newAnthropicClient(apiKey, model string, temperature float64, maxTokens int64) *anthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &anthropicClient{
		client:      &client,
		model:       anthropic.Model(model),
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

func (c *anthropicClient) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	temp, tokens := resolve(opts, c.temperature, c.maxTokens)

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   tokens,
		Temperature: anthropic.Float(temp),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("no response from anthropic")
	}
	content := strings.TrimSpace(resp.Content[0].Text)
	if content == "" {
		return "", fmt.Errorf("empty anthropic response")
	}
	return content, nil
}
