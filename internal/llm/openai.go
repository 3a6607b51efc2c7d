package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openAIClient struct {
	client      *openai.Client
	model       openai.ChatModel
	temperature float64
	maxTokens   int64
}

func newOpenAIClient(apiKey, model string, temperature float64, maxTokens int64) *openAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &openAIClient{
		client:      &client,
		model:       openai.ChatModel(model),
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

func (c *openAIClient) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	temp, tokens := resolve(opts, c.temperature, c.maxTokens)

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(temp),
		MaxTokens:   openai.Int(tokens),
	})
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty openai response")
	}
	return content, nil
}
