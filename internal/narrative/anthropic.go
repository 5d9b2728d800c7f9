package narrative

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultAnthropicModel is used when no model is configured.
const DefaultAnthropicModel = "claude-sonnet-4-0"

// AnthropicClient implements Generator against the Anthropic Messages API,
// as an alternative to a local Ollama instance.
type AnthropicClient struct {
	client anthropic.Client
	model  anthropic.Model
	apiKey string
}

// NewAnthropicClient constructs an AnthropicClient. An empty model selects
// DefaultAnthropicModel.
//
// Precondition: apiKey must be non-empty for Generate to succeed.
func NewAnthropicClient(apiKey, model string) *AnthropicClient {
	if model == "" {
		model = DefaultAnthropicModel
	}
	return &AnthropicClient{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
		apiKey: apiKey,
	}
}

// Generate requests a bounded-length completion from the Messages API.
//
// Postcondition: Returns the concatenated text blocks of the response, or an
// error on request failure or an empty completion.
func (c *AnthropicClient) Generate(ctx context.Context, prompt string, gc Context) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   300,
		Temperature: anthropic.Float(0.8),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(BuildPrompt(prompt, gc))),
		},
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(text.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("anthropic: empty completion")
	}
	return sb.String(), nil
}

// Ping reports whether the client is configured. The Messages API has no
// cheap liveness endpoint, so a present API key is treated as reachable.
func (c *AnthropicClient) Ping(ctx context.Context) error {
	if c.apiKey == "" {
		return errors.New("anthropic: no API key configured")
	}
	return nil
}
