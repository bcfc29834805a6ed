// Package claude generates the conversational reply text via the Claude
// API. Structured safety content never comes from the model; triage owns
// that.
package claude

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/linnemanlabs/gabay/internal/assistant"
)

const maxTokens = 1024

const systemPrompt = `You are Gabay, a friendly health assistant for residents of Naga City, Philippines.
Answer briefly and warmly. You may give general health education, but never diagnose,
never prescribe, and never contradict the safety guidance the app attaches to your reply.
If the user writes in Tagalog or Bikol, reply in that language.`

// Client calls the Claude Messages API.
type Client struct {
	api   anthropic.Client
	model string
}

// New creates a Claude client with the given API key and model name.
// Extra request options are mainly for tests (base URL override).
func New(apiKey, model string, opts ...option.RequestOption) *Client {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Client{
		api:   anthropic.NewClient(opts...),
		model: model,
	}
}

// Reply generates the assistant's conversational text for one user
// message.
func (c *Client) Reply(ctx context.Context, message string, lang assistant.Language) (string, error) {
	system := systemPrompt
	switch lang {
	case assistant.Tagalog:
		system += "\nThe user prefers Tagalog."
	case assistant.Bikol:
		system += "\nThe user prefers Bikol (Central Bikol)."
	}

	resp, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(message)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude request: %w", err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("claude returned no text content")
	}
	return b.String(), nil
}
