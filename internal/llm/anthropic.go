package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/quikcommit/qc/internal/output"
)

// anthropicMaxTokens is plenty for a commit message with a body.
const anthropicMaxTokens = 1024

func (c *Client) completeAnthropic(ctx context.Context, model, prompt string) (string, error) {
	client := anthropic.NewClient(
		option.WithAPIKey(c.settings.APIKey),
		option.WithBaseURL(c.settings.BaseURL),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(requestTimeout),
	)

	msg, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: anthropicMaxTokens,
		System:    []anthropic.TextBlockParam{{Text: SystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", output.NewRemoteError(fmt.Errorf("anthropic request failed: %w", err))
	}

	var content strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}
	if content.Len() == 0 {
		return "", output.NewRemoteError(errors.New("unexpected response from anthropic: no text content"))
	}
	return content.String(), nil
}
