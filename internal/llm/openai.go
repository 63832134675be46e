package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/quikcommit/qc/internal/output"
)

// OpenRouter attribution headers.
const (
	openRouterReferer = "https://github.com/quikcommit/quikcommit"
	openRouterTitle   = "qc - AI Commit Message Generator"
)

// localPlaceholderKey satisfies the SDK when the server ignores auth.
const localPlaceholderKey = "not-needed"

// openAIOptions builds SDK options for the OpenAI-compatible providers.
func (c *Client) openAIOptions() []option.RequestOption {
	key := c.settings.APIKey
	if key == "" {
		key = localPlaceholderKey
	}
	baseURL := c.settings.BaseURL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	opts := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(requestTimeout),
	}
	if c.settings.Provider == ProviderOpenRouter {
		opts = append(opts,
			option.WithHeader("HTTP-Referer", openRouterReferer),
			option.WithHeader("X-Title", openRouterTitle),
		)
	}
	return opts
}

func (c *Client) completeOpenAI(ctx context.Context, model, prompt string) (string, error) {
	client := openai.NewClient(c.openAIOptions()...)

	// LM Studio answers with whatever model is loaded when none is named.
	if model == "default" {
		model = ""
	}

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", output.NewRemoteError(fmt.Errorf("%s request failed: %w", c.settings.Provider, err))
	}
	if len(resp.Choices) == 0 {
		return "", output.NewRemoteError(fmt.Errorf("unexpected response from %s: no choices", c.settings.Provider))
	}
	return resp.Choices[0].Message.Content, nil
}
