package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quikcommit/qc/internal/config"
	"github.com/quikcommit/qc/internal/output"
)

// Ollama native API types.
type ollamaRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

func (c *Client) completeOllama(ctx context.Context, model, prompt string) (string, error) {
	body := ollamaRequest{Model: model, Prompt: prompt, Options: map[string]any{}}
	respBody, err := c.doRequest(ctx, c.settings.BaseURL+"/api/generate", body)
	if err != nil {
		return "", err
	}

	var result ollamaResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", output.NewRemoteError(fmt.Errorf("unexpected response from ollama: %w", err))
	}
	if result.Error != "" {
		return "", output.NewRemoteError(fmt.Errorf("ollama error: %s", result.Error))
	}
	return result.Response, nil
}

// Cloudflare worker types. The worker builds its own prompt from the raw
// diff and rules.
type cloudflareRequest struct {
	Diff    string        `json:"diff"`
	Changes string        `json:"changes"`
	Rules   *config.Rules `json:"rules"`
}

type cloudflareResponse struct {
	Commit struct {
		Response string `json:"response"`
	} `json:"commit"`
}

// placeholderWorker appears in the sample config shipped with the worker.
const placeholderWorker = "YOUR-WORKER"

func (c *Client) completeCloudflare(ctx context.Context, in CommitInput) (string, error) {
	if c.settings.BaseURL == "" || strings.Contains(c.settings.BaseURL, placeholderWorker) {
		return "", output.NewUserError("Cloudflare provider requires api_url. Run: qc config set api_url https://your-worker.workers.dev")
	}

	rules := in.Rules
	if rules == nil {
		rules = &config.Rules{}
	}
	body := cloudflareRequest{Diff: in.Diff, Changes: in.Changes, Rules: rules}
	respBody, err := c.doRequest(ctx, c.settings.BaseURL+"/commit", body)
	if err != nil {
		return "", err
	}

	var result cloudflareResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", output.NewRemoteError(fmt.Errorf("unexpected response from worker: %w", err))
	}
	return result.Commit.Response, nil
}
