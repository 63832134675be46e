// Package llm generates commit messages directly against an inference
// provider, without the hosted service ("local mode").
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/quikcommit/qc/internal/config"
	"github.com/quikcommit/qc/internal/output"
)

// Provider represents an inference backend.
type Provider string

// Supported providers.
const (
	ProviderOllama     Provider = "ollama"
	ProviderLMStudio   Provider = "lmstudio"
	ProviderOpenRouter Provider = "openrouter"
	ProviderCustom     Provider = "custom"
	ProviderCloudflare Provider = "cloudflare"
	ProviderAnthropic  Provider = "anthropic"
)

// requestTimeout bounds a single generation call.
const requestTimeout = 2 * time.Minute

var defaultBaseURLs = map[Provider]string{
	ProviderOllama:     "http://localhost:11434",
	ProviderLMStudio:   "http://localhost:1234/v1",
	ProviderOpenRouter: "https://openrouter.ai/api/v1",
	ProviderCustom:     "",
	ProviderCloudflare: "",
	ProviderAnthropic:  "https://api.anthropic.com",
}

var defaultModels = map[Provider]string{
	ProviderOllama:     "codellama",
	ProviderLMStudio:   "default",
	ProviderOpenRouter: "google/gemini-flash-1.5-8b",
	ProviderCustom:     "",
	ProviderCloudflare: "@cf/qwen/qwen2.5-coder-32b-instruct",
	ProviderAnthropic:  "claude-haiku-4-5-20251001",
}

// anthropicAliases are convenient shorthands; full model names pass through.
var anthropicAliases = map[string]string{
	"haiku":  "claude-haiku-4-5-20251001",
	"sonnet": "claude-sonnet-4-5-20250929",
	"opus":   "claude-opus-4-6",
}

// SupportedProviders returns the provider names accepted in config.
func SupportedProviders() []string {
	return []string{
		string(ProviderOllama), string(ProviderLMStudio), string(ProviderOpenRouter),
		string(ProviderCustom), string(ProviderCloudflare), string(ProviderAnthropic),
	}
}

// ParseProvider normalizes a provider name.
func ParseProvider(name string) (Provider, bool) {
	p := Provider(strings.ToLower(strings.TrimSpace(name)))
	_, ok := defaultBaseURLs[p]
	return p, ok
}

// Settings is a fully resolved provider configuration.
type Settings struct {
	Provider Provider
	BaseURL  string
	Model    string
	APIKey   string
}

// ResolveProvider builds Settings from the user config. apiKey is the qc
// key, used as the bearer token for openrouter and custom endpoints.
// Returns nil when no provider is configured or the configured one is
// unusable: no base URL, or a required key is missing.
func ResolveProvider(cfg *config.Config, apiKey string) *Settings {
	if cfg == nil {
		return nil
	}
	provider, ok := ParseProvider(cfg.Provider)
	if !ok {
		return nil
	}

	s := &Settings{
		Provider: provider,
		BaseURL:  strings.TrimRight(firstNonEmpty(cfg.APIURL, defaultBaseURLs[provider]), "/"),
		Model:    firstNonEmpty(cfg.Model, defaultModels[provider]),
	}
	if s.BaseURL == "" {
		return nil
	}

	switch provider {
	case ProviderOpenRouter, ProviderCustom:
		s.APIKey = strings.TrimSpace(apiKey)
	case ProviderAnthropic:
		s.APIKey = firstNonEmpty(strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")), strings.TrimSpace(apiKey))
		if alias, ok := anthropicAliases[strings.ToLower(s.Model)]; ok {
			s.Model = alias
		}
	}
	if (provider == ProviderOpenRouter || provider == ProviderAnthropic) && s.APIKey == "" {
		return nil
	}
	return s
}

// HTTPDoer defines the HTTP operations required by Client.
// This allows injection of test doubles for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client generates commit messages with one provider.
type Client struct {
	settings   Settings
	httpClient HTTPDoer
}

// New creates a client for the resolved settings.
func New(settings Settings) *Client {
	return &Client{
		settings:   settings,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// WithHTTPClient replaces the transport used by the ollama and cloudflare
// adapters. Returns the client for chaining.
func (c *Client) WithHTTPClient(doer HTTPDoer) *Client {
	c.httpClient = doer
	return c
}

// Settings returns the provider configuration in use.
func (c *Client) Settings() Settings {
	return c.settings
}

// CommitInput is the material for one commit message.
type CommitInput struct {
	Changes string
	Diff    string
	Rules   *config.Rules
	// Model overrides the configured model when set.
	Model string
}

// GenerateCommit returns a cleaned commit message.
func (c *Client) GenerateCommit(ctx context.Context, in CommitInput) (string, error) {
	model := firstNonEmpty(in.Model, c.settings.Model)
	prompt := BuildCommitPrompt(in.Changes, in.Diff, in.Rules)

	var (
		raw string
		err error
	)
	switch c.settings.Provider {
	case ProviderOllama:
		raw, err = c.completeOllama(ctx, model, prompt)
	case ProviderLMStudio, ProviderOpenRouter, ProviderCustom:
		raw, err = c.completeOpenAI(ctx, model, prompt)
	case ProviderCloudflare:
		raw, err = c.completeCloudflare(ctx, in)
	case ProviderAnthropic:
		raw, err = c.completeAnthropic(ctx, model, prompt)
	default:
		return "", output.NewUserError(fmt.Sprintf("unsupported provider: %s", c.settings.Provider))
	}
	if err != nil {
		return "", err
	}

	message := SanitizeMessage(CleanMessage(raw))
	if message == "" {
		return "", output.NewRemoteError(errors.New("failed to generate commit message"))
	}
	return message, nil
}

// CleanMessage undoes the escaped newlines some models emit and trims.
func CleanMessage(raw string) string {
	msg := strings.ReplaceAll(raw, `\n`, "\n")
	msg = strings.ReplaceAll(msg, `\r`, "")
	return strings.TrimSpace(msg)
}

// doRequest performs an HTTP POST request with JSON body.
func (c *Client) doRequest(ctx context.Context, url string, body any) ([]byte, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, output.NewRemoteError(fmt.Errorf("request to %s failed: %w", c.settings.Provider, err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Truncate error body to prevent sensitive data leakage and memory issues
		errBody := string(respBody)
		if len(errBody) > 500 {
			errBody = errBody[:500]
		}
		return nil, output.NewRemoteError(fmt.Errorf("provider error (%d): %s", resp.StatusCode, errBody))
	}

	return respBody, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
