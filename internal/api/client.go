// Package api is the client for the hosted generation service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/quikcommit/qc/internal/output"
)

// Messages shown when the service refuses a feature for the current plan.
const (
	PRPlanMessage        = "PR descriptions require Pro plan. Upgrade at https://app.quikcommit.dev/billing"
	ChangelogPlanMessage = "Changelog generation requires Pro plan. Upgrade at https://app.quikcommit.dev/billing"
)

// CodePlanRequired is the error code the service returns for plan-gated features.
const CodePlanRequired = "PLAN_REQUIRED"

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 10 << 20

// HTTPDoer defines the HTTP operations required by Client.
// This allows injection of test doubles for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to the generation service with a bearer API key.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient HTTPDoer
}

// New creates a client for baseURL authenticating with apiKey.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(apiKey),
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// WithHTTPClient replaces the transport. Returns the client for chaining.
func (c *Client) WithHTTPClient(doer HTTPDoer) *Client {
	c.httpClient = doer
	return c
}

// HasAuth reports whether an API key is configured.
func (c *Client) HasAuth() bool {
	return c.apiKey != ""
}

// Error is a failure reported by the service or while reaching it.
// Status is 0 for transport and decoding failures.
type Error struct {
	Status  int
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// errorBody is the service's error envelope.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// post sends body as JSON to endpoint and decodes the reply into out, if
// out is non-nil.
// planMessage replaces the service message for PLAN_REQUIRED errors when set.
func (c *Client) post(ctx context.Context, endpoint string, body, out any, planMessage string) error {
	data, err := json.Marshal(body)
	if err != nil {
		return output.NewSystemErrorWithCause("failed to marshal request", err)
	}
	return c.do(ctx, http.MethodPost, endpoint, bytes.NewReader(data), out, planMessage)
}

// put sends body as JSON to endpoint with PUT and decodes the reply into out.
func (c *Client) put(ctx context.Context, endpoint string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return output.NewSystemErrorWithCause("failed to marshal request", err)
	}
	return c.do(ctx, http.MethodPut, endpoint, bytes.NewReader(data), out, "")
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, out, "")
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, out any, planMessage string) error {
	if !c.HasAuth() {
		return output.NewUserError("Not authenticated. Run `qc login` first.")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return output.NewSystemErrorWithCause("failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return output.NewRemoteError(&Error{Message: "request failed: " + err.Error()})
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return output.NewRemoteError(&Error{Status: resp.StatusCode, Message: "failed to read response: " + err.Error()})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return output.NewRemoteError(responseError(resp.StatusCode, respBody, planMessage))
	}

	// Acknowledgements carry no body worth decoding.
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return output.NewRemoteError(&Error{Status: resp.StatusCode, Message: "unexpected response: " + err.Error()})
	}
	return nil
}

// responseError builds an Error from a non-2xx reply.
func responseError(status int, body []byte, planMessage string) *Error {
	apiErr := &Error{Status: status, Message: fmt.Sprintf("HTTP %d", status)}

	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err != nil {
		if text := http.StatusText(status); text != "" {
			apiErr.Message += " " + text
		}
		return apiErr
	}

	apiErr.Code = envelope.Code
	switch {
	case planMessage != "" && envelope.Code == CodePlanRequired:
		apiErr.Message = planMessage
	case envelope.Error != "":
		apiErr.Message = envelope.Error
	}
	return apiErr
}

// AsError extracts the service error from err, if any.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
