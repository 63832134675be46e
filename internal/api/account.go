package api

import (
	"context"

	"github.com/quikcommit/qc/internal/config"
)

// Usage is the account's consumption for the current period.
type Usage struct {
	Plan        string `json:"plan"`
	CommitCount int    `json:"commit_count"`
	Limit       int    `json:"limit"`
	Remaining   int    `json:"remaining"`
}

// Free plan defaults used when the service omits fields.
const (
	defaultPlan  = "free"
	defaultLimit = 50
)

// TeamRules returns the commit rules shared by the caller's team.
func (c *Client) TeamRules(ctx context.Context) (*config.Rules, error) {
	var rules config.Rules
	if err := c.get(ctx, "/v1/team/rules", &rules); err != nil {
		return nil, err
	}
	return rules.Sanitize(), nil
}

// Usage returns the account's plan and remaining quota.
func (c *Client) Usage(ctx context.Context) (*Usage, error) {
	var raw struct {
		Plan        *string `json:"plan"`
		CommitCount *int    `json:"commit_count"`
		Limit       *int    `json:"limit"`
		Remaining   *int    `json:"remaining"`
	}
	if err := c.get(ctx, "/v1/usage", &raw); err != nil {
		return nil, err
	}
	return &Usage{
		Plan:        valueOr(raw.Plan, defaultPlan),
		CommitCount: valueOr(raw.CommitCount, 0),
		Limit:       valueOr(raw.Limit, defaultLimit),
		Remaining:   valueOr(raw.Remaining, defaultLimit),
	}, nil
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
