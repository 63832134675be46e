package api

import (
	"context"

	"github.com/quikcommit/qc/internal/changeset"
	"github.com/quikcommit/qc/internal/config"
)

// CommitRequest asks for a commit message.
type CommitRequest struct {
	Diff    string        `json:"diff"`
	Changes string        `json:"changes"`
	Rules   *config.Rules `json:"rules,omitempty"`
	Model   string        `json:"model,omitempty"`
}

// PRRequest asks for a pull request description.
type PRRequest struct {
	Commits    []string      `json:"commits"`
	DiffStat   string        `json:"diff_stat"`
	BaseBranch string        `json:"base_branch"`
	Rules      *config.Rules `json:"rules,omitempty"`
	Model      string        `json:"model,omitempty"`
}

// ChangelogRequest asks for a changelog section.
type ChangelogRequest struct {
	CommitsByType map[string][]string `json:"commits_by_type"`
	FromTag       string              `json:"from_tag"`
	ToRef         string              `json:"to_ref"`
	Model         string              `json:"model,omitempty"`
}

type generationResponse struct {
	Message string `json:"message"`
}

// GenerateCommit returns a commit message for the staged changes.
func (c *Client) GenerateCommit(ctx context.Context, req CommitRequest) (string, error) {
	var resp generationResponse
	if err := c.post(ctx, "/v1/commit", req, &resp, ""); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// GeneratePR returns a pull request description.
func (c *Client) GeneratePR(ctx context.Context, req PRRequest) (string, error) {
	var resp generationResponse
	if err := c.post(ctx, "/v1/pr", req, &resp, PRPlanMessage); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// GenerateChangelog returns a changelog section body.
func (c *Client) GenerateChangelog(ctx context.Context, req ChangelogRequest) (string, error) {
	var resp generationResponse
	if err := c.post(ctx, "/v1/changelog", req, &resp, ChangelogPlanMessage); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// GenerateChangeset implements changeset.Classifier. Missing fields in the
// reply decode as empty, so the caller's reconciliation fills the gaps.
func (c *Client) GenerateChangeset(ctx context.Context, req changeset.Request) (*changeset.Result, error) {
	var resp changeset.Result
	if err := c.post(ctx, "/v1/changeset", req, &resp, ""); err != nil {
		return nil, err
	}
	return &resp, nil
}

var _ changeset.Classifier = (*Client)(nil)
