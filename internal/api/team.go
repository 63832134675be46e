package api

import (
	"context"

	"github.com/quikcommit/qc/internal/config"
)

// Team is the organisation the API key belongs to.
type Team struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Plan        string       `json:"plan"`
	MemberCount int          `json:"member_count"`
	Members     []TeamMember `json:"members"`
}

// TeamMember is one seat on a team. Name is empty when the member never set one.
type TeamMember struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// DisplayName is the member's name, or the email when no name is set.
func (m TeamMember) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.Email
}

// Team returns the caller's team and its members.
func (c *Client) Team(ctx context.Context) (*Team, error) {
	var team Team
	if err := c.get(ctx, "/v1/team", &team); err != nil {
		return nil, err
	}
	return &team, nil
}

// PushTeamRules replaces the team's shared commit rules.
func (c *Client) PushTeamRules(ctx context.Context, rules *config.Rules) error {
	return c.put(ctx, "/v1/team/rules", rules.Sanitize(), nil)
}

// InviteTeamMember sends a team invitation to email.
func (c *Client) InviteTeamMember(ctx context.Context, email string) error {
	return c.post(ctx, "/v1/team/invite", map[string]string{"email": email}, nil, "")
}
