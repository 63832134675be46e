package changeset

import (
	"context"
	"strings"
)

// Bump is a semantic-versioning change magnitude.
type Bump string

// Bump levels.
const (
	Major Bump = "major"
	Minor Bump = "minor"
	Patch Bump = "patch"
)

// ParseBump parses a bump level, ignoring case and surrounding space.
func ParseBump(s string) (Bump, bool) {
	switch b := Bump(strings.ToLower(strings.TrimSpace(s))); b {
	case Major, Minor, Patch:
		return b, true
	default:
		return "", false
	}
}

// Classification is the suggested bump for one package.
type Classification struct {
	Name   string `json:"name"`
	Bump   Bump   `json:"bump"`
	Reason string `json:"reason"`
}

// Request is what a Classifier receives.
type Request struct {
	Diff     string   `json:"diff"`
	Packages []string `json:"packages"`
	Commits  string   `json:"commits"`
	Model    string   `json:"model,omitempty"`
}

// Result is what a Classifier returns.
type Result struct {
	Packages []Classification `json:"packages"`
	Summary  string           `json:"summary"`
}

// Classifier suggests bump levels for changed packages.
type Classifier interface {
	GenerateChangeset(ctx context.Context, req Request) (*Result, error)
}
