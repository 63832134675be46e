// Package mcp provides a Model Context Protocol server for qc.
// It exposes read-only workspace and changeset tools so an agent can see
// how qc maps a change onto monorepo packages before committing.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/quikcommit/qc/internal/workspace"
)

// ChangeLister lists files changed against a base ref. *git.Repo satisfies it.
type ChangeLister interface {
	ChangedFilesSince(base string) ([]string, error)
}

// Repo is the repository the server answers for.
type Repo struct {
	// Root is the default workspace root for tools called without one.
	Root string
	Git  ChangeLister
	// Manifests is shared across calls so package names stay cached.
	Manifests workspace.ManifestReader
}

// NewServer creates an MCP server with all qc tools registered.
func NewServer(version string, repo *Repo) *mcp.Server {
	if repo.Manifests == nil {
		repo.Manifests = workspace.NewFileManifests(0)
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "qc",
		Version: version,
	}, nil)
	registerTools(server, repo)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// registerTools adds all qc tools to the server.
func registerTools(server *mcp.Server, repo *Repo) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "detect_workspace",
		Description: "Detect the monorepo convention (pnpm, lerna, nx, turbo, npm) at a root and return its package glob patterns.",
		Annotations: readOnlyAnnotations(),
	}, handleDetectWorkspace(repo))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_packages",
		Description: "Map file paths to workspace packages. Returns one entry per package directory with its package.json name.",
		Annotations: readOnlyAnnotations(),
	}, handleResolvePackages(repo))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "changed_packages",
		Description: "List files changed since a base ref and the workspace packages they belong to.",
		Annotations: readOnlyAnnotations(),
	}, handleChangedPackages(repo))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "auto_scope",
		Description: "Compute the conventional-commit scope qc would use for a set of files: one package name, two or three joined by commas, or none.",
		Annotations: readOnlyAnnotations(),
	}, handleAutoScope(repo))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "format_changeset",
		Description: "Render a changeset record (front matter of package bumps plus summary) without writing it.",
		Annotations: readOnlyAnnotations(),
	}, handleFormatChangeset())
}
