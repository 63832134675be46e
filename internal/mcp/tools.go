package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/quikcommit/qc/internal/changeset"
	"github.com/quikcommit/qc/internal/workspace"
)

// errNoWorkspace is returned by tools that need a detected workspace.
var errNoWorkspace = errors.New("no workspace detected: expected pnpm-workspace.yaml, lerna.json, nx.json, turbo.json or package.json workspaces")

// --- Shared types ---

// PackageRef is a resolved package.
type PackageRef struct {
	Dir  string `json:"dir"  jsonschema:"package directory name"`
	Name string `json:"name" jsonschema:"package.json name, or the directory name"`
}

func (r *Repo) detect(root string) (*workspace.Descriptor, error) {
	if root == "" {
		root = r.Root
	}
	d := workspace.Detect(root)
	if d == nil {
		return nil, errNoWorkspace
	}
	return d, nil
}

func (r *Repo) resolve(files []string, d *workspace.Descriptor) []PackageRef {
	set := workspace.Resolve(files, d, r.Manifests)
	refs := make([]PackageRef, 0, set.Len())
	for _, dir := range set.Dirs() {
		name, _ := set.Name(dir)
		refs = append(refs, PackageRef{Dir: dir, Name: name})
	}
	return refs
}

// --- detect_workspace ---

// DetectInput is the input for the detect_workspace tool.
type DetectInput struct {
	Root string `json:"root,omitempty" jsonschema:"workspace root (default: repository root)"`
}

// DetectOutput is the output for the detect_workspace tool.
type DetectOutput struct {
	Detected bool     `json:"detected"           jsonschema:"whether a workspace convention was found"`
	Kind     string   `json:"kind,omitempty"     jsonschema:"pnpm, lerna, nx, turbo or npm"`
	Patterns []string `json:"patterns,omitempty" jsonschema:"package glob patterns in priority order"`
	Root     string   `json:"root"               jsonschema:"root that was inspected"`
}

func handleDetectWorkspace(repo *Repo) mcp.ToolHandlerFor[DetectInput, DetectOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input DetectInput) (*mcp.CallToolResult, DetectOutput, error) {
		root := input.Root
		if root == "" {
			root = repo.Root
		}
		d := workspace.Detect(root)
		if d == nil {
			return nil, DetectOutput{Root: root}, nil
		}
		return nil, DetectOutput{Detected: true, Kind: string(d.Kind), Patterns: d.Patterns, Root: d.Root}, nil
	}
}

// --- resolve_packages ---

// ResolveInput is the input for the resolve_packages tool.
type ResolveInput struct {
	Files []string `json:"files"          jsonschema:"file paths, relative to the root or absolute"`
	Root  string   `json:"root,omitempty" jsonschema:"workspace root (default: repository root)"`
}

// ResolveOutput is the output for the resolve_packages tool.
type ResolveOutput struct {
	Packages []PackageRef `json:"packages" jsonschema:"packages touched, in first-seen order"`
}

func handleResolvePackages(repo *Repo) mcp.ToolHandlerFor[ResolveInput, ResolveOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ResolveInput) (*mcp.CallToolResult, ResolveOutput, error) {
		d, err := repo.detect(input.Root)
		if err != nil {
			return nil, ResolveOutput{}, err
		}
		return nil, ResolveOutput{Packages: repo.resolve(input.Files, d)}, nil
	}
}

// --- changed_packages ---

// ChangedInput is the input for the changed_packages tool.
type ChangedInput struct {
	Base string `json:"base,omitempty" jsonschema:"base ref to diff against (default main)"`
}

// ChangedOutput is the output for the changed_packages tool.
type ChangedOutput struct {
	Base     string       `json:"base"     jsonschema:"base ref used"`
	Files    []string     `json:"files"    jsonschema:"files changed in base..HEAD"`
	Packages []PackageRef `json:"packages" jsonschema:"packages those files belong to"`
}

func handleChangedPackages(repo *Repo) mcp.ToolHandlerFor[ChangedInput, ChangedOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ChangedInput) (*mcp.CallToolResult, ChangedOutput, error) {
		base := input.Base
		if base == "" {
			base = "main"
		}
		d, err := repo.detect("")
		if err != nil {
			return nil, ChangedOutput{}, err
		}
		files, err := repo.Git.ChangedFilesSince(base)
		if err != nil {
			return nil, ChangedOutput{}, fmt.Errorf("listing changes since %s: %w", base, err)
		}
		return nil, ChangedOutput{Base: base, Files: files, Packages: repo.resolve(files, d)}, nil
	}
}

// --- auto_scope ---

// ScopeInput is the input for the auto_scope tool.
type ScopeInput struct {
	Files []string `json:"files"          jsonschema:"staged file paths"`
	Root  string   `json:"root,omitempty" jsonschema:"workspace root (default: repository root)"`
}

// ScopeOutput is the output for the auto_scope tool.
type ScopeOutput struct {
	Scope    string   `json:"scope,omitempty" jsonschema:"scope to use, empty for none"`
	Packages []string `json:"packages"        jsonschema:"distinct package directories touched"`
	Skipped  bool     `json:"skipped"         jsonschema:"true when too many packages are touched for a useful scope"`
}

func handleAutoScope(repo *Repo) mcp.ToolHandlerFor[ScopeInput, ScopeOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ScopeInput) (*mcp.CallToolResult, ScopeOutput, error) {
		d, err := repo.detect(input.Root)
		if err != nil {
			return nil, ScopeOutput{}, err
		}
		result := workspace.AggregateScope(input.Files, d)
		packages := result.Packages
		if packages == nil {
			packages = []string{}
		}
		return nil, ScopeOutput{Scope: result.Scope, Packages: packages, Skipped: result.Skipped()}, nil
	}
}

// --- format_changeset ---

// BumpInput is one package bump for format_changeset.
type BumpInput struct {
	Name string `json:"name" jsonschema:"package name"`
	Bump string `json:"bump" jsonschema:"major, minor or patch"`
}

// FormatInput is the input for the format_changeset tool.
type FormatInput struct {
	Packages []BumpInput `json:"packages" jsonschema:"package bumps in record order"`
	Summary  string      `json:"summary"  jsonschema:"changeset summary text"`
}

// FormatOutput is the output for the format_changeset tool.
type FormatOutput struct {
	Content string `json:"content" jsonschema:"record file content"`
}

func handleFormatChangeset() mcp.ToolHandlerFor[FormatInput, FormatOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input FormatInput) (*mcp.CallToolResult, FormatOutput, error) {
		if len(input.Packages) == 0 {
			return nil, FormatOutput{}, errors.New("at least one package is required")
		}
		list := make([]changeset.Classification, 0, len(input.Packages))
		for _, pkg := range input.Packages {
			bump, ok := changeset.ParseBump(pkg.Bump)
			if !ok {
				return nil, FormatOutput{}, fmt.Errorf("package %q: bump must be major, minor or patch, got %q", pkg.Name, pkg.Bump)
			}
			if pkg.Name == "" {
				return nil, FormatOutput{}, errors.New("package name is required")
			}
			list = append(list, changeset.Classification{Name: pkg.Name, Bump: bump})
		}
		return nil, FormatOutput{Content: changeset.FormatFile(list, input.Summary)}, nil
	}
}
