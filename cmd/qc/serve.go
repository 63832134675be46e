package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	qcmcp "github.com/quikcommit/qc/internal/mcp"
	"github.com/quikcommit/qc/internal/workspace"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run qc as a Model Context Protocol (MCP) server over stdio.

This exposes read-only workspace and changeset tools to MCP-capable agents.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "qc": {
        "command": "qc",
        "args": ["serve"]
      }
    }
  }

Available tools: detect_workspace, resolve_packages, changed_packages,
auto_scope, format_changeset`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, root, err := openRepo()
			if err != nil {
				return err
			}
			return newMCPServer(repo, root).Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}

// newMCPServer builds the MCP server for the repository at root.
func newMCPServer(repo qcmcp.ChangeLister, root string) *mcp.Server {
	return qcmcp.NewServer(buildVersion(), &qcmcp.Repo{
		Root:      root,
		Git:       repo,
		Manifests: workspace.NewFileManifests(0),
	})
}
