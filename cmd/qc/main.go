// Package main provides the entry point for the qc CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/quikcommit/qc/internal/config"
	"github.com/quikcommit/qc/internal/envfile"
	"github.com/quikcommit/qc/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command. Without a subcommand it generates a
// commit message for the staged changes.
func newRootCmd() *cobra.Command {
	opts := &commitOptions{}
	cmd := &cobra.Command{
		Use:   "qc",
		Short: "Conventional commit messages, PR descriptions and changesets",
		Long: `qc - conventional commit messages for the staged changes.

Run without a subcommand to generate a message and commit:
  qc                  Generate a message and commit
  qc --message-only   Print the message only
  qc --push           Commit and push to origin

In a pnpm, lerna, nx, turbo or npm workspace the commit scope is derived
from the packages the staged files belong to.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCommit(cmd, opts)
		},
	}

	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("model", "", "Model to use (overrides config)")
	addCommitFlags(cmd, opts)

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take precedence.
//
// Resolution order:
//  1. $CWD/.env.local
//  2. $CWD/.env
//  3. <config dir>/env
func loadEnvFiles() {
	paths := []string{".env.local", ".env"}
	if dir := config.Dir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "env"))
	}
	_ = envfile.LoadAll(paths...)
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "generate", Title: "Generate Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "account", Title: "Account Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newChangesetCmd(), "generate")
	addGroupedCommand(cmd, newPRCmd(), "generate")
	addGroupedCommand(cmd, newChangelogCmd(), "generate")

	addGroupedCommand(cmd, newLoginCmd(), "account")
	addGroupedCommand(cmd, newLogoutCmd(), "account")
	addGroupedCommand(cmd, newStatusCmd(), "account")
	addGroupedCommand(cmd, newTeamCmd(), "account")
	addGroupedCommand(cmd, newUpgradeCmd(), "account")

	addGroupedCommand(cmd, newInitCmd(), "admin")
	addGroupedCommand(cmd, newConfigCmd(), "admin")
	addGroupedCommand(cmd, newServeCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
