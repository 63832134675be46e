package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quikcommit/qc/internal/api"
	"github.com/quikcommit/qc/internal/config"
	"github.com/quikcommit/qc/internal/git"
	"github.com/quikcommit/qc/internal/output"
)

// maxTitleLen bounds a PR title taken from a description without a
// non-empty line.
const maxTitleLen = 72

// newPRCmd creates the pr command.
func newPRCmd() *cobra.Command {
	var base string
	var create bool

	cmd := &cobra.Command{
		Use:   "pr",
		Short: "Generate a pull request description from branch commits",
		Long: `Generate a pull request description from the commits on this branch.

Use --create to open the pull request with the GitHub CLI (gh). The first
non-empty line of the description becomes the title.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPR(cmd, base, create)
		},
	}

	cmd.Flags().StringVar(&base, "base", "main", "Base branch to compare against")
	cmd.Flags().BoolVar(&create, "create", false, "Create the pull request with gh")

	return cmd
}

// runPR executes the pr command.
func runPR(cmd *cobra.Command, base string, create bool) error {
	printer := newPrinter(cmd)

	if err := git.ValidateRef(base, "--base"); err != nil {
		return fail(printer, err)
	}
	repo, _, err := openRepo()
	if err != nil {
		return fail(printer, err)
	}

	commits, err := repo.BranchCommits(base)
	if err != nil {
		return fail(printer, err)
	}
	if len(commits) == 0 {
		return fail(printer, output.NewUserError(fmt.Sprintf("No commits found on this branch vs %s", base)))
	}
	diffStat, err := repo.DiffStat(base)
	if err != nil {
		return fail(printer, err)
	}

	store := config.NewStore("")
	cfg := store.Load()
	client := newAPIClient(store, cfg, "")
	if !client.HasAuth() {
		return fail(printer, output.NewUserError("Not authenticated. Run `qc login` first."))
	}

	printer.Stderr("Generating PR description from %d commits...\n", len(commits))
	description, err := client.GeneratePR(cmd.Context(), api.PRRequest{
		Commits:    commits,
		DiffStat:   diffStat,
		BaseBranch: base,
		Model:      modelFlag(cmd, cfg),
	})
	if err != nil {
		return fail(printer, err)
	}

	title := prTitle(description)
	if printer.IsJSON() {
		if err := printer.WriteJSON(map[string]any{"title": title, "body": description, "base": base}); err != nil {
			return err
		}
	} else {
		printer.Print("\n%s\n\n", description)
	}

	if !create {
		return nil
	}
	if err := createPR(cmd, title, description); err != nil {
		return fail(printer, err)
	}
	return nil
}

// prTitle returns the first non-empty line of the description, or its
// first characters when every line is blank.
func prTitle(description string) string {
	for line := range strings.SplitSeq(description, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	if len(description) > maxTitleLen {
		description = description[:maxTitleLen]
	}
	return strings.TrimSpace(description)
}

// createPR runs gh pr create with the terminal attached.
func createPR(cmd *cobra.Command, title, body string) error {
	gh := exec.CommandContext(cmd.Context(), "gh", "pr", "create", "--title", title, "--body", body)
	gh.Stdin = os.Stdin
	gh.Stdout = cmd.ErrOrStderr()
	gh.Stderr = cmd.ErrOrStderr()
	if err := gh.Run(); err != nil {
		return output.NewSystemErrorWithCause("`gh` CLI not found or failed. Install from https://cli.github.com/", err)
	}
	return nil
}
