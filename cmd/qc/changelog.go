package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quikcommit/qc/internal/api"
	"github.com/quikcommit/qc/internal/changelog"
	"github.com/quikcommit/qc/internal/config"
	"github.com/quikcommit/qc/internal/git"
	"github.com/quikcommit/qc/internal/output"
)

// changelogOptions holds the changelog command flags.
type changelogOptions struct {
	from    string
	to      string
	version string
	write   bool
}

// newChangelogCmd creates the changelog command.
func newChangelogCmd() *cobra.Command {
	opts := &changelogOptions{}

	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "Generate a changelog section from commits since the last tag",
		Long: `Generate a changelog section from the commits between two refs.

Commits are grouped by conventional type (feat, fix, docs, style, refactor,
perf, test, chore). The section header is "## [<version>] - <date>", where
version is --version, else --to when it looks like a version tag, else
"<from>-next".

Use --write to prepend the section to CHANGELOG.md at the repository root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChangelog(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "Start ref (default: latest tag)")
	cmd.Flags().StringVar(&opts.to, "to", "HEAD", "End ref")
	cmd.Flags().StringVar(&opts.version, "version", "", "Version label for the section header")
	cmd.Flags().BoolVar(&opts.write, "write", false, "Prepend the section to CHANGELOG.md")

	return cmd
}

// runChangelog executes the changelog command.
func runChangelog(cmd *cobra.Command, opts *changelogOptions) error {
	printer := newPrinter(cmd)

	repo, root, err := openRepo()
	if err != nil {
		return fail(printer, err)
	}

	from := opts.from
	if from == "" {
		from = repo.LatestTag()
	}
	if from == "" {
		return fail(printer, output.NewUserError("No git tag found. Use --from <ref> to specify a starting point."))
	}
	if err := git.ValidateRef(from, "--from"); err != nil {
		return fail(printer, err)
	}
	if err := git.ValidateRef(opts.to, "--to"); err != nil {
		return fail(printer, err)
	}

	commits, err := repo.CommitsSince(from, opts.to)
	if err != nil {
		return fail(printer, err)
	}
	if len(commits) == 0 {
		return fail(printer, output.NewUserError(fmt.Sprintf("No commits found between %s and %s", from, opts.to)))
	}
	subjects := make([]string, 0, len(commits))
	for _, c := range commits {
		subjects = append(subjects, c.Subject)
	}

	store := config.NewStore("")
	cfg := store.Load()
	client := newAPIClient(store, cfg, "")
	if !client.HasAuth() {
		return fail(printer, output.NewUserError("Not authenticated. Run `qc login` first."))
	}

	body, err := client.GenerateChangelog(cmd.Context(), api.ChangelogRequest{
		CommitsByType: changelog.GroupByType(subjects),
		FromTag:       from,
		ToRef:         opts.to,
		Model:         modelFlag(cmd, cfg),
	})
	if err != nil {
		return fail(printer, err)
	}

	versionLabel := changelog.VersionLabel(opts.version, from, opts.to)
	entry := changelog.Entry(versionLabel, time.Now(), body)

	if !opts.write {
		if printer.IsJSON() {
			return printer.WriteJSON(map[string]any{"version": versionLabel, "entry": entry})
		}
		printer.Println(entry)
		return nil
	}

	path, err := changelog.Prepend(root, entry)
	if err != nil {
		return fail(printer, output.NewSystemErrorWithCause("failed to write changelog", err))
	}
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"version": versionLabel, "entry": entry, "path": path})
	}
	printer.Stderr("Wrote to %s\n", path)
	return nil
}
