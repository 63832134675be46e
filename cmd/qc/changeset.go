package main

import (
	"github.com/spf13/cobra"

	"github.com/quikcommit/qc/internal/changeset"
	"github.com/quikcommit/qc/internal/config"
	"github.com/quikcommit/qc/internal/git"
	"github.com/quikcommit/qc/internal/workspace"
)

// newChangesetCmd creates the changeset command.
func newChangesetCmd() *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "changeset",
		Short: "Generate a changeset record for the packages changed on this branch",
		Long: `Generate a changeset record for the workspace packages changed since a base branch.

The service suggests a major, minor or patch bump per package. Review the
suggestions, then accept them, edit them one by one, or abort:

  Accept all? [Y/n/edit] >

Accepted bumps are written to .changeset/<slug>.md at the workspace root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChangeset(cmd, base)
		},
	}

	cmd.Flags().StringVar(&base, "base", "main", "Base branch to diff against")

	return cmd
}

// runChangeset executes the changeset command.
func runChangeset(cmd *cobra.Command, base string) error {
	printer := newPrinter(cmd)

	if err := git.ValidateRef(base, "--base"); err != nil {
		return fail(printer, err)
	}
	repo, root, err := openRepo()
	if err != nil {
		return fail(printer, err)
	}

	store := config.NewStore("")
	cfg := store.Load()

	session := &changeset.Session{
		Git:        repo,
		Classifier: newAPIClient(store, cfg, ""),
		Workspace:  workspace.Detect(root),
		Manifests:  workspace.NewFileManifests(0),
		Model:      modelFlag(cmd, cfg),
		In:         cmd.InOrStdin(),
		Printer:    printer,
	}

	outcome, err := session.Run(cmd.Context(), base)
	if err != nil {
		return fail(printer, err)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(outcome)
	}
	if !outcome.Aborted {
		printer.Println("Written " + changeset.RelPath(outcome.Slug))
	}
	return nil
}
