package main

import (
	"github.com/spf13/cobra"

	"github.com/quikcommit/qc/internal/hooks"
	"github.com/quikcommit/qc/internal/output"
)

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	var uninstall bool
	var chain bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Install the prepare-commit-msg hook",
		Long: `Install a prepare-commit-msg hook that fills in the commit message when
git commit is run without one.

An existing hook that qc did not write is left alone unless --chain is
given, which moves it to prepare-commit-msg.backup and runs it first.
Use --uninstall to remove the qc hook (and restore a backed-up one).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, uninstall, chain)
		},
	}

	cmd.Flags().BoolVar(&uninstall, "uninstall", false, "Remove the qc hook")
	cmd.Flags().BoolVar(&chain, "chain", false, "Keep an existing hook and run it first")

	return cmd
}

// runInit executes the init command.
func runInit(cmd *cobra.Command, uninstall, chain bool) error {
	printer := newPrinter(cmd)

	repo, _, err := openRepo()
	if err != nil {
		return fail(printer, err)
	}
	hooksDir, err := repo.HooksDir()
	if err != nil {
		return fail(printer, err)
	}

	if uninstall {
		result, err := hooks.Uninstall(hooksDir)
		if err != nil {
			return fail(printer, err)
		}
		return printHookResult(printer, string(result), hooks.Path(hooksDir), uninstallMessages[result])
	}

	result, err := hooks.Install(hooksDir, chain)
	if err != nil {
		return fail(printer, err)
	}
	return printHookResult(printer, string(result), hooks.Path(hooksDir), installMessages[result])
}

var installMessages = map[hooks.InstallResult]string{
	hooks.Installed:        "Quikcommit hook installed. Run `git commit` without -m to generate a message.",
	hooks.InstalledChained: "Quikcommit hook installed. The existing hook was kept and runs first.",
	hooks.AlreadyInstalled: "Quikcommit hook is already installed.",
}

var uninstallMessages = map[hooks.UninstallResult]string{
	hooks.Removed:         "Quikcommit hook removed.",
	hooks.RemovedRestored: "Quikcommit hook removed. The previous hook was restored.",
	hooks.NotInstalled:    "No hook to remove.",
	hooks.NotOurs:         "Hook exists but was not installed by Quikcommit. Skipping.",
}

func printHookResult(printer *output.Printer, status, path, message string) error {
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"status": status, "path": path})
	}
	printer.Println(message)
	return nil
}
