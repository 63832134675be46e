// Package hooks installs and removes the prepare-commit-msg hook that fills
// in generated commit messages.
package hooks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quikcommit/qc/internal/output"
)

// Name is the git hook qc installs.
const Name = "prepare-commit-msg"

// Marker identifies hooks written by qc.
const Marker = "Quikcommit"

const backupSuffix = ".backup"

// Status describes the hook file in a hooks directory.
type Status struct {
	Exists    bool
	Installed bool // the hook is ours
	Chained   bool // ours, and it runs a backed-up hook first
	HasBackup bool
}

// Path returns the hook path inside hooksDir.
func Path(hooksDir string) string {
	return filepath.Join(hooksDir, Name)
}

// Check inspects the hook in hooksDir.
func Check(hooksDir string) Status {
	hookPath := Path(hooksDir)
	status := Status{HasBackup: exists(hookPath + backupSuffix)}

	content, err := os.ReadFile(hookPath)
	if err != nil {
		return status
	}
	status.Exists = true
	if strings.Contains(string(content), Marker) {
		status.Installed = true
		status.Chained = strings.Contains(string(content), backupSuffix)
	}
	return status
}

const scriptHeader = `#!/bin/sh
# Quikcommit - auto-generate commit messages
# Installed by: qc init
# Remove with: qc init --uninstall

COMMIT_MSG_FILE="$1"
COMMIT_SOURCE="$2"
`

const scriptChain = `
# Run the hook that was here before qc init
HOOK_DIR=$(dirname "$0")
if [ -x "$HOOK_DIR/prepare-commit-msg.backup" ]; then
  "$HOOK_DIR/prepare-commit-msg.backup" "$@" || exit $?
fi
`

const scriptBody = `
# Skip if message was provided via -m, merge, squash, etc.
if [ -n "$COMMIT_SOURCE" ]; then
  exit 0
fi

# Skip if message file already has content (excluding comments)
if [ -n "$(grep -v '^#' "$COMMIT_MSG_FILE" 2>/dev/null | grep -v '^$')" ]; then
  exit 0
fi

MSG=$(qc --message-only --hook-mode 2>/dev/null)
if [ $? -eq 0 ] && [ -n "$MSG" ]; then
  printf '%s\n' "$MSG" > "$COMMIT_MSG_FILE"
fi
`

// Script returns the hook script. With chain, a backed-up hook runs first.
func Script(chain bool) string {
	if chain {
		return scriptHeader + scriptChain + scriptBody
	}
	return scriptHeader + scriptBody
}

// InstallResult reports what Install did.
type InstallResult string

// Install outcomes.
const (
	Installed        InstallResult = "installed"
	InstalledChained InstallResult = "installed-chained"
	AlreadyInstalled InstallResult = "already-installed"
)

// Install writes the hook into hooksDir. A hook that is not ours is a
// conflict unless chain is set, in which case it is moved aside to
// prepare-commit-msg.backup and run before ours.
func Install(hooksDir string, chain bool) (InstallResult, error) {
	status := Check(hooksDir)
	if status.Installed {
		return AlreadyInstalled, nil
	}

	hookPath := Path(hooksDir)
	result := Installed
	if status.Exists {
		if !chain {
			return "", output.NewConflictError(
				"A prepare-commit-msg hook already exists. Use --chain to keep it, --uninstall first, or merge manually.")
		}
		if status.HasBackup {
			return "", output.NewConflictError(
				fmt.Sprintf("%s already exists; refusing to overwrite it", hookPath+backupSuffix))
		}
		if err := os.Rename(hookPath, hookPath+backupSuffix); err != nil {
			return "", output.NewSystemErrorWithCause("failed to backup existing hook", err)
		}
		result = InstalledChained
	}

	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return "", output.NewSystemErrorWithCause("failed to create hooks directory", err)
	}
	//nolint:gosec // hooks must be executable
	if err := os.WriteFile(hookPath, []byte(Script(result == InstalledChained)), 0o755); err != nil {
		return "", output.NewSystemErrorWithCause("failed to write hook", err)
	}
	// WriteFile keeps the mode of an existing file and is subject to umask.
	if err := os.Chmod(hookPath, 0o755); err != nil {
		return "", output.NewSystemErrorWithCause("failed to make hook executable", err)
	}
	return result, nil
}

// UninstallResult reports what Uninstall did.
type UninstallResult string

// Uninstall outcomes.
const (
	Removed         UninstallResult = "removed"
	RemovedRestored UninstallResult = "removed-restored"
	NotInstalled    UninstallResult = "not-installed"
	NotOurs         UninstallResult = "not-ours"
)

// Uninstall removes our hook and restores a backed-up one. Hooks written
// by anything else are left alone.
func Uninstall(hooksDir string) (UninstallResult, error) {
	status := Check(hooksDir)
	switch {
	case !status.Exists:
		return NotInstalled, nil
	case !status.Installed:
		return NotOurs, nil
	}

	hookPath := Path(hooksDir)
	if err := os.Remove(hookPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", output.NewSystemErrorWithCause("failed to remove hook", err)
	}
	if !status.HasBackup {
		return Removed, nil
	}
	if err := os.Rename(hookPath+backupSuffix, hookPath); err != nil {
		return "", output.NewSystemErrorWithCause("failed to restore backed-up hook", err)
	}
	return RemovedRestored, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
