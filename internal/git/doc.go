// Package git wraps the git executable for the qc CLI.
//
// Every operation shells out to git and treats it as a trusted black box
// returning plain text. A Repo pins the working directory so callers and
// tests can target any checkout:
//
//	repo := git.NewRepo("")           // current directory
//	files, err := repo.ChangedFilesSince("main")
//	diff, err := repo.StagedDiff([]string{"pnpm-lock.yaml"})
//
// Failures come back as *output.ExitError values with ExitSystemError, and
// invalid refs as ExitUserError, so commands can return them unchanged.
package git
