package git

import (
	"context"

	"github.com/quikcommit/qc/internal/output"
)

// ChangedFilesSince lists repository-relative paths changed in base..HEAD.
func (r *Repo) ChangedFilesSince(base string) ([]string, error) {
	if err := ValidateRef(base, "base"); err != nil {
		return nil, err
	}
	out, err := r.Run(context.Background(), "diff", base+"..HEAD", "--name-only")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// OneLineLogSince returns `git log --oneline` for base..HEAD, capped at 200 commits.
func (r *Repo) OneLineLogSince(base string) (string, error) {
	if err := ValidateRef(base, "base"); err != nil {
		return "", err
	}
	return r.Run(context.Background(), "log", base+"..HEAD", "--oneline", "--max-count=200")
}

// FullDiffSince returns the complete patch for base..HEAD.
func (r *Repo) FullDiffSince(base string) (string, error) {
	if err := ValidateRef(base, "base"); err != nil {
		return "", err
	}
	return r.runRaw(context.Background(), "diff", base+"..HEAD")
}

// DiffStat returns `git diff --stat` for base..HEAD.
func (r *Repo) DiffStat(base string) (string, error) {
	if err := ValidateRef(base, "base"); err != nil {
		return "", err
	}
	return r.runRaw(context.Background(), "diff", base+"..HEAD", "--stat")
}

// StagedDiff returns the staged patch, excluding the given pathspec patterns.
func (r *Repo) StagedDiff(excludes []string) (string, error) {
	args := []string{"diff", "--cached"}
	if len(excludes) > 0 {
		args = append(args, "--", ".")
		for _, pattern := range excludes {
			args = append(args, ":(exclude)"+pattern)
		}
	}
	out, err := r.runRaw(context.Background(), args...)
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to read staged diff", err)
	}
	return out, nil
}

// StagedFiles lists staged paths relative to the repository root.
func (r *Repo) StagedFiles() ([]string, error) {
	out, err := r.Run(context.Background(), "diff", "--cached", "--name-only")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// HasStagedChanges reports whether anything is staged.
func (r *Repo) HasStagedChanges() bool {
	files, err := r.StagedFiles()
	return err == nil && len(files) > 0
}
