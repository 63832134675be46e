package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/quikcommit/qc/internal/output"
)

// Commit is a commit hash and subject line.
type Commit struct {
	Hash    string
	Subject string
}

// maxLogCount bounds how many commits are sent to the generator.
const maxLogCount = "--max-count=1000"

// BranchCommits returns commit subjects in base..HEAD, newest first.
func (r *Repo) BranchCommits(base string) ([]string, error) {
	if err := ValidateRef(base, "base"); err != nil {
		return nil, err
	}
	out, err := r.Run(context.Background(), "log", base+"..HEAD", "--format=%s", maxLogCount)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// CommitsSince returns the commits in from..to.
func (r *Repo) CommitsSince(from, to string) ([]Commit, error) {
	if err := ValidateRef(from, "from ref"); err != nil {
		return nil, err
	}
	if err := ValidateRef(to, "to ref"); err != nil {
		return nil, err
	}
	out, err := r.Run(context.Background(), "log", from+".."+to, "--format=%H %s", maxLogCount)
	if err != nil {
		return nil, err
	}

	lines := splitLines(out)
	commits := make([]Commit, 0, len(lines))
	for _, line := range lines {
		hash, subject, _ := strings.Cut(line, " ")
		commits = append(commits, Commit{Hash: hash, Subject: strings.TrimSpace(subject)})
	}
	return commits, nil
}

// LatestTag returns the most recent reachable tag, or "" when there is none.
func (r *Repo) LatestTag() string {
	tag, err := r.Run(context.Background(), "describe", "--tags", "--abbrev=0")
	if err != nil {
		return ""
	}
	return tag
}

// Commit records the staged changes with message. The message goes through
// a private temp file so it never appears on a command line.
func (r *Repo) Commit(message string) error {
	tmpDir, err := os.MkdirTemp("", "qc-")
	if err != nil {
		return output.NewSystemErrorWithCause("failed to create temp dir", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	msgFile := filepath.Join(tmpDir, "commit.txt")
	if err := os.WriteFile(msgFile, []byte(message), 0o600); err != nil {
		return output.NewSystemErrorWithCause("failed to write commit message", err)
	}
	return r.runAttached("commit", "-F", msgFile)
}

// Push pushes the current branch to its upstream.
func (r *Repo) Push() error {
	return r.runAttached("push")
}

// runAttached runs git with the terminal attached so hooks and credential
// prompts stay interactive.
func (r *Repo) runAttached(args ...string) error {
	cmd := exec.CommandContext(context.Background(), "git", args...)
	cmd.Dir = r.dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return output.NewSystemErrorWithCause("git "+args[0]+" failed", err)
	}
	return nil
}
