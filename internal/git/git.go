package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/quikcommit/qc/internal/output"
)

// Repo runs git commands inside a working directory.
type Repo struct {
	dir string
}

// NewRepo returns a Repo for dir. An empty dir means the process working directory.
func NewRepo(dir string) *Repo {
	return &Repo{dir: dir}
}

// Run executes git in the current directory and returns trimmed stdout.
func Run(args ...string) (string, error) {
	return NewRepo("").Run(context.Background(), args...)
}

// Run executes git with the given arguments and returns trimmed stdout.
func (r *Repo) Run(ctx context.Context, args ...string) (string, error) {
	out, err := r.runRaw(ctx, args...)
	return strings.TrimSpace(out), err
}

// runRaw executes git and returns stdout untouched (diffs keep trailing newlines).
func (r *Repo) runRaw(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", output.NewSystemError("git not found: ensure git is installed and in PATH")
		}
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return "", output.NewSystemErrorWithCause("git command failed: "+errMsg, err)
	}
	return stdout.String(), nil
}

// IsRepo reports whether the directory is inside a git work tree.
func (r *Repo) IsRepo() bool {
	out, err := r.Run(context.Background(), "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// Root returns the top-level directory of the repository.
func (r *Repo) Root() (string, error) {
	root, err := r.Run(context.Background(), "rev-parse", "--show-toplevel")
	if err != nil {
		return "", output.NewSystemErrorWithCause("not in a git repository", err)
	}
	return root, nil
}

// HooksDir returns the hooks directory, honouring core.hooksPath and worktrees.
func (r *Repo) HooksDir() (string, error) {
	dir, err := r.Run(context.Background(), "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", output.NewSystemErrorWithCause("not in a git repository", err)
	}
	return dir, nil
}

// CurrentBranch returns the abbreviated name of HEAD.
func (r *Repo) CurrentBranch() (string, error) {
	branch, err := r.Run(context.Background(), "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to get current branch", err)
	}
	return branch, nil
}

// safeRef allows characters valid in branch names, tags and SHA prefixes.
var safeRef = regexp.MustCompile(`^[a-zA-Z0-9._\-/~:^@]+$`)

// ValidateRef rejects refs that could be interpreted as options or contain
// shell-hostile characters. name labels the ref in the error message.
func ValidateRef(ref, name string) error {
	if ref == "" || !safeRef.MatchString(ref) || strings.HasPrefix(ref, "-") {
		return output.NewUserError(fmt.Sprintf("invalid git ref %s: %q", name, ref))
	}
	return nil
}

// splitLines splits command output into non-empty lines.
func splitLines(out string) []string {
	var lines []string
	for line := range strings.SplitSeq(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
