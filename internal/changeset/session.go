package changeset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/quikcommit/qc/internal/output"
	"github.com/quikcommit/qc/internal/workspace"
)

// GitSource supplies the branch state a session classifies.
// *git.Repo satisfies it.
type GitSource interface {
	ChangedFilesSince(base string) ([]string, error)
	OneLineLogSince(base string) (string, error)
	FullDiffSince(base string) (string, error)
}

// Session runs one changeset generation, from changed files to a written
// record. The zero values of In, Printer, Manifests, Root and Slug are
// usable defaults.
type Session struct {
	Git        GitSource
	Classifier Classifier
	Workspace  *workspace.Descriptor
	Manifests  workspace.ManifestReader

	// Root holds the .changeset directory. Defaults to the workspace root.
	Root string
	// Model is passed through to the classifier.
	Model string

	In      io.Reader
	Printer *output.Printer
	Slug    func() string
}

// Outcome describes how a session ended. Path and Slug are empty when the
// operator aborted.
type Outcome struct {
	Path     string           `json:"path,omitempty"`
	Slug     string           `json:"slug,omitempty"`
	Aborted  bool             `json:"aborted"`
	Packages []Classification `json:"packages"`
	Summary  string           `json:"summary"`
}

// Run classifies the changes in base..HEAD, reviews them with the operator
// and writes the record. Failures are returned as *output.ExitError; an
// operator abort is a nil error with Outcome.Aborted set.
func (s *Session) Run(ctx context.Context, base string) (*Outcome, error) {
	if s.Workspace == nil {
		return nil, output.NewUserError("No workspace packages found. Is this a pnpm monorepo?")
	}
	p := s.printer()

	files, err := s.Git.ChangedFilesSince(base)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, output.NewUserError(fmt.Sprintf("No changes detected vs %s.", base))
	}

	packages := workspace.Resolve(files, s.Workspace, s.manifests())
	if packages.Len() == 0 {
		return nil, output.NewUserError("No workspace packages detected in changed files.")
	}

	commits, err := s.Git.OneLineLogSince(base)
	if err != nil {
		return nil, err
	}
	diff, err := s.Git.FullDiffSince(base)
	if err != nil {
		return nil, err
	}

	p.Stderr("Analyzing changes vs %s... %d commit(s), %d package(s) changed\n",
		base, countLines(commits), packages.Len())

	result, err := Classify(ctx, s.Classifier, Request{
		Diff:     diff,
		Packages: packages.Names(),
		Commits:  commits,
		Model:    s.Model,
	})
	if err != nil {
		return nil, remoteError(err)
	}
	if result == nil {
		return nil, output.NewRemoteError(errors.New("unexpected response: no changeset returned"))
	}

	list := Reconcile(result.Packages, packages.Names())
	s.display(list, result.Summary)

	review, err := RunReview(s.input(), p.Prompt, list)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to read review answer", err)
	}

	outcome := &Outcome{Packages: review.Packages(), Summary: result.Summary}
	if review.Aborted() {
		p.Stderr("Aborted.\n")
		outcome.Aborted = true
		return outcome, nil
	}

	outcome.Slug = s.slug()
	outcome.Path, err = WriteRecord(s.root(), outcome.Slug, outcome.Packages, outcome.Summary)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to write changeset", err)
	}
	return outcome, nil
}

// display prints the reconciled suggestions and the summary.
func (s *Session) display(list []Classification, summary string) {
	p := s.printer()
	if p.IsJSON() {
		return
	}
	p.Println()
	for _, c := range list {
		pad := strings.Repeat(" ", max(0, 7-len(c.Bump)))
		p.Print("  %-32s %s%s - %s\n", c.Name, p.Bump(string(c.Bump)), pad, c.Reason)
	}
	p.Println()
	p.Print("Summary: %s\n\n", summary)
}

func (s *Session) printer() *output.Printer {
	if s.Printer == nil {
		return output.Discard()
	}
	return s.Printer
}

func (s *Session) manifests() workspace.ManifestReader {
	if s.Manifests == nil {
		return workspace.NewFileManifests(0)
	}
	return s.Manifests
}

func (s *Session) input() io.Reader {
	if s.In == nil {
		return strings.NewReader("")
	}
	return s.In
}

func (s *Session) root() string {
	if s.Root == "" {
		return s.Workspace.Root
	}
	return s.Root
}

func (s *Session) slug() string {
	if s.Slug == nil {
		return GenerateSlug(nil)
	}
	return s.Slug()
}

// remoteError keeps exit codes already chosen by the classifier and marks
// anything else as a remote failure.
func remoteError(err error) error {
	var exitErr *output.ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return output.NewRemoteError(err)
}

func countLines(text string) int {
	n := 0
	for line := range strings.SplitSeq(text, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
