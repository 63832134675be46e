package changeset

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func reviewList() []Classification {
	return []Classification{
		{Name: "@x/cli", Bump: Minor, Reason: "flag"},
		{Name: "@x/core", Bump: Patch, Reason: "fix"},
	}
}

func TestReview_TopLevel(t *testing.T) {
	tests := []struct {
		answer      string
		wantAborted bool
	}{
		{"", false},
		{"y", false},
		{"Y", false},
		{"yes please", false},
		{"n", true},
		{" N ", true},
		{"no", false},
	}
	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			r := NewReview(reviewList()).Step(tt.answer)
			if !r.Done() {
				t.Fatal("Done() = false after top-level answer")
			}
			if r.Aborted() != tt.wantAborted {
				t.Errorf("Aborted() = %v, want %v", r.Aborted(), tt.wantAborted)
			}
			if diff := cmp.Diff(reviewList(), r.Packages()); diff != "" {
				t.Errorf("Packages() changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReview_Edit(t *testing.T) {
	r := NewReview(reviewList())
	if r.Prompt() != AcceptPrompt {
		t.Errorf("Prompt() = %q", r.Prompt())
	}

	r = r.Step("EDIT")
	if r.Done() {
		t.Fatal("Done() after edit")
	}
	if want := "  @x/cli [minor]: major/minor/patch? > "; r.Prompt() != want {
		t.Errorf("Prompt() = %q, want %q", r.Prompt(), want)
	}

	before := r
	r = r.Step("Major")
	if got := before.Packages()[0].Bump; got != Minor {
		t.Errorf("Step modified the previous state: bump = %q", got)
	}

	r = r.Step("sideways")
	if !r.Done() || r.Aborted() {
		t.Fatalf("Done() = %v, Aborted() = %v", r.Done(), r.Aborted())
	}
	want := []Classification{
		{Name: "@x/cli", Bump: Major, Reason: "flag"},
		{Name: "@x/core", Bump: Patch, Reason: "fix"},
	}
	if diff := cmp.Diff(want, r.Packages()); diff != "" {
		t.Errorf("Packages() mismatch (-want +got):\n%s", diff)
	}
	if r.Prompt() != "" {
		t.Errorf("Prompt() when done = %q", r.Prompt())
	}
}

func TestReview_EditEmptyList(t *testing.T) {
	r := NewReview(nil).Step("edit")
	if !r.Done() {
		t.Error("editing an empty list should finish immediately")
	}
}

func TestRunReview(t *testing.T) {
	var prompts []string
	ask := func(p string) { prompts = append(prompts, p) }

	r, err := RunReview(strings.NewReader("edit\n\nmajor\n"), ask, reviewList())
	if err != nil {
		t.Fatalf("RunReview() error = %v", err)
	}
	if len(prompts) != 3 {
		t.Errorf("prompts = %q, want 3", prompts)
	}
	if got := r.Packages()[1].Bump; got != Major {
		t.Errorf("core bump = %q, want major", got)
	}
	if got := r.Packages()[0].Bump; got != Minor {
		t.Errorf("cli bump = %q, want minor", got)
	}
}

func TestRunReview_EOFAccepts(t *testing.T) {
	r, err := RunReview(strings.NewReader(""), func(string) {}, reviewList())
	if err != nil {
		t.Fatalf("RunReview() error = %v", err)
	}
	if !r.Done() || r.Aborted() {
		t.Errorf("Done() = %v, Aborted() = %v", r.Done(), r.Aborted())
	}
}

func TestRunReview_EOFWhileEditing(t *testing.T) {
	r, err := RunReview(strings.NewReader("edit\npatch"), func(string) {}, reviewList())
	if err != nil {
		t.Fatalf("RunReview() error = %v", err)
	}
	want := []Classification{
		{Name: "@x/cli", Bump: Patch, Reason: "flag"},
		{Name: "@x/core", Bump: Patch, Reason: "fix"},
	}
	if diff := cmp.Diff(want, r.Packages()); diff != "" {
		t.Errorf("Packages() mismatch (-want +got):\n%s", diff)
	}
}
