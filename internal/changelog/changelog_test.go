package changelog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		subject string
		want    string
	}{
		{"feat: add flag", "feat"},
		{"FIX(core): null check", "fix"},
		{"refactor(api)!: drop v0", "refactor"},
		{"perf!: faster scan", "perf"},
		{"feat:missing space", "chore"},
		{"Merge branch 'main'", "chore"},
		{"build: bump go", "chore"},
		{"", "chore"},
	}
	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			if got := ParseType(tt.subject); got != tt.want {
				t.Errorf("ParseType(%q) = %q, want %q", tt.subject, got, tt.want)
			}
		})
	}
}

func TestGroupByType(t *testing.T) {
	got := GroupByType([]string{
		"feat: a",
		"fix: b",
		"feat(cli): c",
		"update readme",
	})
	want := map[string][]string{
		"feat":  {"feat: a", "feat(cli): c"},
		"fix":   {"fix: b"},
		"chore": {"update readme"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GroupByType() mismatch (-want +got):\n%s", diff)
	}
}

func TestVersionLabel(t *testing.T) {
	tests := []struct {
		name, version, from, to, want string
	}{
		{"explicit", "2.0.0", "v1.0.0", "HEAD", "2.0.0"},
		{"tag target", "", "v1.0.0", "v1.1.0", "1.1.0"},
		{"bare numeric target", "", "v1.0.0", "1.2.0", "1.2.0"},
		{"head target", "", "v1.0.0", "HEAD", "1.0.0-next"},
		{"branch target", "", "1.0.0", "main", "1.0.0-next"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VersionLabel(tt.version, tt.from, tt.to); got != tt.want {
				t.Errorf("VersionLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEntry(t *testing.T) {
	date := time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)
	got := Entry("1.1.0", date, "### Features\n- a")
	want := "## [1.1.0] - 2026-03-04\n\n### Features\n- a"
	if got != want {
		t.Errorf("Entry() = %q, want %q", got, want)
	}
}

func TestPrepend(t *testing.T) {
	root := t.TempDir()

	path, err := Prepend(root, "## [1.0.0] - 2026-01-01\n\nfirst")
	if err != nil {
		t.Fatalf("Prepend() error = %v", err)
	}
	if path != filepath.Join(root, FileName) {
		t.Errorf("path = %q", path)
	}

	if _, err := Prepend(root, "## [1.1.0] - 2026-02-01\n\nsecond"); err != nil {
		t.Fatalf("Prepend() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "## [1.1.0] - 2026-02-01\n\nsecond\n\n## [1.0.0] - 2026-01-01\n\nfirst"
	if string(data) != want {
		t.Errorf("CHANGELOG.md = %q, want %q", data, want)
	}
}
