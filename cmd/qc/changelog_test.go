package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/quikcommit/qc/internal/output"
)

// setupTaggedRepo tags the initial commit v1.0.0 and adds two commits.
func setupTaggedRepo(t *testing.T) string {
	t.Helper()
	dir := setupRepo(t)
	runGit(t, dir, "tag", "v1.0.0")
	writeFiles(t, dir, map[string]string{"a.txt": "a"})
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "feat(cli): add a")
	writeFiles(t, dir, map[string]string{"b.txt": "b"})
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "update b")
	return dir
}

func TestChangelog_PrintsEntry(t *testing.T) {
	isolateConfig(t)
	t.Setenv("QC_API_KEY", "qc_test_key")
	service := newFakeService(t, map[string]string{"/v1/changelog": `{"message": "### Features\n- add a"}`})
	dir := setupTaggedRepo(t)

	runInDir(t, dir, func() {
		stdout, stderr, err := execute(t, "", "changelog", "--json")
		if err != nil {
			t.Fatalf("command failed: %v\n%s", err, stderr)
		}
		var result map[string]any
		if err := json.Unmarshal([]byte(stdout), &result); err != nil {
			t.Fatalf("failed to parse JSON: %v\nOutput: %s", err, stdout)
		}
		if result["version"] != "1.0.0-next" {
			t.Errorf("version = %v, want 1.0.0-next", result["version"])
		}
		entry, _ := result["entry"].(string)
		if !strings.HasPrefix(entry, "## [1.0.0-next] - ") || !strings.HasSuffix(entry, "### Features\n- add a") {
			t.Errorf("entry = %q", entry)
		}
	})

	req := service.request("/v1/changelog")
	want := map[string]any{
		"feat":  []any{"feat(cli): add a"},
		"chore": []any{"update b"},
	}
	if diff := cmp.Diff(want, req["commits_by_type"]); diff != "" {
		t.Errorf("commits_by_type mismatch (-want +got):\n%s", diff)
	}
	if req["from_tag"] != "v1.0.0" || req["to_ref"] != "HEAD" {
		t.Errorf("refs = %v..%v", req["from_tag"], req["to_ref"])
	}
}

func TestChangelog_WritePrepends(t *testing.T) {
	isolateConfig(t)
	t.Setenv("QC_API_KEY", "qc_test_key")
	newFakeService(t, map[string]string{"/v1/changelog": `{"message": "- add a"}`})
	dir := setupTaggedRepo(t)
	writeFiles(t, dir, map[string]string{"CHANGELOG.md": "## [1.0.0] - 2024-01-01\n\n- first"})

	runInDir(t, dir, func() {
		if _, stderr, err := execute(t, "", "changelog", "--write", "--version", "1.1.0"); err != nil {
			t.Fatalf("command failed: %v\n%s", err, stderr)
		}
	})

	data, err := os.ReadFile(filepath.Join(dir, "CHANGELOG.md"))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "## [1.1.0] - ") {
		t.Errorf("new entry should come first: %q", content)
	}
	if !strings.HasSuffix(content, "- add a\n\n## [1.0.0] - 2024-01-01\n\n- first") {
		t.Errorf("existing content should follow after a blank line: %q", content)
	}
}

func TestChangelog_NoTag(t *testing.T) {
	isolateConfig(t)
	t.Setenv("QC_API_KEY", "qc_test_key")
	dir := setupRepo(t)

	runInDir(t, dir, func() {
		_, stderr, err := execute(t, "", "changelog")
		if got := output.GetExitCode(err); got != output.ExitUserError {
			t.Fatalf("exit code = %d, want %d", got, output.ExitUserError)
		}
		if !strings.Contains(stderr, "No git tag found") {
			t.Errorf("stderr = %q", stderr)
		}
	})
}
