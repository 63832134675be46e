package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// runInDir runs testFunc with the working directory set to dir.
func runInDir(t *testing.T, dir string, testFunc func()) {
	t.Helper()
	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working dir: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir to %s: %v", dir, err)
	}
	defer func() {
		if err := os.Chdir(oldDir); err != nil {
			t.Errorf("failed to restore dir: %v", err)
		}
	}()
	testFunc()
}

// runGit runs a git command in the given directory.
func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.CommandContext(context.Background(), "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\nOutput: %s", args, err, out)
	}
}

// runGitOutput runs a git command and returns trimmed stdout.
func runGitOutput(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.CommandContext(context.Background(), "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("git %v failed: %v", args, err)
	}
	return strings.TrimSpace(string(out))
}

// writeFiles creates files under root, making parent directories.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

// isolateConfig points the config directory at a temp dir and clears the
// environment variables qc reads.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("QC_CONFIG_HOME", dir)
	t.Setenv("QC_API_KEY", "")
	t.Setenv("QC_API_URL", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	return dir
}

// setupRepo creates a repository on branch main with one commit, laid out
// as a pnpm workspace with a named cli package.
func setupRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@test.com")
	runGit(t, dir, "config", "user.name", "Test User")
	runGit(t, dir, "config", "commit.gpgsign", "false")
	writeFiles(t, dir, map[string]string{
		"pnpm-workspace.yaml":       "packages:\n  - 'packages/*'\n",
		"packages/cli/package.json": `{"name": "@acme/cli"}`,
		"README.md":                 "# acme\n",
	})
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "chore: initial commit")
	runGit(t, dir, "branch", "-M", "main")
	return dir
}

// fakeService is an in-process stand-in for the hosted generation service.
type fakeService struct {
	t         *testing.T
	mu        sync.Mutex
	responses map[string]string
	statuses  map[string]int
	requests  map[string][]byte
	auth      string
}

// newFakeService starts a server answering each path with its canned JSON
// body and points QC_API_URL at it. Unknown paths get 404.
func newFakeService(t *testing.T, responses map[string]string) *fakeService {
	t.Helper()
	fs := &fakeService{
		t:         t,
		responses: responses,
		statuses:  map[string]int{},
		requests:  map[string][]byte{},
	}
	server := httptest.NewServer(http.HandlerFunc(fs.handle))
	t.Cleanup(server.Close)
	t.Setenv("QC_API_URL", server.URL)
	return fs
}

func (fs *fakeService) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	fs.mu.Lock()
	fs.requests[r.URL.Path] = body
	fs.auth = r.Header.Get("Authorization")
	resp, ok := fs.responses[r.URL.Path]
	status := fs.statuses[r.URL.Path]
	fs.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
		return
	}
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(resp))
}

// request decodes the last body sent to path.
func (fs *fakeService) request(path string) map[string]any {
	fs.t.Helper()
	fs.mu.Lock()
	body, ok := fs.requests[path]
	fs.mu.Unlock()
	if !ok {
		fs.t.Fatalf("no request to %s", path)
	}
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		fs.t.Fatalf("request to %s is not JSON: %v\n%s", path, err, body)
	}
	return decoded
}

func (fs *fakeService) called(path string) bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	_, ok := fs.requests[path]
	return ok
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
