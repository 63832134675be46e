package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quikcommit/qc/internal/config"
	"github.com/quikcommit/qc/internal/output"
)

func TestLoginLogout(t *testing.T) {
	dir := isolateConfig(t)

	stdout, _, err := execute(t, "", "login", "--api-key", "qc_live_abcd")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !strings.Contains(stdout, "Successfully logged in!") {
		t.Errorf("stdout = %q", stdout)
	}
	if got := config.NewStore(dir).APIKey(); got != "qc_live_abcd" {
		t.Errorf("stored key = %q", got)
	}
	info, err := os.Stat(filepath.Join(dir, config.CredentialsFile))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("credentials mode = %o, want 600", perm)
	}

	stdout, _, err = execute(t, "", "logout")
	if err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if !strings.Contains(stdout, "Logged out. Credentials cleared.") {
		t.Errorf("stdout = %q", stdout)
	}
	if got := config.NewStore(dir).APIKey(); got != "" {
		t.Errorf("key after logout = %q", got)
	}
}

func TestLogin_ReadsStdin(t *testing.T) {
	dir := isolateConfig(t)

	_, stderr, err := execute(t, "  qc_from_stdin  \n", "login")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !strings.Contains(stderr, "API key") {
		t.Errorf("prompt should go to stderr: %q", stderr)
	}
	if got := config.NewStore(dir).APIKey(); got != "qc_from_stdin" {
		t.Errorf("stored key = %q", got)
	}
}

func TestLogin_EmptyKey(t *testing.T) {
	isolateConfig(t)
	_, _, err := execute(t, "\n", "login")
	if got := output.GetExitCode(err); got != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", got, output.ExitUserError)
	}
}
