package envfile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeEnv(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_NonexistentFile(t *testing.T) {
	if err := Load("/nonexistent/.env"); err != nil {
		t.Fatalf("expected nil for nonexistent file, got %v", err)
	}
}

func TestLoad_SetsUnsetAndEmptyVars(t *testing.T) {
	path := writeEnv(t, ".env", "QC_TEST_KEY=from-file\nexport QC_TEST_URL='http://localhost:8787'\n# comment\n")
	t.Setenv("QC_TEST_KEY", "")
	t.Setenv("QC_TEST_URL", "")

	if err := Load(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("QC_TEST_KEY"); got != "from-file" {
		t.Errorf("QC_TEST_KEY = %q", got)
	}
	if got := os.Getenv("QC_TEST_URL"); got != "http://localhost:8787" {
		t.Errorf("QC_TEST_URL = %q", got)
	}
}

func TestLoad_EnvironmentWins(t *testing.T) {
	path := writeEnv(t, ".env", "QC_TEST_KEY=from-file\n")
	t.Setenv("QC_TEST_KEY", "from-env")

	if err := Load(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("QC_TEST_KEY"); got != "from-env" {
		t.Errorf("QC_TEST_KEY = %q, want from-env", got)
	}
}

func TestLoadAll_FirstFileWins(t *testing.T) {
	local := writeEnv(t, ".env.local", "QC_TEST_MODEL=local\n")
	shared := writeEnv(t, ".env", "QC_TEST_MODEL=shared\n")
	t.Setenv("QC_TEST_MODEL", "")

	if err := LoadAll(local, shared, "/nonexistent/env"); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("QC_TEST_MODEL"); got != "local" {
		t.Errorf("QC_TEST_MODEL = %q, want local", got)
	}
}
