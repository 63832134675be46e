package changeset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir is the record directory under the repository root.
const Dir = ".changeset"

// FormatFile renders a changeset record: a front-matter block with one
// `"<name>": <bump>` line per package, a blank line, then the summary.
func FormatFile(packages []Classification, summary string) string {
	var b strings.Builder
	b.WriteString("---\n")
	for _, pkg := range packages {
		fmt.Fprintf(&b, "\"%s\": %s\n", pkg.Name, pkg.Bump)
	}
	b.WriteString("---\n\n")
	b.WriteString(summary)
	b.WriteString("\n")
	return b.String()
}

// RelPath returns the record path relative to the repository root,
// slash-separated, for display.
func RelPath(slug string) string {
	return Dir + "/" + slug + ".md"
}

// WriteRecord writes the record for slug under root/.changeset, creating
// the directory when needed, and returns the file path. The file appears
// whole or not at all.
func WriteRecord(root, slug string, packages []Classification, summary string) (string, error) {
	dir := filepath.Join(root, Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", Dir, err)
	}
	path := filepath.Join(dir, slug+".md")
	if err := atomicWrite(path, []byte(FormatFile(packages, summary))); err != nil {
		return "", err
	}
	return path, nil
}

// atomicWrite writes data to a temp file in the target directory and
// renames it into place.
func atomicWrite(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".tmp-*.md")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
