// Package changelog groups conventional commits and maintains CHANGELOG.md.
package changelog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// FileName is the changelog at the repository root.
const FileName = "CHANGELOG.md"

// DefaultType is used for subjects that are not conventional commits.
const DefaultType = "chore"

var conventionalType = regexp.MustCompile(`(?i)^(feat|fix|docs|style|refactor|perf|test|chore)(\([^)]+\))?!?:\s+`)

// ParseType returns the lower-cased conventional type of a commit subject.
func ParseType(subject string) string {
	match := conventionalType.FindStringSubmatch(subject)
	if match == nil {
		return DefaultType
	}
	return strings.ToLower(match[1])
}

// GroupByType buckets subjects by conventional type, keeping their order.
func GroupByType(subjects []string) map[string][]string {
	byType := map[string][]string{}
	for _, subject := range subjects {
		t := ParseType(subject)
		byType[t] = append(byType[t], subject)
	}
	return byType
}

var versionLike = regexp.MustCompile(`^v?\d`)

// VersionLabel picks the section version: the explicit version, else the
// target ref when it looks like a version tag, else "<from>-next".
func VersionLabel(version, from, to string) string {
	if version != "" {
		return version
	}
	if to != "HEAD" && versionLike.MatchString(to) {
		return strings.TrimPrefix(to, "v")
	}
	return strings.TrimPrefix(from, "v") + "-next"
}

// Entry renders a changelog section: a dated header followed by body.
func Entry(version string, date time.Time, body string) string {
	return fmt.Sprintf("## [%s] - %s\n\n%s", version, date.Format(time.DateOnly), body)
}

// Prepend writes entry at the top of the changelog in root, separating it
// from existing content with a blank line. Returns the file path.
func Prepend(root, entry string) (string, error) {
	path := filepath.Join(root, FileName)
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("read %s: %w", FileName, err)
	}

	content := entry
	if len(existing) > 0 {
		content += "\n\n" + string(existing)
	}
	if err := atomicWrite(path, []byte(content)); err != nil {
		return "", err
	}
	return path, nil
}

// atomicWrite writes data to path using write-to-temp-then-rename.
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
