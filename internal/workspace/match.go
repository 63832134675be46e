package workspace

import (
	"path/filepath"
	"strings"
)

// trimGlob reduces a workspace pattern to its directory prefix by removing
// a trailing "*" or "**" (with or without the leading slash) and any
// trailing slash left behind.
func trimGlob(pattern string) string {
	dir := pattern
	switch {
	case strings.HasSuffix(dir, "**"):
		dir = strings.TrimSuffix(dir, "**")
	case strings.HasSuffix(dir, "*"):
		dir = strings.TrimSuffix(dir, "*")
	default:
		return strings.TrimSuffix(dir, "/")
	}
	return strings.TrimSuffix(dir, "/")
}

// MatchPattern returns the package directory name that rel belongs to under
// pattern. rel must be slash-separated and relative to the workspace root.
//
// Three cases, in order:
//  1. the prefix is empty, "*" or "**": the first path segment is the package;
//  2. the prefix has an inner wildcard ("packages/*/nested"): the text before
//     the wildcard must prefix rel, and the package is the next segment;
//  3. otherwise the prefix is a literal directory that must prefix rel.
func MatchPattern(rel, pattern string) (string, bool) {
	dir := trimGlob(pattern)

	if dir == "" || dir == "*" || dir == "**" {
		return firstSegment(rel)
	}

	if star := strings.Index(dir, "*"); star != -1 {
		prefix := dir[:star]
		rest, ok := strings.CutPrefix(rel, prefix)
		if !ok {
			return "", false
		}
		return firstSegment(rest)
	}

	rest, ok := strings.CutPrefix(rel, dir+"/")
	if !ok {
		return "", false
	}
	return firstSegment(rest)
}

func firstSegment(path string) (string, bool) {
	segment, _, _ := strings.Cut(path, "/")
	return segment, segment != ""
}

// PackageForFile maps a file to its package directory name using the
// descriptor's patterns in order; the first matching pattern wins. Absolute
// paths are made relative to the workspace root first; paths outside the
// root never match.
func (d *Descriptor) PackageForFile(file string) (string, bool) {
	rel := d.relative(file)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	for _, pattern := range d.Patterns {
		if name, ok := MatchPattern(rel, pattern); ok {
			return name, true
		}
	}
	return "", false
}

// relative converts file to a slash-separated path relative to the root.
func (d *Descriptor) relative(file string) string {
	if filepath.IsAbs(file) {
		if rel, err := filepath.Rel(d.Root, file); err == nil {
			file = rel
		}
	}
	return filepath.ToSlash(filepath.Clean(file))
}
