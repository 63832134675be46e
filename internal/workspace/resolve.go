package workspace

import (
	"path/filepath"
	"strings"
)

// PackageSet maps package directory names to display names, in the order
// the directories were first encountered.
type PackageSet struct {
	dirs  []string
	names map[string]string
}

func newPackageSet() *PackageSet {
	return &PackageSet{names: map[string]string{}}
}

// Len returns the number of resolved packages.
func (s *PackageSet) Len() int {
	return len(s.dirs)
}

// Has reports whether dir is already resolved.
func (s *PackageSet) Has(dir string) bool {
	_, ok := s.names[dir]
	return ok
}

// Name returns the display name recorded for dir.
func (s *PackageSet) Name(dir string) (string, bool) {
	name, ok := s.names[dir]
	return name, ok
}

// Dirs returns the directory names in first-seen order.
func (s *PackageSet) Dirs() []string {
	return append([]string(nil), s.dirs...)
}

// Names returns the display names in first-seen order.
func (s *PackageSet) Names() []string {
	names := make([]string, 0, len(s.dirs))
	for _, dir := range s.dirs {
		names = append(names, s.names[dir])
	}
	return names
}

func (s *PackageSet) add(dir, name string) {
	if s.Has(dir) {
		return
	}
	s.dirs = append(s.dirs, dir)
	s.names[dir] = name
}

// Resolve maps changed files to package identities. Each package directory
// is resolved once: its display name is the "name" of the first readable
// package.json among the candidate locations, falling back to the directory
// name. Files outside every pattern are skipped.
func Resolve(files []string, d *Descriptor, manifests ManifestReader) *PackageSet {
	set := newPackageSet()
	for _, file := range files {
		dir, ok := d.PackageForFile(file)
		if !ok || set.Has(dir) {
			continue
		}
		set.add(dir, d.displayName(dir, manifests))
	}
	return set
}

// displayName walks the manifest candidates for dir in pattern order.
func (d *Descriptor) displayName(dir string, manifests ManifestReader) string {
	for _, candidate := range d.manifestCandidates(dir) {
		if name, ok := manifests.PackageName(candidate); ok {
			return name
		}
	}
	return dir
}

// manifestCandidates lists, one per pattern, where dir's package.json could
// live: root/<prefix>/<dir>/package.json for glob patterns and
// root/<pattern>/package.json for literal ones.
func (d *Descriptor) manifestCandidates(dir string) []string {
	candidates := make([]string, 0, len(d.Patterns))
	for _, pattern := range d.Patterns {
		var pkgDir string
		if strings.Contains(pattern, "*") {
			pkgDir = filepath.Join(d.Root, filepath.FromSlash(trimGlob(pattern)), dir)
		} else {
			pkgDir = filepath.Join(d.Root, filepath.FromSlash(strings.TrimSuffix(pattern, "/")))
		}
		candidates = append(candidates, filepath.Join(pkgDir, PackageManifest))
	}
	return candidates
}
