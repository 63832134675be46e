package workspace

import (
	"encoding/json"
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ManifestReader returns the "name" field of the package.json at path.
// ok is false when the file is missing, unreadable, malformed or unnamed.
type ManifestReader interface {
	PackageName(path string) (name string, ok bool)
}

// defaultManifestCacheSize bounds FileManifests; a few hundred packages
// covers every monorepo we have seen.
const defaultManifestCacheSize = 512

// FileManifests reads package.json files from disk. Parsed names are cached
// by path and revalidated against the file's size and mtime, so a
// long-lived process (the MCP server) picks up renamed packages.
type FileManifests struct {
	cache *lru.Cache[string, cachedManifest]
}

type cachedManifest struct {
	modTime time.Time
	size    int64
	name    string
	ok      bool
}

// NewFileManifests creates a reader with a bounded cache. size <= 0 uses
// the default.
func NewFileManifests(size int) *FileManifests {
	if size <= 0 {
		size = defaultManifestCacheSize
	}
	cache, err := lru.New[string, cachedManifest](size)
	if err != nil {
		// lru.New only fails for non-positive sizes, excluded above.
		panic(err)
	}
	return &FileManifests{cache: cache}
}

// PackageName implements ManifestReader.
func (m *FileManifests) PackageName(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		m.cache.Remove(path)
		return "", false
	}

	if cached, hit := m.cache.Get(path); hit && cached.modTime.Equal(info.ModTime()) && cached.size == info.Size() {
		return cached.name, cached.ok
	}

	name, ok := readPackageName(path)
	m.cache.Add(path, cachedManifest{modTime: info.ModTime(), size: info.Size(), name: name, ok: ok})
	return name, ok
}

func readPackageName(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	var manifest struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil || manifest.Name == "" {
		return "", false
	}
	return manifest.Name, true
}
