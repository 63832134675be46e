package workspace

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Kind identifies the workspace convention a repository uses.
type Kind string

// Supported workspace conventions, in detection priority order.
const (
	KindPnpm  Kind = "pnpm"
	KindLerna Kind = "lerna"
	KindNx    Kind = "nx"
	KindTurbo Kind = "turbo"
	KindNpm   Kind = "npm"
)

// Manifest file names probed by Detect.
const (
	PnpmManifest    = "pnpm-workspace.yaml"
	LernaManifest   = "lerna.json"
	NxManifest      = "nx.json"
	TurboManifest   = "turbo.json"
	PackageManifest = "package.json"
)

// Descriptor describes a detected workspace. Patterns is never empty.
type Descriptor struct {
	Kind     Kind     `json:"kind"`
	Patterns []string `json:"patterns"`
	Root     string   `json:"root"`
}

var (
	defaultLernaPatterns = []string{"packages/*"}
	nxPatterns           = []string{"packages/*", "apps/*", "libs/*"}
)

// probe inspects root for a single convention. ok=false means the probe did
// not apply and detection moves on.
type probe func(root string) (kind Kind, patterns []string, ok bool)

var probes = []probe{probePnpm, probeLerna, probeNx, probeTurbo, probeNpm}

// Detect returns the workspace rooted at root, or nil if none of the
// conventions match. The first probe that yields patterns wins; unreadable
// or malformed manifests count as a failed probe, never as an error.
func Detect(root string) *Descriptor {
	for _, p := range probes {
		kind, patterns, ok := p(root)
		if ok && len(patterns) > 0 {
			return &Descriptor{Kind: kind, Patterns: patterns, Root: root}
		}
	}
	return nil
}

// pnpmPackagesBlock captures the indented list that follows "packages:".
var pnpmPackagesBlock = regexp.MustCompile(`packages:\s*\n((?:\s+-\s+.+\n?)*)`)

var pnpmItemPrefix = regexp.MustCompile(`^\s+-\s+`)

// probePnpm extracts the packages list line by line instead of parsing YAML,
// since only bare or quoted glob items matter.
func probePnpm(root string) (Kind, []string, bool) {
	data, err := os.ReadFile(filepath.Join(root, PnpmManifest))
	if err != nil {
		return "", nil, false
	}
	match := pnpmPackagesBlock.FindStringSubmatch(string(data))
	if match == nil {
		return "", nil, false
	}

	var patterns []string
	for line := range strings.SplitSeq(match[1], "\n") {
		item := pnpmItemPrefix.ReplaceAllString(line, "")
		item = strings.NewReplacer(`"`, "", "'", "").Replace(item)
		if item = strings.TrimSpace(item); item != "" {
			patterns = append(patterns, item)
		}
	}
	return KindPnpm, patterns, true
}

func probeLerna(root string) (Kind, []string, bool) {
	data, err := os.ReadFile(filepath.Join(root, LernaManifest))
	if err != nil {
		return "", nil, false
	}
	var manifest struct {
		Packages *[]string `json:"packages"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return "", nil, false
	}
	if manifest.Packages == nil {
		return KindLerna, defaultLernaPatterns, true
	}
	return KindLerna, *manifest.Packages, true
}

// probeNx relies on nx's conventional layout; nx.json itself is not read.
func probeNx(root string) (Kind, []string, bool) {
	if !exists(filepath.Join(root, NxManifest)) {
		return "", nil, false
	}
	return KindNx, nxPatterns, true
}

func probeTurbo(root string) (Kind, []string, bool) {
	if !exists(filepath.Join(root, TurboManifest)) {
		return "", nil, false
	}
	patterns, ok := packageJSONWorkspaces(root)
	return KindTurbo, patterns, ok
}

func probeNpm(root string) (Kind, []string, bool) {
	patterns, ok := packageJSONWorkspaces(root)
	return KindNpm, patterns, ok
}

// packageJSONWorkspaces reads the "workspaces" field of the root
// package.json in either its array form or its {"packages": [...]} form.
func packageJSONWorkspaces(root string) ([]string, bool) {
	data, err := os.ReadFile(filepath.Join(root, PackageManifest))
	if err != nil {
		return nil, false
	}
	var manifest struct {
		Workspaces json.RawMessage `json:"workspaces"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil || isJSONNull(manifest.Workspaces) {
		return nil, false
	}

	var list []string
	if err := json.Unmarshal(manifest.Workspaces, &list); err == nil {
		return list, true
	}
	var nested struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(manifest.Workspaces, &nested); err == nil {
		return nested.Packages, true
	}
	return nil, false
}

func isJSONNull(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null" || s == "false"
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
