package workspace

import "strings"

// MaxScopePackages is the widest change that still gets an automatic
// scope. A conventional-commit scope listing more packages than this says
// nothing useful.
const MaxScopePackages = 3

// ScopeResult is the outcome of AggregateScope.
type ScopeResult struct {
	// Scope is the scope to use, or "" for none.
	Scope string
	// Packages holds the distinct package directories touched, first-seen order.
	Packages []string
}

// Skipped reports whether a scope was withheld because the change spans
// more than MaxScopePackages packages.
func (r ScopeResult) Skipped() bool {
	return len(r.Packages) > MaxScopePackages
}

// Scopes splits Scope into its individual package names.
func (r ScopeResult) Scopes() []string {
	if r.Scope == "" {
		return nil
	}
	return strings.Split(r.Scope, ",")
}

// AggregateScope derives a commit scope from the packages the files touch:
// one package gives its name, two or three give a comma-joined list, and
// none or more than three give no scope.
func AggregateScope(files []string, d *Descriptor) ScopeResult {
	seen := map[string]bool{}
	var packages []string
	for _, file := range files {
		dir, ok := d.PackageForFile(file)
		if !ok || seen[dir] {
			continue
		}
		seen[dir] = true
		packages = append(packages, dir)
	}

	result := ScopeResult{Packages: packages}
	if len(packages) >= 1 && len(packages) <= MaxScopePackages {
		result.Scope = strings.Join(packages, ",")
	}
	return result
}
