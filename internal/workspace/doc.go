// Package workspace resolves JavaScript monorepo topology.
//
// Detect inspects a repository root for one of the pnpm, lerna, nx, turbo
// or npm workspace conventions and returns a Descriptor holding the
// package-location globs. The globs use a restricted dialect: a single
// wildcard segment, no character classes and no recursive mid-path
// wildcards, which covers what the workspace tools themselves emit.
//
// From a Descriptor, changed file paths map to package directory names
// (MatchPattern, PackageForFile), to display names read from each
// package.json (Resolve), or to a conventional-commit scope
// (AggregateScope).
package workspace
