// Package changeset turns a branch's changes into a changeset record.
//
// A session collects the files changed against a base ref, resolves them to
// workspace packages, asks a Classifier for a bump level per package,
// reconciles the answer against the packages actually touched, lets the
// operator review the result, and writes a single markdown record under
// .changeset/ at the repository root.
//
// The classifier is trusted for bump levels and reasons, never for
// completeness: every resolved package ends up in the record exactly once.
package changeset
