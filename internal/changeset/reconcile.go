package changeset

// DefaultReason is recorded for packages the classifier left out.
const DefaultReason = "included in changeset"

// Reconcile merges the classifier's answer with the packages actually
// touched. Classifier entries keep their order; a repeated name keeps its
// first entry; an unknown bump level becomes patch. Every name in
// groundTruth missing from classified is appended as a patch bump.
// The input slices are not modified.
func Reconcile(classified []Classification, groundTruth []string) []Classification {
	seen := make(map[string]bool, len(classified)+len(groundTruth))
	out := make([]Classification, 0, len(classified)+len(groundTruth))

	for _, c := range classified {
		if c.Name == "" || seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		if bump, ok := ParseBump(string(c.Bump)); ok {
			c.Bump = bump
		} else {
			c.Bump = Patch
		}
		out = append(out, c)
	}

	for _, name := range groundTruth {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, Classification{Name: name, Bump: Patch, Reason: DefaultReason})
	}
	return out
}
