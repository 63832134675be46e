package changeset

import (
	"context"
	"regexp"
)

// transientPattern matches classifier failures worth one more attempt:
// malformed model output, upstream gateway errors and timeouts.
var transientPattern = regexp.MustCompile(`(?i)invalid json|no changeset|unexpected response|ai worker|timeout|502|503|504`)

// IsTransient reports whether err looks like a failure that may succeed on
// an immediate retry.
func IsTransient(err error) bool {
	return err != nil && transientPattern.MatchString(err.Error())
}

// Classify calls c, retrying exactly once when the first failure is
// transient. Any other failure, or a second failure, is returned as is.
func Classify(ctx context.Context, c Classifier, req Request) (*Result, error) {
	result, err := c.GenerateChangeset(ctx, req)
	if err == nil || !IsTransient(err) {
		return result, err
	}
	return c.GenerateChangeset(ctx, req)
}
