package changeset

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Review prompts.
const (
	AcceptPrompt = "Accept all? [Y/n/edit] > "
	editPrompt   = "  %s [%s]: major/minor/patch? > "
)

// Review is the state of the interactive accept/edit/reject loop. It is a
// value: Step returns the next state and never modifies the receiver.
type Review struct {
	packages []Classification
	editing  bool
	index    int
	done     bool
	aborted  bool
}

// NewReview starts a review of list at the top-level accept prompt.
func NewReview(list []Classification) Review {
	return Review{packages: append([]Classification(nil), list...)}
}

// Done reports whether the review needs no more input.
func (r Review) Done() bool {
	return r.done
}

// Aborted reports whether the operator rejected the changeset.
func (r Review) Aborted() bool {
	return r.aborted
}

// Packages returns a copy of the reviewed list.
func (r Review) Packages() []Classification {
	return append([]Classification(nil), r.packages...)
}

// Prompt returns the question for the next input line, or "" when done.
func (r Review) Prompt() string {
	switch {
	case r.done:
		return ""
	case r.editing:
		pkg := r.packages[r.index]
		return fmt.Sprintf(editPrompt, pkg.Name, pkg.Bump)
	default:
		return AcceptPrompt
	}
}

// Step consumes one line of operator input.
//
// At the top level "n" aborts, "edit" walks the packages one by one and
// anything else accepts. While editing, a bump level overrides the current
// package and anything else keeps it. Matching ignores case.
func (r Review) Step(line string) Review {
	if r.done {
		return r
	}
	answer := strings.ToLower(strings.TrimSpace(line))

	if !r.editing {
		switch answer {
		case "n":
			r.done, r.aborted = true, true
		case "edit":
			r.editing = true
			r.done = len(r.packages) == 0
		default:
			r.done = true
		}
		return r
	}

	if bump, ok := ParseBump(answer); ok {
		r.packages = append([]Classification(nil), r.packages...)
		r.packages[r.index].Bump = bump
	}
	r.index++
	r.done = r.index >= len(r.packages)
	return r
}

// RunReview drives a review from in, one line per step, writing each
// prompt with ask. End of input counts as an empty line.
func RunReview(in io.Reader, ask func(prompt string), list []Classification) (Review, error) {
	scanner := bufio.NewScanner(in)
	review := NewReview(list)
	for !review.Done() {
		ask(review.Prompt())
		line := ""
		if scanner.Scan() {
			line = scanner.Text()
		} else if err := scanner.Err(); err != nil {
			return review, fmt.Errorf("reading answer: %w", err)
		}
		review = review.Step(line)
	}
	return review, nil
}
