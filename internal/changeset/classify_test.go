package changeset

import (
	"context"
	"errors"
	"testing"
)

// scriptedClassifier returns its errors in order, then result.
type scriptedClassifier struct {
	errs   []error
	result *Result
	calls  int
	reqs   []Request
}

func (s *scriptedClassifier) GenerateChangeset(_ context.Context, req Request) (*Result, error) {
	s.reqs = append(s.reqs, req)
	s.calls++
	if s.calls <= len(s.errs) {
		return nil, s.errs[s.calls-1]
	}
	return s.result, nil
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"AI returned Invalid JSON", true},
		{"No changeset in response", true},
		{"unexpected response from worker", true},
		{"AI Worker unavailable", true},
		{"request TIMEOUT", true},
		{"HTTP 502", true},
		{"HTTP 503", true},
		{"HTTP 504", true},
		{"HTTP 500", false},
		{"Unauthorized", false},
		{"packages must not be empty", false},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			if got := IsTransient(errors.New(tt.msg)); got != tt.want {
				t.Errorf("IsTransient(%q) = %v, want %v", tt.msg, got, tt.want)
			}
		})
	}
	if IsTransient(nil) {
		t.Error("IsTransient(nil) = true")
	}
}

func TestClassify_RetriesOnceOnTransient(t *testing.T) {
	want := &Result{Summary: "ok"}
	c := &scriptedClassifier{errs: []error{errors.New("timeout")}, result: want}

	got, err := Classify(context.Background(), c, Request{Diff: "d"})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if got != want {
		t.Errorf("Classify() = %+v, want %+v", got, want)
	}
	if c.calls != 2 {
		t.Errorf("calls = %d, want 2", c.calls)
	}
}

func TestClassify_SecondTransientFails(t *testing.T) {
	second := errors.New("timeout again")
	c := &scriptedClassifier{errs: []error{errors.New("timeout"), second}, result: &Result{}}

	_, err := Classify(context.Background(), c, Request{})
	if !errors.Is(err, second) {
		t.Errorf("Classify() error = %v, want %v", err, second)
	}
	if c.calls != 2 {
		t.Errorf("calls = %d, want 2", c.calls)
	}
}

func TestClassify_NonTransientNoRetry(t *testing.T) {
	unauthorized := errors.New("Unauthorized")
	c := &scriptedClassifier{errs: []error{unauthorized}, result: &Result{}}

	_, err := Classify(context.Background(), c, Request{})
	if !errors.Is(err, unauthorized) {
		t.Errorf("Classify() error = %v, want %v", err, unauthorized)
	}
	if c.calls != 1 {
		t.Errorf("calls = %d, want 1", c.calls)
	}
}
