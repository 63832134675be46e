package config

import (
	"regexp"
	"slices"
	"strings"
)

// Rules are commit conventions sent to the generator, usually mirrored from
// a commitlint config. JSON names match the service wire format.
type Rules struct {
	Scopes           []string `yaml:"scopes,omitempty"             json:"scopes,omitempty"`
	ScopeDelimiters  []string `yaml:"scope_delimiters,omitempty"   json:"scopeDelimiters,omitempty"`
	Types            []string `yaml:"types,omitempty"              json:"types,omitempty"`
	TypeCase         string   `yaml:"type_case,omitempty"          json:"typeCase,omitempty"`
	ScopeCase        string   `yaml:"scope_case,omitempty"         json:"scopeCase,omitempty"`
	SubjectCase      string   `yaml:"subject_case,omitempty"       json:"subjectCase,omitempty"`
	HeaderMaxLength  int      `yaml:"header_max_length,omitempty"  json:"headerMaxLength,omitempty"`
	SubjectMaxLength int      `yaml:"subject_max_length,omitempty" json:"subjectMaxLength,omitempty"`
	BodyMaxLineLen   int      `yaml:"body_max_line_length,omitempty" json:"bodyMaxLineLength,omitempty"`
	SubjectFullStop  string   `yaml:"subject_full_stop,omitempty"  json:"subjectFullStop,omitempty"`
}

// Sanitization limits.
const (
	maxScopes         = 100
	maxTypes          = 50
	maxIdentifierLen  = 100
	maxDelimiters     = 10
	maxDelimiterLen   = 5
	maxHeaderLength   = 500
	maxSubjectLength  = 200
	maxBodyLineLength = 500
	maxFullStopLength = 10
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_\-/\\]+$`)

var validCases = []string{
	"lower-case", "upper-case", "camel-case", "kebab-case",
	"pascal-case", "sentence-case", "snake-case", "start-case",
}

// Sanitize returns a copy with invalid entries dropped and counts clamped.
// Out-of-range lengths are dropped rather than clamped.
func (r *Rules) Sanitize() *Rules {
	if r == nil {
		return nil
	}
	out := &Rules{
		Scopes:          filterIdentifiers(r.Scopes, maxScopes),
		Types:           filterIdentifiers(r.Types, maxTypes),
		ScopeDelimiters: filterDelimiters(r.ScopeDelimiters),
		TypeCase:        validCase(r.TypeCase),
		ScopeCase:       validCase(r.ScopeCase),
		SubjectCase:     validCase(r.SubjectCase),
	}
	out.HeaderMaxLength = inRange(r.HeaderMaxLength, maxHeaderLength)
	out.SubjectMaxLength = inRange(r.SubjectMaxLength, maxSubjectLength)
	out.BodyMaxLineLen = inRange(r.BodyMaxLineLen, maxBodyLineLength)
	if len(r.SubjectFullStop) <= maxFullStopLength && !strings.ContainsAny(r.SubjectFullStop, "\r\n\x00") {
		out.SubjectFullStop = r.SubjectFullStop
	}
	return out
}

// IsEmpty reports whether no rule is set.
func (r *Rules) IsEmpty() bool {
	return r == nil || (len(r.Scopes) == 0 && len(r.ScopeDelimiters) == 0 && len(r.Types) == 0 &&
		r.TypeCase == "" && r.ScopeCase == "" && r.SubjectCase == "" &&
		r.HeaderMaxLength == 0 && r.SubjectMaxLength == 0 && r.BodyMaxLineLen == 0 &&
		r.SubjectFullStop == "")
}

// Merge overlays non-empty fields of other onto a copy of r.
func (r *Rules) Merge(other *Rules) *Rules {
	out := &Rules{}
	if r != nil {
		*out = *r
	}
	if other == nil {
		return out
	}
	if len(other.Scopes) > 0 {
		out.Scopes = other.Scopes
	}
	if len(other.ScopeDelimiters) > 0 {
		out.ScopeDelimiters = other.ScopeDelimiters
	}
	if len(other.Types) > 0 {
		out.Types = other.Types
	}
	out.TypeCase = firstNonEmpty(other.TypeCase, out.TypeCase)
	out.ScopeCase = firstNonEmpty(other.ScopeCase, out.ScopeCase)
	out.SubjectCase = firstNonEmpty(other.SubjectCase, out.SubjectCase)
	out.SubjectFullStop = firstNonEmpty(other.SubjectFullStop, out.SubjectFullStop)
	if other.HeaderMaxLength > 0 {
		out.HeaderMaxLength = other.HeaderMaxLength
	}
	if other.SubjectMaxLength > 0 {
		out.SubjectMaxLength = other.SubjectMaxLength
	}
	if other.BodyMaxLineLen > 0 {
		out.BodyMaxLineLen = other.BodyMaxLineLen
	}
	return out
}

func filterIdentifiers(values []string, limit int) []string {
	if len(values) > limit {
		values = values[:limit]
	}
	var out []string
	for _, v := range values {
		if v != "" && len(v) <= maxIdentifierLen && identifierPattern.MatchString(v) {
			out = append(out, v)
		}
	}
	return out
}

func filterDelimiters(values []string) []string {
	if len(values) > maxDelimiters {
		values = values[:maxDelimiters]
	}
	var out []string
	for _, v := range values {
		if v != "" && len(v) <= maxDelimiterLen && !strings.ContainsAny(v, "\r\n\x00") {
			out = append(out, v)
		}
	}
	return out
}

func validCase(c string) string {
	if slices.Contains(validCases, c) {
		return c
	}
	return ""
}

func inRange(n, limit int) int {
	if n >= 1 && n <= limit {
		return n
	}
	return 0
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
