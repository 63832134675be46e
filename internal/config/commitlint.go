package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// commitlintFiles are the project files searched for a commitlint config,
// in order. JavaScript configs need an interpreter and are not read.
var commitlintFiles = []string{
	".commitlintrc.json",
	".commitlintrc",
	".commitlintrc.yaml",
	".commitlintrc.yml",
}

// commitlintConfig is the part of a commitlint config qc understands.
// Each rule is [level, applicability, value].
type commitlintConfig struct {
	Rules map[string][]any `json:"rules" yaml:"rules"`
}

// DetectCommitlintRules reads the commitlint config in dir: the rc files
// first, then the "commitlint" key of package.json. Returns nil when no
// config yields a rule. Unparseable files are skipped.
func DetectCommitlintRules(dir string) *Rules {
	for _, name := range commitlintFiles {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		var cfg commitlintConfig
		if strings.HasSuffix(name, ".json") {
			err = json.Unmarshal(data, &cfg)
		} else {
			// YAML is a superset of JSON, so the bare rc file is read either way.
			err = yaml.Unmarshal(data, &cfg)
		}
		if err != nil {
			continue
		}
		if rules := cfg.toRules(); rules != nil {
			return rules
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return nil
	}
	var pkg struct {
		Commitlint *commitlintConfig `json:"commitlint"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil || pkg.Commitlint == nil {
		return nil
	}
	return pkg.Commitlint.toRules()
}

// toRules maps the commitlint rules qc sends to the generator.
func (c *commitlintConfig) toRules() *Rules {
	rules := &Rules{
		Types:            c.list("type-enum"),
		Scopes:           c.list("scope-enum"),
		TypeCase:         c.text("type-case"),
		ScopeCase:        c.text("scope-case"),
		SubjectCase:      c.text("subject-case"),
		SubjectFullStop:  c.text("subject-full-stop"),
		HeaderMaxLength:  c.number("header-max-length"),
		SubjectMaxLength: c.number("subject-max-length"),
		BodyMaxLineLen:   c.number("body-max-line-length"),
	}
	if rules.IsEmpty() {
		return nil
	}
	return rules
}

// value returns the third element of a rule, if present.
func (c *commitlintConfig) value(name string) any {
	rule := c.Rules[name]
	if len(rule) < 3 {
		return nil
	}
	return rule[2]
}

func (c *commitlintConfig) list(name string) []string {
	items, ok := c.value(name).([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// text accepts a string or a list of strings, keeping the first entry.
func (c *commitlintConfig) text(name string) string {
	switch v := c.value(name).(type) {
	case string:
		return v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				return s
			}
		}
	}
	return ""
}

// number accepts the float64 of encoding/json and the int of yaml.v3.
func (c *commitlintConfig) number(name string) int {
	switch v := c.value(name).(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
