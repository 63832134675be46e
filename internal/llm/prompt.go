package llm

import (
	"encoding/json"
	"strings"

	"github.com/quikcommit/qc/internal/config"
)

// SystemPrompt frames chat-style providers.
const SystemPrompt = "You are a git commit message generator. Create conventional commit messages."

// BuildCommitPrompt renders the user prompt for a commit message. Rules are
// appended as JSON when any are set.
func BuildCommitPrompt(changes, diff string, rules *config.Rules) string {
	var b strings.Builder
	b.WriteString("Generate a commit message for these changes:\n\n")
	b.WriteString("## File changes:\n<file_changes>\n")
	b.WriteString(changes)
	b.WriteString("\n</file_changes>\n\n")
	b.WriteString("## Diff:\n<diff>\n")
	b.WriteString(diff)
	b.WriteString("\n</diff>\n\n")

	if !rules.IsEmpty() {
		if data, err := json.Marshal(rules); err == nil {
			b.WriteString("Rules: ")
			b.Write(data)
			b.WriteString("\n\n")
		}
	}

	b.WriteString("Important:\n")
	b.WriteString("- Follow conventional commit format: <type>(<scope>): <subject>\n")
	b.WriteString("- Response should be the commit message only, no explanations")
	return b.String()
}
