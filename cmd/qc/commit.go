package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quikcommit/qc/internal/api"
	"github.com/quikcommit/qc/internal/config"
	"github.com/quikcommit/qc/internal/llm"
	"github.com/quikcommit/qc/internal/output"
	"github.com/quikcommit/qc/internal/workspace"
)

// commitOptions holds the root command flags.
type commitOptions struct {
	messageOnly bool
	push        bool
	local       bool
	hookMode    bool
	apiKey      string
}

// addCommitFlags registers the commit flags on the root command.
func addCommitFlags(cmd *cobra.Command, opts *commitOptions) {
	cmd.Flags().BoolVarP(&opts.messageOnly, "message-only", "m", false, "Print the message without committing")
	cmd.Flags().BoolVarP(&opts.push, "push", "p", false, "Push to origin after committing")
	cmd.Flags().BoolVar(&opts.local, "local", false, "Use the configured local provider instead of the service")
	cmd.Flags().BoolVar(&opts.hookMode, "hook-mode", false, "Silence diagnostics (used by the prepare-commit-msg hook)")
	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "API key (overrides stored credentials)")
	_ = cmd.Flags().MarkHidden("hook-mode")
}

// commitResult is the JSON shape of a commit run.
type commitResult struct {
	Message   string   `json:"message"`
	Committed bool     `json:"committed"`
	Pushed    bool     `json:"pushed"`
	Scopes    []string `json:"scopes,omitempty"`
	Local     bool     `json:"local"`
}

// runCommit generates a message for the staged changes and commits it.
func runCommit(cmd *cobra.Command, opts *commitOptions) error {
	printer := newPrinter(cmd)
	if opts.hookMode {
		// git owns the terminal; only the message may reach stdout.
		printer = output.NewPrinter(cmd.OutOrStdout(), false, false).WithStderr(io.Discard)
	}

	repo, root, err := openRepo()
	if err != nil {
		return fail(printer, err)
	}
	if !repo.HasStagedChanges() {
		return fail(printer, output.NewUserError("No staged changes. Stage files with `git add` first."))
	}

	store := config.NewStore("")
	cfg := store.Load()
	apiKey := opts.apiKey
	if apiKey == "" {
		apiKey = store.APIKey()
	}

	// Without an API key a configured provider takes over.
	settings := llm.ResolveProvider(cfg, apiKey)
	useLocal := opts.local || (apiKey == "" && settings != nil)
	if useLocal && settings == nil {
		return fail(printer, output.NewUserError(
			"No local provider configured. Run `qc config set provider ollama` or sign in with `qc login`."))
	}
	if !useLocal && apiKey == "" {
		return fail(printer, output.NewUserError("Not authenticated. Run `qc login` first."))
	}

	diff, err := repo.StagedDiff(cfg.Excludes)
	if err != nil {
		return fail(printer, err)
	}
	files, err := repo.StagedFiles()
	if err != nil {
		return fail(printer, err)
	}
	changes := strings.Join(files, "\n")
	rules, scopes := workspaceRules(printer, cfg.Rules, root, files)
	model := modelFlag(cmd, cfg)

	var message string
	if useLocal {
		message, err = llm.New(*settings).GenerateCommit(cmd.Context(), llm.CommitInput{
			Changes: changes,
			Diff:    diff,
			Rules:   rules,
			Model:   model,
		})
	} else {
		client := newAPIClient(store, cfg, apiKey)
		rules = applyTeamRules(cmd.Context(), printer, client, rules, scopes)
		message, err = client.GenerateCommit(cmd.Context(), commitRequest(diff, changes, rules, model))
	}
	if err != nil {
		return fail(printer, err)
	}

	result := commitResult{Message: message, Scopes: scopes, Local: useLocal}
	if opts.messageOnly {
		if printer.IsJSON() {
			return printer.WriteJSON(result)
		}
		printer.Println(message)
		return nil
	}

	if err := repo.Commit(message); err != nil {
		return fail(printer, err)
	}
	result.Committed = true
	if opts.push {
		if err := repo.Push(); err != nil {
			return fail(printer, err)
		}
		result.Pushed = true
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	printer.Println(message)
	if result.Pushed {
		printer.Stderr("%s\n", printer.Dim("Pushed to origin."))
	}
	return nil
}

// workspaceRules narrows the scope rules to the packages the staged files
// touch. Returns the rules to send and the derived scopes, if any.
func workspaceRules(printer *output.Printer, rules *config.Rules, root string, files []string) (*config.Rules, []string) {
	d := workspace.Detect(root)
	if d == nil {
		return rules, nil
	}
	result := workspace.AggregateScope(files, d)
	if result.Skipped() {
		printer.Stderr("%s\n", printer.Dim(fmt.Sprintf(
			"Changes span %d packages; skipping auto-scope detection.", len(result.Packages))))
	}
	scopes := result.Scopes()
	if len(scopes) == 0 {
		return rules, nil
	}
	return rules.Merge(&config.Rules{Scopes: scopes}), scopes
}

// teamRulesSource fetches the organisation's shared rules.
type teamRulesSource interface {
	TeamRules(ctx context.Context) (*config.Rules, error)
}

// applyTeamRules overlays team rules. Workspace scopes are intersected with
// the team's allowed scopes rather than replaced by them. Fetch errors mean
// the user is not in a team and are ignored.
func applyTeamRules(ctx context.Context, printer *output.Printer, src teamRulesSource, rules *config.Rules, scopes []string) *config.Rules {
	team, err := src.TeamRules(ctx)
	if err != nil || team.IsEmpty() {
		return rules
	}
	printer.Stderr("%s\n", printer.Dim("Using team rules from org"))
	merged := rules.Merge(team)
	if len(scopes) > 0 && len(team.Scopes) > 0 {
		var allowed []string
		for _, scope := range scopes {
			if slices.Contains(team.Scopes, scope) {
				allowed = append(allowed, scope)
			}
		}
		if len(allowed) > 0 {
			merged.Scopes = allowed
		}
	}
	return merged
}

// commitRequest assembles the service request. Empty rules are omitted.
func commitRequest(diff, changes string, rules *config.Rules, model string) api.CommitRequest {
	if rules.IsEmpty() {
		rules = nil
	}
	return api.CommitRequest{Diff: diff, Changes: changes, Rules: rules, Model: model}
}
