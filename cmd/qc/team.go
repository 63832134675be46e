package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quikcommit/qc/internal/api"
	"github.com/quikcommit/qc/internal/config"
	"github.com/quikcommit/qc/internal/output"
)

// newTeamCmd creates the team command and its subcommands.
// Without a subcommand it shows the team, like `qc team info`.
func newTeamCmd() *cobra.Command {
	var apiKey string

	cmd := &cobra.Command{
		Use:   "team",
		Short: "Show and manage your team",
		Long: `Show and manage the team your API key belongs to.

Examples:
  qc team                      # Show team, plan and members
  qc team rules                # Show the team's shared commit rules
  qc team rules push           # Replace them with the local commitlint config
  qc team invite ada@acme.dev  # Invite a member`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTeamInfo(cmd, apiKey)
		},
	}

	cmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key (overrides stored credentials)")

	info := &cobra.Command{
		Use:   "info",
		Short: "Show team, plan and members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTeamInfo(cmd, apiKey)
		},
	}

	rules := &cobra.Command{
		Use:   "rules",
		Short: "Show the team's shared commit rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTeamRules(cmd, apiKey)
		},
	}
	rules.AddCommand(&cobra.Command{
		Use:   "push",
		Short: "Replace the team rules with the local commitlint config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTeamRulesPush(cmd, apiKey)
		},
	})

	invite := &cobra.Command{
		Use:   "invite <email>",
		Short: "Invite a member by email",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
				return output.NewUserError("Usage: qc team invite <email>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTeamInvite(cmd, apiKey, strings.TrimSpace(args[0]))
		},
	}

	cmd.AddCommand(info, rules, invite)
	return cmd
}

// teamClient returns a service client for the team commands.
func teamClient(apiKey string) *api.Client {
	store := config.NewStore("")
	return newAPIClient(store, store.Load(), apiKey)
}

// runTeamInfo prints the team and its members.
func runTeamInfo(cmd *cobra.Command, apiKey string) error {
	printer := newPrinter(cmd)
	team, err := teamClient(apiKey).Team(cmd.Context())
	if err != nil {
		return fail(printer, err)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(team)
	}
	printer.KeyValue("Team", team.Name)
	printer.KeyValue("Plan", team.Plan)
	printer.KeyValue("Members", strconv.Itoa(team.MemberCount))
	if len(team.Members) == 0 {
		return nil
	}
	printer.Println()
	rows := make([][]output.Cell, 0, len(team.Members))
	for _, m := range team.Members {
		rows = append(rows, []output.Cell{
			{Text: "  " + m.DisplayName()},
			{Text: "<" + m.Email + ">"},
			{Text: m.Role, Render: printer.Dim},
		})
	}
	printer.Table(rows)
	return nil
}

// runTeamRules prints the team's shared rules as JSON in both modes.
func runTeamRules(cmd *cobra.Command, apiKey string) error {
	printer := newPrinter(cmd)
	rules, err := teamClient(apiKey).TeamRules(cmd.Context())
	if err != nil {
		return fail(printer, err)
	}
	if rules == nil {
		rules = &config.Rules{}
	}

	if !printer.IsJSON() {
		printer.Println("Team Commit Rules:")
	}
	return printer.WriteJSON(rules)
}

// runTeamRulesPush uploads the commitlint config of the working directory,
// falling back to the rules in the qc config.
func runTeamRulesPush(cmd *cobra.Command, apiKey string) error {
	printer := newPrinter(cmd)
	dir, err := os.Getwd()
	if err != nil {
		return fail(printer, output.NewSystemErrorWithCause("failed to get working directory", err))
	}

	store := config.NewStore("")
	cfg := store.Load()
	rules := config.DetectCommitlintRules(dir)
	if rules == nil && !cfg.Rules.IsEmpty() {
		rules = cfg.Rules
	}
	if rules == nil {
		return fail(printer, output.NewUserError("No local commitlint config found."))
	}

	if err := newAPIClient(store, cfg, apiKey).PushTeamRules(cmd.Context(), rules); err != nil {
		return fail(printer, err)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"status": "updated", "rules": rules.Sanitize()})
	}
	printer.Println("Team rules updated from local commitlint config.")
	return nil
}

// runTeamInvite sends an invitation.
func runTeamInvite(cmd *cobra.Command, apiKey, email string) error {
	printer := newPrinter(cmd)
	if err := teamClient(apiKey).InviteTeamMember(cmd.Context(), email); err != nil {
		return fail(printer, err)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"status": "invited", "email": email})
	}
	printer.Println("Invitation sent to " + email)
	return nil
}
