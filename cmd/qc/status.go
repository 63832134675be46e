package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/quikcommit/qc/internal/config"
	"github.com/quikcommit/qc/internal/llm"
)

// statusResult is the JSON shape of qc status.
type statusResult struct {
	LoggedIn  bool   `json:"logged_in"`
	APIKey    string `json:"api_key,omitempty"`
	Plan      string `json:"plan,omitempty"`
	Used      int    `json:"commit_count,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Remaining int    `json:"remaining,omitempty"`
	UsageErr  string `json:"usage_error,omitempty"`
	Provider  string `json:"provider,omitempty"`
}

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	var apiKey string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show authentication, plan and usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, apiKey)
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key (overrides stored credentials)")

	return cmd
}

// runStatus executes the status command. Usage fetch failures are reported,
// not returned: status must work offline.
func runStatus(cmd *cobra.Command, apiKey string) error {
	printer := newPrinter(cmd)
	store := config.NewStore("")
	cfg := store.Load()
	if apiKey == "" {
		apiKey = store.APIKey()
	}

	result := statusResult{}
	if settings := llm.ResolveProvider(cfg, apiKey); settings != nil {
		result.Provider = string(settings.Provider)
	}

	if apiKey == "" {
		if printer.IsJSON() {
			return printer.WriteJSON(result)
		}
		printer.Println("Not logged in. Run `qc login` to authenticate.")
		if result.Provider != "" {
			printer.KeyValue("Local provider", result.Provider)
		}
		return nil
	}

	result.LoggedIn = true
	result.APIKey = config.MaskKey(apiKey)
	usage, err := newAPIClient(store, cfg, apiKey).Usage(cmd.Context())
	if err != nil {
		result.UsageErr = err.Error()
	} else {
		result.Plan = usage.Plan
		result.Used = usage.CommitCount
		result.Limit = usage.Limit
		result.Remaining = usage.Remaining
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	printer.Println("Logged in: yes")
	printer.Print("  API key: %s\n", result.APIKey)
	if result.UsageErr != "" {
		printer.Println("Usage: (unable to fetch)")
	} else {
		printer.KeyValue("Plan", result.Plan)
		printer.Print("Usage: %d/%d commits this period\n", result.Used, result.Limit)
		printer.KeyValue("Remaining", strconv.Itoa(result.Remaining))
	}
	if result.Provider != "" {
		printer.KeyValue("Local provider", result.Provider)
	}
	return nil
}
