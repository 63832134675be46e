package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quikcommit/qc/internal/config"
	"github.com/quikcommit/qc/internal/llm"
	"github.com/quikcommit/qc/internal/output"
)

// newConfigCmd creates the config command and its set/reset subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change configuration",
		Long: `Show the current configuration.

  qc config set <key> <value>   Set model, api_url or provider
  qc config reset               Restore defaults`,
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigResetCmd())

	return cmd
}

// configView is the JSON shape of qc config.
type configView struct {
	Dir      string        `json:"dir"`
	Model    string        `json:"model,omitempty"`
	APIURL   string        `json:"api_url"`
	Provider string        `json:"provider,omitempty"`
	Auth     bool          `json:"auth"`
	Excludes []string      `json:"excludes,omitempty"`
	Rules    *config.Rules `json:"rules,omitempty"`
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)
	store := config.NewStore("")
	cfg := store.Load()

	view := configView{
		Dir:      store.Dir(),
		Model:    cfg.Model,
		APIURL:   cfg.ResolveAPIURL(),
		Provider: cfg.Provider,
		Auth:     store.APIKey() != "",
		Excludes: cfg.Excludes,
		Rules:    cfg.Rules,
	}
	if printer.IsJSON() {
		return printer.WriteJSON(view)
	}

	auth := "not set"
	if view.Auth {
		auth = "****"
	}
	printer.Println("Current configuration:")
	printer.Print("  model:    %s\n", orDefault(view.Model, "(default for plan)"))
	printer.Print("  api_url:  %s\n", view.APIURL)
	printer.Print("  provider: %s\n", orDefault(view.Provider, "(default)"))
	printer.Print("  auth:     %s\n", auth)
	if len(view.Excludes) > 0 {
		printer.Print("  excludes: %s\n", strings.Join(view.Excludes, ", "))
	}
	return nil
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config key (model, api_url, provider)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)
			key, value := strings.ToLower(args[0]), args[1]
			if err := validateConfigValue(key, value); err != nil {
				return fail(printer, err)
			}
			if err := config.NewStore("").Set(key, value); err != nil {
				return fail(printer, err)
			}
			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"key": key, "value": value})
			}
			printer.Print("Set %s = %s\n", key, value)
			return nil
		},
	}
}

// validateConfigValue rejects unknown providers and malformed URLs before
// they reach config.yaml.
func validateConfigValue(key, value string) error {
	switch key {
	case "provider":
		if _, ok := llm.ParseProvider(value); !ok {
			return output.NewUserError(fmt.Sprintf("Invalid provider. Must be one of: %s",
				strings.Join(llm.SupportedProviders(), ", ")))
		}
	case "api_url":
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return output.NewUserError(fmt.Sprintf("Invalid URL: %s", value))
		}
	}
	return nil
}

func newConfigResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			if err := config.NewStore("").Reset(); err != nil {
				return fail(printer, err)
			}
			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"status": "reset"})
			}
			printer.Println("Config reset to defaults.")
			return nil
		},
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
