package main

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quikcommit/qc/internal/config"
	"github.com/quikcommit/qc/internal/output"
)

// dashboardURL is where users create API keys.
const dashboardURL = "https://app.quikcommit.dev"

// newLoginCmd creates the login command.
func newLoginCmd() *cobra.Command {
	var apiKey string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API key",
		Long: `Store an API key for the hosted service.

Create a key at ` + dashboardURL + `, then run:
  qc login --api-key <key>

Without --api-key the key is read from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogin(cmd, apiKey)
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key to store")

	return cmd
}

// runLogin executes the login command.
func runLogin(cmd *cobra.Command, apiKey string) error {
	printer := newPrinter(cmd)

	if apiKey == "" {
		printer.Prompt("API key (from " + dashboardURL + "): ")
		scanner := bufio.NewScanner(cmd.InOrStdin())
		if scanner.Scan() {
			apiKey = strings.TrimSpace(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return fail(printer, output.NewSystemErrorWithCause("failed to read API key", err))
		}
	}

	store := config.NewStore("")
	if err := store.SaveAPIKey(apiKey); err != nil {
		return fail(printer, err)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"status": "logged_in", "api_key": config.MaskKey(apiKey)})
	}
	printer.Println("Successfully logged in!")
	return nil
}
