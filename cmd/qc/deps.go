package main

import (
	"github.com/spf13/cobra"

	"github.com/quikcommit/qc/internal/api"
	"github.com/quikcommit/qc/internal/config"
	"github.com/quikcommit/qc/internal/git"
	"github.com/quikcommit/qc/internal/output"
)

// newPrinter builds the printer for a command: results to stdout,
// diagnostics and prompts to stderr.
func newPrinter(cmd *cobra.Command) *output.Printer {
	out := cmd.OutOrStdout()
	return output.NewPrinter(out, isJSONMode(cmd), output.IsTTY(out)).WithStderr(cmd.ErrOrStderr())
}

// fail prints err and returns it, the pattern every command ends an error path with.
func fail(printer *output.Printer, err error) error {
	printer.Error(err)
	return err
}

// modelFlag returns --model, falling back to the configured model.
func modelFlag(cmd *cobra.Command, cfg *config.Config) string {
	if flag := cmd.Flags().Lookup("model"); flag != nil && flag.Value.String() != "" {
		return flag.Value.String()
	}
	return cfg.Model
}

// openRepo returns the repository in the working directory and its root.
func openRepo() (*git.Repo, string, error) {
	repo := git.NewRepo("")
	if !repo.IsRepo() {
		return nil, "", output.NewUserError("Not a git repository.")
	}
	root, err := repo.Root()
	if err != nil {
		return nil, "", err
	}
	return repo, root, nil
}

// newAPIClient returns a service client for the stored or given key.
// Requests fail with a login hint when no key is available.
func newAPIClient(store *config.Store, cfg *config.Config, apiKey string) *api.Client {
	if apiKey == "" {
		apiKey = store.APIKey()
	}
	return api.New(serviceURL(cfg), apiKey)
}

// serviceURL is the hosted service base URL. When a local provider is
// configured, api_url belongs to that provider and the service falls back
// to $QC_API_URL or the default.
func serviceURL(cfg *config.Config) string {
	if cfg.Provider != "" {
		return (&config.Config{}).ResolveAPIURL()
	}
	return cfg.ResolveAPIURL()
}
