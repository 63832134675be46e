package main

import (
	"github.com/spf13/cobra"

	"github.com/quikcommit/qc/internal/config"
)

// newLogoutCmd creates the logout command.
func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			removed, err := config.NewStore("").ClearAPIKey()
			if err != nil {
				return fail(printer, err)
			}
			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"status": "logged_out", "removed": removed})
			}
			printer.Println("Logged out. Credentials cleared.")
			return nil
		},
	}
}
