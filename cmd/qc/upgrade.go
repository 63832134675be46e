package main

import (
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

// billingURL is the plan management page.
const billingURL = dashboardURL + "/billing"

// openURL opens a page in the user's browser. Replaced in tests.
var openURL = browser.OpenURL

// newUpgradeCmd creates the upgrade command.
func newUpgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Open the billing page to change plans",
		Args:  cobra.NoArgs,
		RunE:  runUpgrade,
	}
}

// runUpgrade opens the billing page. A missing browser is not an error:
// the URL is printed for the user to visit.
func runUpgrade(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"url": billingURL})
	}

	printer.Println("Opening " + billingURL)
	if err := openURL(billingURL); err != nil {
		printer.Println("Visit: " + billingURL)
	}
	return nil
}
