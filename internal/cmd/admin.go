package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/primarytix/outlet/internal/roles"
	"github.com/primarytix/outlet/internal/ux"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Marketplace administration",
	Long: `Marketplace administration. Needs the admin role on your session.

Subcommands:
  dashboard  Show every venue with per-event sales and revenue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var adminDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show every venue with per-event sales and revenue",
	RunE:  runAdminDashboard,
}

func init() {
	adminCmd.AddCommand(adminDashboardCmd)
	rootCmd.AddCommand(adminCmd)
}

func runAdminDashboard(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.close()

	if _, err := app.requireRole(roles.RoleAdmin); err != nil {
		return err
	}

	venues, err := app.client.AdminDashboard(cmd.Context())
	if err != nil {
		return err
	}

	if !textOutput(cmd) {
		printer, err := printerFor(cmd)
		if err != nil {
			return err
		}
		return printer.Print(venues)
	}

	out := cmd.OutOrStdout()
	if len(venues) == 0 {
		fmt.Fprintln(out, "No venues.")
		return nil
	}
	for _, venue := range venues {
		fmt.Fprintf(out, "%s", venue.Name)
		if venue.Location != "" {
			fmt.Fprintf(out, " - %s", venue.Location)
		}
		fmt.Fprintln(out)
		for _, ev := range venue.Events {
			fmt.Fprintf(out, "  %-28s sold %d/%d  revenue %s\n",
				ev.Title, ev.TicketsSold, ev.TicketsTotal, ux.FormatCents(ev.RevenueCents))
		}
	}
	return nil
}
