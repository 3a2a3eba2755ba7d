package cmd

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/primarytix/outlet/internal/api"
	"github.com/primarytix/outlet/internal/errors"
	"github.com/primarytix/outlet/internal/inventory"
	"github.com/primarytix/outlet/internal/roles"
	"github.com/primarytix/outlet/internal/session"
)

var managerCmd = &cobra.Command{
	Use:   "manager",
	Short: "Venue manager workflows",
	Long: `Venue manager workflows: event listings across your venues, event
creation, ticket issuance, and purchaser export.

All subcommands need the venue manager role on your session.

Subcommands:
  events            List events across your managed venues
  create-event      Create an event at one of your venues
  generate-tickets  Issue additional tickets for an event
  export            Download the purchaser report for an event`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var managerEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List events across your managed venues",
	RunE:  runManagerEvents,
}

var managerCreateEventCmd = &cobra.Command{
	Use:   "create-event VENUE_ID",
	Short: "Create an event at one of your venues",
	Long: `Create an event at one of your managed venues.

Times are RFC 3339, e.g. 2026-09-01T20:00:00Z.

Examples:
  outlet manager create-event v1 --title "Opening Night" \
    --starts 2026-09-01T20:00:00Z --ends 2026-09-01T23:00:00Z \
    --price-cents 4250`,
	Args: cobra.ExactArgs(1),
	RunE: runManagerCreateEvent,
}

var managerGenerateCmd = &cobra.Command{
	Use:   "generate-tickets EVENT_ID",
	Short: "Issue additional tickets for an event",
	Long: `Issue additional tickets for an event at one of your venues.

Examples:
  outlet manager generate-tickets ev-123 --venue v1 --quantity 50`,
	Args: cobra.ExactArgs(1),
	RunE: runManagerGenerate,
}

var managerExportCmd = &cobra.Command{
	Use:   "export EVENT_ID",
	Short: "Download the purchaser report for an event",
	Long: `Download the purchaser report for an event as CSV.

The report is written to purchasers.csv unless --out names another
file, or '-' for stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runManagerExport,
}

func init() {
	managerCreateEventCmd.Flags().String("title", "", "event title (required)")
	managerCreateEventCmd.Flags().String("description", "", "event description")
	managerCreateEventCmd.Flags().String("starts", "", "start time, RFC 3339 (required)")
	managerCreateEventCmd.Flags().String("ends", "", "end time, RFC 3339 (required)")
	managerCreateEventCmd.Flags().Int("price-cents", 0, "face value per ticket in cents")

	managerGenerateCmd.Flags().String("venue", "", "venue the event belongs to (required)")
	managerGenerateCmd.Flags().Int("quantity", 0, "number of tickets to issue (required)")

	managerExportCmd.Flags().String("out", "purchasers.csv", "output file ('-' for stdout)")

	managerCmd.AddCommand(managerEventsCmd)
	managerCmd.AddCommand(managerCreateEventCmd)
	managerCmd.AddCommand(managerGenerateCmd)
	managerCmd.AddCommand(managerExportCmd)
	rootCmd.AddCommand(managerCmd)
}

// managedVenues pulls the venue list off the freshest profile.
func managedVenues(sess session.Session) []session.Venue {
	if sess.User == nil {
		return nil
	}
	return sess.User.ManagedVenues
}

func runManagerEvents(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.close()

	sess, err := app.requireRole(roles.RoleManager)
	if err != nil {
		return err
	}

	orch := inventory.New(app.client, app.logger)
	index, err := orch.LoadAll(cmd.Context(), managedVenues(sess))
	if err != nil {
		return err
	}

	if !textOutput(cmd) {
		printer, err := printerFor(cmd)
		if err != nil {
			return err
		}
		return printer.Print(index)
	}

	printIndex(cmd, sess, index)
	return nil
}

func printIndex(cmd *cobra.Command, sess session.Session, index inventory.Index) {
	out := cmd.OutOrStdout()
	venues := managedVenues(sess)
	if len(venues) == 0 {
		fmt.Fprintln(out, "No managed venues.")
		return
	}

	sorted := make([]session.Venue, len(venues))
	copy(sorted, venues)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, venue := range sorted {
		fmt.Fprintf(out, "%s (%s)\n", venue.Name, venue.ID)
		events := index[venue.ID]
		if len(events) == 0 {
			fmt.Fprintln(out, "  no events")
			continue
		}
		for _, ev := range events {
			fmt.Fprintf(out, "  %-14s %-28s sold %d/%d\n", ev.ID, ev.Title, ev.TicketsSold, ev.TicketsTotal)
		}
	}
}

func runManagerCreateEvent(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.close()

	sess, err := app.requireRole(roles.RoleManager)
	if err != nil {
		return err
	}

	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	startsRaw, _ := cmd.Flags().GetString("starts")
	endsRaw, _ := cmd.Flags().GetString("ends")
	priceCents, _ := cmd.Flags().GetInt("price-cents")

	starts, err := parseEventTime("starts", startsRaw)
	if err != nil {
		return err
	}
	ends, err := parseEventTime("ends", endsRaw)
	if err != nil {
		return err
	}

	orch := inventory.New(app.client, app.logger)
	if _, err := orch.LoadAll(cmd.Context(), managedVenues(sess)); err != nil {
		return err
	}
	if err := orch.CreateEvent(cmd.Context(), args[0], api.CreateEventRequest{
		Title:          title,
		Description:    description,
		StartsAt:       starts,
		EndsAt:         ends,
		FaceValueCents: priceCents,
	}); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), orch.Message())
	printIndex(cmd, sess, orch.Current())
	return nil
}

func runManagerGenerate(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.close()

	sess, err := app.requireRole(roles.RoleManager)
	if err != nil {
		return err
	}

	venueID, _ := cmd.Flags().GetString("venue")
	quantity, _ := cmd.Flags().GetInt("quantity")
	if venueID == "" {
		return errors.NewValidationError("--venue is required")
	}

	orch := inventory.New(app.client, app.logger)
	if _, err := orch.LoadAll(cmd.Context(), managedVenues(sess)); err != nil {
		return err
	}
	if err := orch.GenerateTickets(cmd.Context(), args[0], venueID, quantity); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), orch.Message())
	printIndex(cmd, sess, orch.Current())
	return nil
}

func runManagerExport(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.close()

	if _, err := app.requireRole(roles.RoleManager); err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("out")
	orch := inventory.New(app.client, app.logger)

	if outPath == "-" {
		_, err := orch.ExportPurchasers(cmd.Context(), args[0], cmd.OutOrStdout())
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, fmt.Sprintf("create %s", outPath), err)
	}
	defer f.Close()

	n, err := orch.ExportPurchasers(cmd.Context(), args[0], f)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", n, outPath)
	return nil
}

func parseEventTime(flag, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.NewValidationError(fmt.Sprintf("--%s is required", flag))
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errors.NewValidationError(fmt.Sprintf("--%s must be RFC 3339, e.g. 2026-09-01T20:00:00Z", flag))
	}
	return t, nil
}
