package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/primarytix/outlet/internal/purchase"
	"github.com/primarytix/outlet/internal/ux"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List upcoming events",
	Long: `List the events on sale, soonest first.

Examples:
  outlet events
  outlet events -o json`,
	RunE: runEvents,
}

var purchaseCmd = &cobra.Command{
	Use:   "purchase EVENT_ID",
	Short: "Buy tickets for an event",
	Long: `Buy tickets for an event.

Every submission carries a fresh idempotency key, so duplicate deliveries
of a single submission are collapsed into one order. On failure the
server's reason is shown and nothing is recorded.

Examples:
  outlet purchase ev-123 --quantity 2
  outlet purchase ev-123 --quantity 4 --payment-token tok-visa`,
	Args: cobra.ExactArgs(1),
	RunE: runPurchase,
}

func init() {
	purchaseCmd.Flags().Int("quantity", 1, "number of tickets to buy")
	purchaseCmd.Flags().String("payment-token", "", "payment token (a demo token is used when omitted)")

	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(purchaseCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.close()

	if _, err := app.requireAuth(); err != nil {
		return err
	}

	events, err := app.client.ListEvents(cmd.Context())
	if err != nil {
		return err
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartsAt.Before(events[j].StartsAt)
	})

	if !textOutput(cmd) {
		printer, err := printerFor(cmd)
		if err != nil {
			return err
		}
		return printer.Print(events)
	}

	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, "No upcoming events.")
		return nil
	}
	for _, ev := range events {
		fmt.Fprintln(out, ux.EventLine(ev))
	}
	return nil
}

func runPurchase(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.close()

	if _, err := app.requireAuth(); err != nil {
		return err
	}

	eventID := args[0]
	quantity, _ := cmd.Flags().GetInt("quantity")
	paymentToken, _ := cmd.Flags().GetString("payment-token")

	orchestrator := purchase.New(app.client, app.logger)
	attempt, err := orchestrator.Purchase(cmd.Context(), eventID, quantity, paymentToken)
	if err != nil {
		return err
	}

	if !textOutput(cmd) {
		printer, err := printerFor(cmd)
		if err != nil {
			return err
		}
		return printer.Print(attempt.Receipt)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Purchased %d ticket(s) for %s\n", attempt.Quantity, eventID)
	if receipt := attempt.Receipt; receipt != nil {
		fmt.Fprintf(out, "Total: %s (payment %s)\n", ux.FormatCents(receipt.TotalAmountCents), receipt.PaymentReference)
		fmt.Fprintf(out, "Tickets: %s\n", strings.Join(receipt.TicketCodes, ", "))
	}
	return nil
}
