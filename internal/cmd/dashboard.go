package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/primarytix/outlet/internal/api"
	"github.com/primarytix/outlet/internal/inventory"
	"github.com/primarytix/outlet/internal/session"
	"github.com/primarytix/outlet/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive dashboard",
	Long: `Open the interactive dashboard: one pane per granted role, switched
with the number keys. Attendees see the event listing, venue managers
their per-venue inventory, admins the marketplace totals.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// apiLoader adapts the API client and inventory orchestrator to the
// dashboard's Loader interface.
type apiLoader struct {
	client *api.Client
	orch   *inventory.Orchestrator
}

func (l *apiLoader) ListEvents(ctx context.Context) ([]api.Event, error) {
	return l.client.ListEvents(ctx)
}

func (l *apiLoader) LoadInventory(ctx context.Context, venues []session.Venue) (inventory.Index, error) {
	return l.orch.LoadAll(ctx, venues)
}

func (l *apiLoader) AdminDashboard(ctx context.Context) ([]api.VenueSummary, error) {
	return l.client.AdminDashboard(ctx)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.close()

	if _, err := app.requireAuth(); err != nil {
		return err
	}
	sess := app.syncProfile()

	loader := &apiLoader{
		client: app.client,
		orch:   inventory.New(app.client, app.logger),
	}

	model := tui.NewModel(&sess, loader)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err = program.Run()
	return err
}
