// Package tui implements the interactive dashboard: a role-gated terminal
// view over the marketplace, one pane per granted role.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/primarytix/outlet/internal/api"
	"github.com/primarytix/outlet/internal/errors"
	"github.com/primarytix/outlet/internal/inventory"
	"github.com/primarytix/outlet/internal/roles"
	"github.com/primarytix/outlet/internal/router"
	"github.com/primarytix/outlet/internal/session"
)

// Loader fetches the data each pane shows. Implemented by the API client;
// tests substitute fakes.
type Loader interface {
	ListEvents(ctx context.Context) ([]api.Event, error)
	LoadInventory(ctx context.Context, venues []session.Venue) (inventory.Index, error)
	AdminDashboard(ctx context.Context) ([]api.VenueSummary, error)
}

// keyMap defines the keyboard shortcuts
type keyMap struct {
	Attendee key.Binding
	Manager  key.Binding
	Admin    key.Binding
	Reload   key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Attendee: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "attendee"),
	),
	Manager: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "manager"),
	),
	Admin: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "admin"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Model is the dashboard state.
type Model struct {
	session *session.Session
	router  *router.Router
	loader  Loader

	// pane data
	events    []api.Event
	inventory inventory.Index
	admin     []api.VenueSummary

	// UI state
	spinner  spinner.Model
	loading  bool
	lastErr  string
	width    int
	height   int
	ready    bool
	quitting bool

	styles Styles
}

// Styles contains lipgloss styles for the dashboard
type Styles struct {
	Title    lipgloss.Style
	Tab      lipgloss.Style
	TabOn    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Muted    lipgloss.Style
	Border   lipgloss.Style
	Help     lipgloss.Style
	Key      lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1),
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1),
		TabOn: lipgloss.NewStyle().
			Background(lipgloss.Color("63")).
			Foreground(lipgloss.Color("230")).
			Bold(true).
			Padding(0, 1),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Key: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")),
	}
}

// NewModel creates a dashboard model for the given session.
func NewModel(sess *session.Session, loader Loader) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		session: sess,
		router:  router.New(sess.AvailableRoles()),
		loader:  loader,
		spinner: sp,
		styles:  DefaultStyles(),
	}
}

// Messages for pane loads

// EventsLoadedMsg carries the attendee event listing
type EventsLoadedMsg struct {
	Events []api.Event
}

// InventoryLoadedMsg carries the manager's per-venue index
type InventoryLoadedMsg struct {
	Index inventory.Index
}

// AdminLoadedMsg carries the admin dashboard summaries
type AdminLoadedMsg struct {
	Venues []api.VenueSummary
}

// LoadFailedMsg reports a failed pane load
type LoadFailedMsg struct {
	Err error
}

// Init starts the spinner and the first pane load (required by Bubble Tea)
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadActive())
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case EventsLoadedMsg:
		m.events = msg.Events
		m.loading = false
		m.lastErr = ""
		return m, nil

	case InventoryLoadedMsg:
		m.inventory = msg.Index
		m.loading = false
		m.lastErr = ""
		return m, nil

	case AdminLoadedMsg:
		m.admin = msg.Venues
		m.loading = false
		m.lastErr = ""
		return m, nil

	case LoadFailedMsg:
		m.loading = false
		m.lastErr = errors.MessageOf(msg.Err)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Attendee):
		return m.switchTo(roles.RoleAttendee)

	case key.Matches(msg, keys.Manager):
		return m.switchTo(roles.RoleManager)

	case key.Matches(msg, keys.Admin):
		return m.switchTo(roles.RoleAdmin)

	case key.Matches(msg, keys.Reload):
		return m.reload()
	}

	return m, nil
}

// switchTo activates the requested role's pane. Asking for a role the
// session lacks lands on the first granted one, same as the router.
func (m Model) switchTo(role roles.Role) (tea.Model, tea.Cmd) {
	before := m.router.Active()
	granted, _ := m.router.Switch(role)
	if granted == before {
		return m, nil
	}
	return m.reload()
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	m.loading = true
	m.lastErr = ""
	return m, tea.Batch(m.spinner.Tick, m.loadActive())
}

// loadActive returns the command that fetches the active pane's data.
func (m Model) loadActive() tea.Cmd {
	view := m.router.ActiveView()
	sess := m.session
	loader := m.loader
	return func() tea.Msg {
		ctx := context.Background()
		switch view {
		case router.ViewManager:
			var venues []session.Venue
			if sess.User != nil {
				venues = sess.User.ManagedVenues
			}
			index, err := loader.LoadInventory(ctx, venues)
			if err != nil {
				return LoadFailedMsg{Err: err}
			}
			return InventoryLoadedMsg{Index: index}

		case router.ViewAdmin:
			venues, err := loader.AdminDashboard(ctx)
			if err != nil {
				return LoadFailedMsg{Err: err}
			}
			return AdminLoadedMsg{Venues: venues}

		default:
			events, err := loader.ListEvents(ctx)
			if err != nil {
				return LoadFailedMsg{Err: err}
			}
			return EventsLoadedMsg{Events: events}
		}
	}
}

// ActiveRole exposes the active role for rendering and tests.
func (m Model) ActiveRole() roles.Role {
	return m.router.Active()
}
