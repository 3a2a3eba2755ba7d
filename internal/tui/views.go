package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/primarytix/outlet/internal/router"
	"github.com/primarytix/outlet/internal/ux"
)

// View renders the dashboard (required by Bubble Tea)
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.quitting {
		return m.styles.Muted.Render("Goodbye.") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading...\n")
	} else if m.lastErr != "" {
		b.WriteString(m.styles.Error.Render(m.lastErr))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderPane())
	}

	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	title := "Primary Ticket Outlet"
	if m.session.User != nil {
		title = fmt.Sprintf("Primary Ticket Outlet  %s", m.styles.Muted.Render(m.session.User.Email))
	}

	tabs := make([]string, 0, 3)
	for _, role := range m.router.Available() {
		label := role.Label()
		if role == m.router.Active() {
			tabs = append(tabs, m.styles.TabOn.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}

	return m.styles.Title.Render(title) + "\n" + strings.Join(tabs, " ") + "\n"
}

func (m Model) renderPane() string {
	switch m.router.ActiveView() {
	case router.ViewManager:
		return m.renderManager()
	case router.ViewAdmin:
		return m.renderAdmin()
	default:
		return m.renderAttendee()
	}
}

func (m Model) renderAttendee() string {
	if len(m.events) == 0 {
		return m.styles.Muted.Render("No upcoming events.") + "\n"
	}
	var b strings.Builder
	for _, ev := range m.events {
		b.WriteString(ux.EventLine(ev))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderManager() string {
	if len(m.inventory) == 0 {
		return m.styles.Muted.Render("No managed venues.") + "\n"
	}

	venueIDs := make([]string, 0, len(m.inventory))
	for id := range m.inventory {
		venueIDs = append(venueIDs, id)
	}
	sort.Strings(venueIDs)

	var b strings.Builder
	for _, id := range venueIDs {
		b.WriteString(m.styles.Key.Render(venueName(m, id)))
		b.WriteString("\n")
		events := m.inventory[id]
		if len(events) == 0 {
			b.WriteString(m.styles.Muted.Render("  no events"))
			b.WriteString("\n")
			continue
		}
		for _, ev := range events {
			b.WriteString(fmt.Sprintf("  %-28s sold %d/%d\n", ev.Title, ev.TicketsSold, ev.TicketsTotal))
		}
	}
	return b.String()
}

func (m Model) renderAdmin() string {
	if len(m.admin) == 0 {
		return m.styles.Muted.Render("No venues.") + "\n"
	}
	var b strings.Builder
	for _, venue := range m.admin {
		b.WriteString(m.styles.Key.Render(venue.Name))
		if venue.Location != "" {
			b.WriteString(m.styles.Muted.Render("  " + venue.Location))
		}
		b.WriteString("\n")
		for _, ev := range venue.Events {
			b.WriteString(fmt.Sprintf("  %-28s sold %d/%d  revenue %s\n",
				ev.Title, ev.TicketsSold, ev.TicketsTotal, ux.FormatCents(ev.RevenueCents)))
		}
	}
	return b.String()
}

func (m Model) renderHelp() string {
	parts := []string{
		m.styles.Key.Render("1/2/3") + m.styles.Muted.Render(" switch role"),
		m.styles.Key.Render("r") + m.styles.Muted.Render(" reload"),
		m.styles.Key.Render("q") + m.styles.Muted.Render(" quit"),
	}
	return m.styles.Help.Render(strings.Join(parts, "  "))
}

func venueName(m Model, venueID string) string {
	if m.session.User != nil {
		for _, v := range m.session.User.ManagedVenues {
			if v.ID == venueID {
				return v.Name
			}
		}
	}
	return venueID
}
