package ux

import (
	"fmt"
	"time"

	"github.com/primarytix/outlet/internal/api"
)

// FormatCents renders an amount of cents as dollars, e.g. 4250 -> "$42.50".
func FormatCents(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// FormatTime renders an event timestamp for terminal output.
func FormatTime(t time.Time) string {
	return t.Local().Format("Mon Jan 2 2006 15:04")
}

// Availability renders remaining inventory, e.g. "12/200 left".
func Availability(ev api.Event) string {
	remaining := ev.TicketsTotal - ev.TicketsSold
	if remaining < 0 {
		remaining = 0
	}
	if remaining == 0 {
		return "sold out"
	}
	return fmt.Sprintf("%d/%d left", remaining, ev.TicketsTotal)
}

// EventLine renders a one-line event summary for list output.
func EventLine(ev api.Event) string {
	return fmt.Sprintf("%-14s %-28s %s  %s  %s",
		ev.ID, truncate(ev.Title, 28), FormatTime(ev.StartsAt), FormatCents(ev.FaceValueCents), Availability(ev))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
