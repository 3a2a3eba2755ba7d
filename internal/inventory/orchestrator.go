// Package inventory runs the venue-manager workflow: per-venue event
// aggregation, event creation, ticket issuance, and purchaser export.
//
// Consistency policy is mutate-then-refresh: after any write the whole
// per-venue index is rebuilt from the server rather than patched in place,
// so sold counts and totals shown are always server-computed.
package inventory

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/primarytix/outlet/internal/api"
	"github.com/primarytix/outlet/internal/errors"
	"github.com/primarytix/outlet/internal/log"
	"github.com/primarytix/outlet/internal/session"
)

// Client is the slice of the API client the orchestrator needs.
type Client interface {
	VenueEvents(ctx context.Context, venueID string) ([]api.Event, error)
	CreateEvent(ctx context.Context, venueID string, req api.CreateEventRequest) (*api.Event, error)
	GenerateTickets(ctx context.Context, eventID string, quantity int) (*api.TicketBatch, error)
	ExportPurchasers(ctx context.Context, eventID string) (io.ReadCloser, error)
}

// Index maps venue id to that venue's event list, in server order.
type Index map[string][]api.Event

// Orchestrator owns the manager's view of their venues' inventory.
type Orchestrator struct {
	mu      sync.Mutex
	client  Client
	logger  *log.Logger
	venues  []session.Venue
	index   Index
	message string
}

// New creates a manager inventory orchestrator.
func New(client Client, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Orchestrator{
		client: client,
		logger: logger,
		index:  Index{},
	}
}

// LoadAll fetches the event list of every managed venue and replaces the
// index wholesale. Any per-venue failure aborts the whole load with the
// aggregate error; a dashboard silently missing venues is worse than an
// explicit full-reload failure. The previous index stands on failure.
func (o *Orchestrator) LoadAll(ctx context.Context, venues []session.Venue) (Index, error) {
	fresh := make(Index, len(venues))
	for _, venue := range venues {
		events, err := o.client.VenueEvents(ctx, venue.ID)
		if err != nil {
			o.logger.WithError(err).Warn("venue event load failed", "venue_id", venue.ID)
			return nil, errors.Wrap(errors.ErrCodeCommerceLoad, "Failed to load events", err)
		}
		fresh[venue.ID] = events
	}

	o.mu.Lock()
	o.venues = venues
	o.index = fresh
	o.mu.Unlock()

	return fresh, nil
}

// Refresh re-runs LoadAll over the venues of the last successful load.
func (o *Orchestrator) Refresh(ctx context.Context) (Index, error) {
	o.mu.Lock()
	venues := o.venues
	o.mu.Unlock()
	return o.LoadAll(ctx, venues)
}

// CreateEvent submits a new event for a managed venue and re-aggregates the
// whole index rather than splicing the created event in locally.
func (o *Orchestrator) CreateEvent(ctx context.Context, venueID string, req api.CreateEventRequest) error {
	if req.Title == "" {
		return errors.NewValidationError("Title is required")
	}
	if !req.EndsAt.After(req.StartsAt) {
		return errors.NewValidationError("Event must end after it starts")
	}

	created, err := o.client.CreateEvent(ctx, venueID, req)
	if err != nil {
		return err
	}
	o.logger.Info("event created", "event_id", created.ID, "venue_id", venueID)

	o.setMessage("Event created successfully.")
	if _, err := o.Refresh(ctx); err != nil {
		return err
	}
	return nil
}

// GenerateTickets issues additional inventory for an event and refreshes the
// index so sold/total counts come back server-computed.
func (o *Orchestrator) GenerateTickets(ctx context.Context, eventID, venueID string, quantity int) error {
	if quantity <= 0 {
		return errors.New(errors.ErrCodeValidationQuantity, "Please enter a valid ticket quantity.")
	}

	batch, err := o.client.GenerateTickets(ctx, eventID, quantity)
	if err != nil {
		return err
	}
	o.logger.Info("tickets generated", "event_id", eventID, "venue_id", venueID, "generated", batch.Generated)

	o.setMessage(fmt.Sprintf("Generated %d tickets.", quantity))
	if _, err := o.Refresh(ctx); err != nil {
		return err
	}
	return nil
}

// ExportPurchasers streams the purchaser report for an event into w.
// The in-memory index is untouched.
func (o *Orchestrator) ExportPurchasers(ctx context.Context, eventID string, w io.Writer) (int64, error) {
	body, err := o.client.ExportPurchasers(ctx, eventID)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	n, err := io.Copy(w, body)
	if err != nil {
		return n, errors.Wrap(errors.ErrCodeCommerceExport, "Failed to export purchasers", err)
	}
	return n, nil
}

// Current returns the last successfully loaded index.
func (o *Orchestrator) Current() Index {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make(Index, len(o.index))
	for venueID, events := range o.index {
		out[venueID] = events
	}
	return out
}

// Message returns the latest success message, if any.
func (o *Orchestrator) Message() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.message
}

func (o *Orchestrator) setMessage(message string) {
	o.mu.Lock()
	o.message = message
	o.mu.Unlock()
}
