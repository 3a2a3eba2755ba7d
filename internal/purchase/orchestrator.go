// Package purchase runs the attendee ticket purchase workflow.
//
// Each user-initiated submit is a new logical attempt with a freshly minted
// idempotency key. The key travels as a correlation header so the server can
// collapse transport-level replays of that attempt into at most one ticket
// allocation. A retry after a visible failure mints a new key: it is a new
// attempt, not a replay of the old one.
package purchase

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/primarytix/outlet/internal/api"
	"github.com/primarytix/outlet/internal/errors"
	"github.com/primarytix/outlet/internal/log"
)

// Client is the slice of the API client the orchestrator needs.
type Client interface {
	Purchase(ctx context.Context, eventID string, req api.PurchaseRequest, idempotencyKey string) (*api.PurchaseResponse, error)
}

// DefaultPaymentToken stands in when the user submits without one.
const DefaultPaymentToken = "demo-token"

// OutcomeKind is the state of a purchase attempt.
type OutcomeKind int

const (
	// OutcomePending means the request is in flight
	OutcomePending OutcomeKind = iota
	// OutcomeSucceeded means tickets were allocated
	OutcomeSucceeded
	// OutcomeFailed means the server rejected the attempt
	OutcomeFailed
)

// Attempt is the live purchase record for one event. Replaced wholesale on
// each submit; never persisted.
type Attempt struct {
	EventID        string
	Quantity       int
	PaymentToken   string
	IdempotencyKey string
	Outcome        OutcomeKind
	TicketCodes    []string
	Message        string
	Receipt        *api.PurchaseResponse
}

// Orchestrator tracks one live attempt per event.
type Orchestrator struct {
	mu       sync.Mutex
	client   Client
	logger   *log.Logger
	attempts map[string]*Attempt
}

// New creates a purchase orchestrator.
func New(client Client, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Orchestrator{
		client:   client,
		logger:   logger,
		attempts: make(map[string]*Attempt),
	}
}

// Purchase submits a purchase for an event.
//
// A non-positive quantity is a validation error and never reaches the
// network; anything else is the server's call (it is authoritative on
// inventory limits). The returned attempt reflects the recorded outcome:
// success overwrites any prior failure, and a failure preserves the entered
// quantity and payment token so the user can resubmit without re-typing.
func (o *Orchestrator) Purchase(ctx context.Context, eventID string, quantity int, paymentToken string) (Attempt, error) {
	if quantity <= 0 {
		return Attempt{}, errors.New(errors.ErrCodeValidationQuantity, "Quantity must be a positive number")
	}
	if paymentToken == "" {
		paymentToken = DefaultPaymentToken
	}

	attempt := &Attempt{
		EventID:        eventID,
		Quantity:       quantity,
		PaymentToken:   paymentToken,
		IdempotencyKey: uuid.NewString(),
		Outcome:        OutcomePending,
	}
	o.mu.Lock()
	o.attempts[eventID] = attempt
	o.mu.Unlock()

	resp, err := o.client.Purchase(ctx, eventID, api.PurchaseRequest{
		Quantity:     quantity,
		PaymentToken: paymentToken,
	}, attempt.IdempotencyKey)

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		attempt.Outcome = OutcomeFailed
		attempt.Message = errors.MessageOf(err)
		o.logger.WithError(err).Warn("purchase failed", "event_id", eventID)
		return *attempt, err
	}

	attempt.Outcome = OutcomeSucceeded
	attempt.TicketCodes = resp.TicketCodes
	attempt.Message = ""
	attempt.Receipt = resp
	o.logger.Info("purchase confirmed", "event_id", eventID, "quantity", quantity, "tickets", len(resp.TicketCodes))
	return *attempt, nil
}

// Attempt returns the live attempt for an event, if any.
func (o *Orchestrator) Attempt(eventID string) (Attempt, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	attempt, ok := o.attempts[eventID]
	if !ok {
		return Attempt{}, false
	}
	return *attempt, true
}
