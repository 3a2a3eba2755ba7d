package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListEvents retrieves the attendee-visible upcoming events.
func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/events", nil, nil)
	if err != nil {
		return nil, err
	}

	var events []Event
	if err := parseResponse(resp, "/events", &events); err != nil {
		return nil, err
	}

	return events, nil
}

// Purchase submits a ticket purchase for an event. The idempotency key is
// sent as a correlation header so the server collapses transport-level
// replays of this attempt into a single allocation.
func (c *Client) Purchase(ctx context.Context, eventID string, req PurchaseRequest, idempotencyKey string) (*PurchaseResponse, error) {
	path := fmt.Sprintf("/events/%s/purchase", eventID)
	headers := http.Header{}
	headers.Set("Idempotency-Key", idempotencyKey)

	resp, err := c.doRequest(ctx, http.MethodPost, path, req, headers)
	if err != nil {
		return nil, err
	}

	var purchaseResp PurchaseResponse
	if err := parseResponse(resp, path, &purchaseResp); err != nil {
		return nil, err
	}

	return &purchaseResp, nil
}
