package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// VenueEvents retrieves the event list for a managed venue.
func (c *Client) VenueEvents(ctx context.Context, venueID string) ([]Event, error) {
	path := fmt.Sprintf("/venues/%s/events", venueID)
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var events []Event
	if err := parseResponse(resp, path, &events); err != nil {
		return nil, err
	}

	return events, nil
}

// CreateEvent creates an event at a managed venue.
func (c *Client) CreateEvent(ctx context.Context, venueID string, req CreateEventRequest) (*Event, error) {
	path := fmt.Sprintf("/venues/%s/events", venueID)
	resp, err := c.doRequest(ctx, http.MethodPost, path, req, nil)
	if err != nil {
		return nil, err
	}

	var event Event
	if err := parseResponse(resp, path, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

// GenerateTickets issues additional ticket inventory for an event.
func (c *Client) GenerateTickets(ctx context.Context, eventID string, quantity int) (*TicketBatch, error) {
	path := fmt.Sprintf("/events/%s/tickets:generate", eventID)
	resp, err := c.doRequest(ctx, http.MethodPost, path, GenerateTicketsRequest{Quantity: quantity}, nil)
	if err != nil {
		return nil, err
	}

	var batch TicketBatch
	if err := parseResponse(resp, path, &batch); err != nil {
		return nil, err
	}

	return &batch, nil
}

// ExportPurchasers streams the purchaser report for an event as CSV.
// The caller owns closing the returned reader.
func (c *Client) ExportPurchasers(ctx context.Context, eventID string) (io.ReadCloser, error) {
	path := fmt.Sprintf("/events/%s/purchasers", eventID)
	headers := http.Header{}
	headers.Set("Accept", "text/csv")

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, headers)
	if err != nil {
		return nil, err
	}

	if err := checkStatus(resp, path); err != nil {
		resp.Body.Close()
		return nil, err
	}

	return resp.Body, nil
}
