package api

import (
	"context"
	"net/http"
)

// AdminDashboard retrieves every venue with its nested events and revenue.
// Admin role only; the server enforces that.
func (c *Client) AdminDashboard(ctx context.Context) ([]VenueSummary, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/admin/dashboard", nil, nil)
	if err != nil {
		return nil, err
	}

	var venues []VenueSummary
	if err := parseResponse(resp, "/admin/dashboard", &venues); err != nil {
		return nil, err
	}

	return venues, nil
}
