package api

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/primarytix/outlet/internal/errors"
)

// MockLogin exchanges a claimed identity and role set for a session token.
// Unauthenticated; the server answers with the token and the granted roles.
func (c *Client) MockLogin(ctx context.Context, req AuthRequest) (*AuthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/mock", req, nil)
	if err != nil {
		return nil, err
	}

	var authResp AuthResponse
	if err := parseResponse(resp, "/auth/mock", &authResp); err != nil {
		if errors.IsCommerce(err) {
			// Login rejections are auth errors, not commerce errors
			return nil, errors.NewAuthError(errors.MessageOf(err), statusOf(err))
		}
		return nil, err
	}

	return &authResp, nil
}

// Me fetches the authoritative profile for the current token.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err := parseResponse(resp, "/me", &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

func statusOf(err error) int {
	var oe *errors.OutletError
	if stderrors.As(err, &oe) {
		return oe.Status
	}
	return 0
}
