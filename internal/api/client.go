// Package api is the marketplace REST API client.
//
// All calls are bearer-token authenticated once a token is set, except the
// mock login exchange. Server rejections carry the server-supplied message;
// transport failures surface as network errors with a generic message.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/primarytix/outlet/internal/errors"
)

// DefaultBaseURL is where a local marketplace backend serves the API.
const DefaultBaseURL = "http://localhost:8080/api"

// Client is the marketplace API client. It is safe for concurrent use;
// the bearer token may be replaced while requests are in flight.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a new marketplace API client
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken sets the bearer token used to authenticate requests
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// doRequest performs an HTTP request with authentication. Extra headers
// (e.g. Idempotency-Key) are applied after the defaults.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, extra http.Header) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for key, values := range extra {
		for _, value := range values {
			req.Header.Set(key, value)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.NewNetworkError(err)
	}

	return resp, nil
}

// errorBody is the backend's error payload shape
type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// parseResponse decodes the response body into target, or maps a non-2xx
// response to a commerce error carrying the server's message and status.
func parseResponse(resp *http.Response, path string, target interface{}) error {
	defer resp.Body.Close()

	if err := checkStatus(resp, path); err != nil {
		return err
	}

	if resp.StatusCode == http.StatusNoContent || target == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return errors.Wrap(errors.ErrCodeNetworkDecode, "Unexpected error", err)
	}
	return nil
}

// checkStatus converts a non-2xx response into an error. The server's
// message field wins; the fallback names the path and status.
func checkStatus(resp *http.Response, path string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	message := fmt.Sprintf("Request to %s failed with %d", path, resp.StatusCode)

	var payload errorBody
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		message = payload.Message
	}

	return errors.NewCommerceError(message, resp.StatusCode)
}
