package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primarytix/outlet/internal/errors"
)

func TestMockLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/mock", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))

		var req AuthRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice@example.com", req.Email)
		assert.Equal(t, []string{"ROLE_USER", "ROLE_MANAGER"}, req.Roles)

		json.NewEncoder(w).Encode(AuthResponse{
			UserID:      "u-1",
			Email:       req.Email,
			DisplayName: req.DisplayName,
			Roles:       req.Roles,
			Token:       "tok-abc",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.MockLogin(context.Background(), AuthRequest{
		Email:           "alice@example.com",
		DisplayName:     "Alice",
		Roles:           []string{"ROLE_USER", "ROLE_MANAGER"},
		ManagedVenueIDs: []string{"v1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", resp.Token)
	assert.Equal(t, "u-1", resp.UserID)
}

func TestMockLogin_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"code": "bad_request", "message": "email must not be blank"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.MockLogin(context.Background(), AuthRequest{})
	require.Error(t, err)
	assert.True(t, errors.IsAuth(err))
	assert.Equal(t, "email must not be blank", errors.MessageOf(err))
}

func TestMe_SendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(Profile{
			ID:    "u-1",
			Email: "alice@example.com",
			Roles: []string{"ROLE_USER"},
			ManagedVenues: []ManagedVenue{
				{ID: "v1", Name: "Main Hall"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("tok-abc")

	profile, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u-1", profile.ID)
	require.Len(t, profile.ManagedVenues, 1)
	assert.Equal(t, "v1", profile.ManagedVenues[0].ID)
}

func TestPurchase_SendsIdempotencyKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/events/e1/purchase", r.URL.Path)
		require.Equal(t, "key-123", r.Header.Get("Idempotency-Key"))

		var req PurchaseRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 2, req.Quantity)
		assert.Equal(t, "demo-token", req.PaymentToken)

		json.NewEncoder(w).Encode(PurchaseResponse{
			PurchaseID:  "p-1",
			Quantity:    2,
			TicketCodes: []string{"T-001", "T-002"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("tok-abc")

	resp, err := client.Purchase(context.Background(), "e1", PurchaseRequest{Quantity: 2, PaymentToken: "demo-token"}, "key-123")
	require.NoError(t, err)
	assert.Equal(t, []string{"T-001", "T-002"}, resp.TicketCodes)
}

func TestPurchase_ServerRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"code": "conflict", "message": "Sold out"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Purchase(context.Background(), "e1", PurchaseRequest{Quantity: 2, PaymentToken: "demo-token"}, "key-123")
	require.Error(t, err)
	assert.True(t, errors.IsCommerce(err))
	assert.Equal(t, "Sold out", errors.MessageOf(err))
}

func TestParseResponse_NonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "<html>bad gateway</html>")
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.ListEvents(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCommerce(err))
	// Fallback message names the path and status
	assert.Contains(t, errors.MessageOf(err), "/events")
	assert.Contains(t, errors.MessageOf(err), "502")
}

func TestTransportFailure_IsNetworkError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1") // nothing listens here
	_, err := client.ListEvents(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsNetwork(err))
	assert.Equal(t, "Unexpected error", errors.MessageOf(err))
}

func TestGenerateTickets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/events/e1/tickets:generate", r.URL.Path)

		var req GenerateTicketsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 50, req.Quantity)

		json.NewEncoder(w).Encode(TicketBatch{Generated: 50})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	batch, err := client.GenerateTickets(context.Background(), "e1", 50)
	require.NoError(t, err)
	assert.Equal(t, 50, batch.Generated)
}

func TestExportPurchasers_StreamsCSV(t *testing.T) {
	const csv = "email,display_name,quantity,total_amount_cents,purchased_at\nalice@example.com,Alice,2,15000,2026-08-01T10:00:00Z\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/events/e1/purchasers", r.URL.Path)
		require.Equal(t, "text/csv", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "text/csv")
		io.WriteString(w, csv)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	body, err := client.ExportPurchasers(context.Background(), "e1")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, csv, string(data))
}

func TestExportPurchasers_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "Manager does not have access to this venue"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.ExportPurchasers(context.Background(), "e1")
	require.Error(t, err)
	assert.Equal(t, "Manager does not have access to this venue", errors.MessageOf(err))
}

func TestAdminDashboard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/dashboard", r.URL.Path)
		json.NewEncoder(w).Encode([]VenueSummary{
			{
				ID:   "v1",
				Name: "Main Hall",
				Events: []AdminEvent{
					{ID: "e1", Title: "Opening Night", TicketsTotal: 100, TicketsSold: 40, RevenueCents: 300000},
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	venues, err := client.AdminDashboard(context.Background())
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, 300000, venues[0].Events[0].RevenueCents)
}

func TestSetToken_ConcurrentWithRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Event{})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("tok-initial")

	// Token replacement and in-flight requests happen on different
	// goroutines during a session restore.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			client.SetToken(fmt.Sprintf("tok-%d", n))
		}(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.ListEvents(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
