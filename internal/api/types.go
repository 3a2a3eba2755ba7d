package api

import "time"

// AuthRequest is the mock SSO exchange: a claimed identity plus the roles and
// managed venues the session should carry.
type AuthRequest struct {
	Email           string   `json:"email"`
	DisplayName     string   `json:"displayName"`
	Roles           []string `json:"roles"`
	ManagedVenueIDs []string `json:"managedVenueIds"`
}

// AuthResponse is the server's login payload
type AuthResponse struct {
	UserID      string   `json:"userId"`
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName"`
	Roles       []string `json:"roles"`
	Token       string   `json:"token"`
}

// ManagedVenue is a venue reference carried on the profile
type ManagedVenue struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Profile is the authoritative identity record served by GET /me
type Profile struct {
	ID            string         `json:"id"`
	Email         string         `json:"email"`
	DisplayName   string         `json:"displayName"`
	Roles         []string       `json:"roles"`
	ManagedVenues []ManagedVenue `json:"managedVenues"`
}

// Event is an event summary as listed for attendees and managers
type Event struct {
	ID             string    `json:"id"`
	VenueID        string    `json:"venueId"`
	VenueName      string    `json:"venueName"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	StartsAt       time.Time `json:"startsAt"`
	EndsAt         time.Time `json:"endsAt"`
	FaceValueCents int       `json:"faceValueCents"`
	TicketsTotal   int       `json:"ticketsTotal"`
	TicketsSold    int       `json:"ticketsSold"`
}

// PurchaseRequest is the purchase submission body
type PurchaseRequest struct {
	Quantity     int    `json:"quantity"`
	PaymentToken string `json:"paymentToken"`
}

// PurchaseResponse is the server's record of a completed purchase
type PurchaseResponse struct {
	PurchaseID       string   `json:"purchaseId"`
	PaymentReference string   `json:"paymentReference"`
	Quantity         int      `json:"quantity"`
	TotalAmountCents int      `json:"totalAmountCents"`
	TicketCodes      []string `json:"ticketCodes"`
}

// CreateEventRequest is the event creation body
type CreateEventRequest struct {
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	StartsAt       time.Time `json:"startsAt"`
	EndsAt         time.Time `json:"endsAt"`
	FaceValueCents int       `json:"faceValueCents"`
}

// GenerateTicketsRequest is the inventory issuance body
type GenerateTicketsRequest struct {
	Quantity int `json:"quantity"`
}

// TicketBatch reports how many tickets an issuance produced
type TicketBatch struct {
	Generated int `json:"generated"`
}

// AdminEvent is an event summary on the admin dashboard, with revenue
type AdminEvent struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	StartsAt     time.Time `json:"startsAt"`
	TicketsTotal int       `json:"ticketsTotal"`
	TicketsSold  int       `json:"ticketsSold"`
	RevenueCents int       `json:"revenueCents"`
}

// VenueSummary is a venue with its nested events on the admin dashboard
type VenueSummary struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Location string       `json:"location"`
	Events   []AdminEvent `json:"events"`
}
