// Package session owns the durable record of the authenticated principal:
// the opaque token, the cached profile, and the granted role set.
//
// The Store is the only writer of the record. The Reconciler keeps the cached
// profile in step with the server whenever the token identity changes.
package session

import (
	"github.com/primarytix/outlet/internal/api"
	"github.com/primarytix/outlet/internal/roles"
)

// Venue is a venue reference on the profile
type Venue struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

// Profile is the cached identity record for the signed-in principal
type Profile struct {
	ID            string       `json:"id"`
	Email         string       `json:"email"`
	DisplayName   string       `json:"displayName"`
	Roles         []roles.Role `json:"roles"`
	ManagedVenues []Venue      `json:"managedVenues"`
}

// Session is the client's record of an authenticated principal.
//
// Invariant: Token empty implies User nil and Roles empty. The Store enforces
// this at its single persistence point; no other code needs to.
type Session struct {
	Token string       `json:"token"`
	User  *Profile     `json:"user"`
	Roles []roles.Role `json:"roles"`
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// AvailableRoles returns the session's role set with the attendee floor
// applied, so callers always get a non-empty ordered set.
func (s Session) AvailableRoles() []roles.Role {
	return roles.Available(s.Roles)
}

// ProfileFromAPI converts the server's profile payload into the session's
// cached shape.
func ProfileFromAPI(p *api.Profile) *Profile {
	if p == nil {
		return nil
	}
	venues := make([]Venue, len(p.ManagedVenues))
	for i, v := range p.ManagedVenues {
		venues[i] = Venue{ID: v.ID, Name: v.Name, Location: v.Location}
	}
	return &Profile{
		ID:            p.ID,
		Email:         p.Email,
		DisplayName:   p.DisplayName,
		Roles:         roles.FromStrings(p.Roles),
		ManagedVenues: venues,
	}
}
