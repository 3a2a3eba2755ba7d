// Package router gates which role-specific workspace the signed-in
// principal may view.
//
// The router is a small state machine over the session's granted role set:
// the active role selects a workspace view, and a request for a role outside
// the granted set redirects to the first available role instead of rendering
// a forbidden view. The router lives for the duration of an authenticated
// session and is dropped on logout.
package router

import (
	"github.com/primarytix/outlet/internal/roles"
)

// View identifies a role-bound workspace.
type View int

const (
	// ViewAttendee is the event browsing and purchase workspace
	ViewAttendee View = iota
	// ViewManager is the venue inventory workspace
	ViewManager
	// ViewAdmin is the cross-venue revenue workspace
	ViewAdmin
)

// String returns the workspace name.
func (v View) String() string {
	switch v {
	case ViewAttendee:
		return "attendee"
	case ViewManager:
		return "manager"
	case ViewAdmin:
		return "admin"
	default:
		return "attendee"
	}
}

var roleViews = map[roles.Role]View{
	roles.RoleAttendee: ViewAttendee,
	roles.RoleManager:  ViewManager,
	roles.RoleAdmin:    ViewAdmin,
}

// ViewFor maps a role to its workspace. Unknown roles render the attendee
// workspace; they carry no dedicated view.
func ViewFor(role roles.Role) View {
	if view, ok := roleViews[role]; ok {
		return view
	}
	return ViewAttendee
}

// Router tracks the active role within the granted set.
type Router struct {
	available []roles.Role
	active    roles.Role
}

// New creates a router over the granted role set. The set is floored to
// [Attendee] if empty; the initial active role is the first element.
func New(granted []roles.Role) *Router {
	available := roles.Available(granted)
	return &Router{
		available: available,
		active:    available[0],
	}
}

// Available returns the granted role set (never empty).
func (r *Router) Available() []roles.Role {
	return r.available
}

// Active returns the currently active role.
func (r *Router) Active() roles.Role {
	return r.active
}

// ActiveView returns the workspace for the active role.
func (r *Router) ActiveView() View {
	return ViewFor(r.active)
}

// Switch requests a role change. If the requested role is within the granted
// set it becomes active; otherwise the router redirects to the first
// available role. The second return reports whether the request was honored
// as asked.
func (r *Router) Switch(role roles.Role) (roles.Role, bool) {
	if roles.Contains(r.available, role) {
		r.active = role
		return r.active, true
	}
	r.active = r.available[0]
	return r.active, false
}
