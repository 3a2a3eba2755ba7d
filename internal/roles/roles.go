// Package roles defines the role tags a marketplace session may carry and the
// policies for presenting them.
//
// Roles arrive from the server as wire strings (ROLE_USER, ROLE_MANAGER,
// ROLE_ADMIN). Unrecognized tags are kept as-is: they still render, using the
// raw string as their label, but map to no dedicated workspace.
package roles

// Role is a role tag as carried on the wire.
type Role string

// Known role tags
const (
	// RoleAttendee grants the attendee workspace (event browsing, purchase).
	RoleAttendee Role = "ROLE_USER"
	// RoleManager grants the venue-manager workspace (inventory, reports).
	RoleManager Role = "ROLE_MANAGER"
	// RoleAdmin grants the admin workspace (all venues with revenue).
	RoleAdmin Role = "ROLE_ADMIN"
)

var labels = map[Role]string{
	RoleAttendee: "Attendee",
	RoleManager:  "Manager",
	RoleAdmin:    "Admin",
}

// Label returns the display name for the role. Unknown tags fall back to the
// raw wire string so they remain renderable.
func (r Role) Label() string {
	if label, ok := labels[r]; ok {
		return label
	}
	return string(r)
}

// Known reports whether the role maps to a dedicated workspace.
func (r Role) Known() bool {
	_, ok := labels[r]
	return ok
}

// FromStrings converts wire strings into roles, deduplicating while
// preserving order. The first element is the session's default active role.
func FromStrings(tags []string) []Role {
	out := make([]Role, 0, len(tags))
	seen := make(map[Role]bool, len(tags))
	for _, tag := range tags {
		role := Role(tag)
		if tag == "" || seen[role] {
			continue
		}
		seen[role] = true
		out = append(out, role)
	}
	return out
}

// Strings converts roles back to their wire strings.
func Strings(rs []Role) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}

// Available applies the non-empty floor: a session whose role set came back
// empty is still presented as an attendee rather than as nothing.
func Available(rs []Role) []Role {
	if len(rs) == 0 {
		return []Role{RoleAttendee}
	}
	return rs
}

// Contains reports whether rs includes role.
func Contains(rs []Role, role Role) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}
