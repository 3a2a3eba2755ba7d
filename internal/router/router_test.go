package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/primarytix/outlet/internal/roles"
)

func TestNew_InitialActiveIsFirstAvailable(t *testing.T) {
	r := New([]roles.Role{roles.RoleManager, roles.RoleAdmin})
	assert.Equal(t, roles.RoleManager, r.Active())
	assert.Equal(t, ViewManager, r.ActiveView())
}

func TestNew_EmptyRoleSetFloorsToAttendee(t *testing.T) {
	r := New(nil)
	assert.Equal(t, []roles.Role{roles.RoleAttendee}, r.Available())
	assert.Equal(t, roles.RoleAttendee, r.Active())
}

func TestSwitch_WithinGrantedSet(t *testing.T) {
	r := New([]roles.Role{roles.RoleAttendee, roles.RoleManager})

	active, ok := r.Switch(roles.RoleManager)
	assert.True(t, ok)
	assert.Equal(t, roles.RoleManager, active)
	assert.Equal(t, ViewManager, r.ActiveView())
}

func TestSwitch_OutsideGrantedSetRedirects(t *testing.T) {
	r := New([]roles.Role{roles.RoleAttendee, roles.RoleManager})

	// Navigation to the admin workspace is not granted: redirect to the
	// first available role instead of rendering a forbidden view
	active, ok := r.Switch(roles.RoleAdmin)
	assert.False(t, ok)
	assert.Equal(t, roles.RoleAttendee, active)
	assert.Equal(t, ViewAttendee, r.ActiveView())
}

func TestSwitch_RedirectFromUnknownRole(t *testing.T) {
	r := New([]roles.Role{roles.RoleManager})

	active, ok := r.Switch(roles.Role("ROLE_AUDITOR"))
	assert.False(t, ok)
	assert.Equal(t, roles.RoleManager, active)
}

func TestViewFor_UnknownRoleRendersAttendee(t *testing.T) {
	assert.Equal(t, ViewAttendee, ViewFor(roles.Role("ROLE_AUDITOR")))
	assert.Equal(t, ViewAdmin, ViewFor(roles.RoleAdmin))
}

func TestViewString(t *testing.T) {
	assert.Equal(t, "attendee", ViewAttendee.String())
	assert.Equal(t, "manager", ViewManager.String())
	assert.Equal(t, "admin", ViewAdmin.String())
}
