package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primarytix/outlet/internal/api"
	"github.com/primarytix/outlet/internal/roles"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	return NewStore(dir, nil), dir
}

func loginResponse() *api.AuthResponse {
	return &api.AuthResponse{
		UserID:      "u-1",
		Email:       "alice@example.com",
		DisplayName: "Alice",
		Roles:       []string{"ROLE_USER", "ROLE_MANAGER"},
		Token:       "tok-abc",
	}
}

func TestLoginThenRestore_RoundTrips(t *testing.T) {
	store, dir := newTestStore(t)
	logged := store.Login(loginResponse())

	// Simulate a process restart with a fresh store over the same directory
	reloaded := NewStore(dir, nil).Restore()

	assert.Equal(t, logged.Token, reloaded.Token)
	require.NotNil(t, reloaded.User)
	assert.Equal(t, "u-1", reloaded.User.ID)
	assert.Equal(t, []roles.Role{roles.RoleAttendee, roles.RoleManager}, reloaded.Roles)
}

func TestLogin_InitializesManagedVenuesEmpty(t *testing.T) {
	store, _ := newTestStore(t)
	sess := store.Login(loginResponse())

	require.NotNil(t, sess.User)
	assert.NotNil(t, sess.User.ManagedVenues)
	assert.Empty(t, sess.User.ManagedVenues)
}

func TestLogoutThenRestore_IsEmptyAndRecordAbsent(t *testing.T) {
	store, dir := newTestStore(t)
	store.Login(loginResponse())
	store.Logout()

	_, err := os.Stat(filepath.Join(dir, recordName))
	assert.True(t, os.IsNotExist(err))

	restored := NewStore(dir, nil).Restore()
	assert.Equal(t, Session{}, restored)
}

func TestRestore_MissingRecord(t *testing.T) {
	store, _ := newTestStore(t)
	assert.Equal(t, Session{}, store.Restore())
}

func TestRestore_MalformedRecordIsClearedSilently(t *testing.T) {
	store, dir := newTestStore(t)
	path := filepath.Join(dir, recordName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	assert.Equal(t, Session{}, store.Restore())

	// The record is cleared, not left to fail again next start
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRestore_TokenlessRecordForcedEmpty(t *testing.T) {
	store, dir := newTestStore(t)
	path := filepath.Join(dir, recordName)
	record := `{"token":"","user":{"id":"u-1","email":"a@b.c","displayName":"A","roles":["ROLE_USER"],"managedVenues":[]},"roles":["ROLE_USER"]}`
	require.NoError(t, os.WriteFile(path, []byte(record), 0600))

	restored := store.Restore()
	assert.Equal(t, Session{}, restored)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSetUser_ReplacesRolesOnlyWhenPresent(t *testing.T) {
	store, _ := newTestStore(t)
	store.Login(loginResponse())

	// Profile with roles replaces the session's role set
	sess := store.SetUser(&Profile{
		ID:    "u-1",
		Email: "alice@example.com",
		Roles: []roles.Role{roles.RoleAttendee},
		ManagedVenues: []Venue{
			{ID: "v1", Name: "Main Hall"},
		},
	})
	assert.Equal(t, []roles.Role{roles.RoleAttendee}, sess.Roles)
	assert.Equal(t, "v1", sess.User.ManagedVenues[0].ID)

	// Profile without roles keeps the existing set
	sess = store.SetUser(&Profile{ID: "u-1", Email: "alice@example.com"})
	assert.Equal(t, []roles.Role{roles.RoleAttendee}, sess.Roles)
}

func TestSetUser_WithoutTokenLeavesNoIdentityData(t *testing.T) {
	store, dir := newTestStore(t)

	sess := store.SetUser(&Profile{ID: "u-1", Roles: []roles.Role{roles.RoleAdmin}})

	// No token means identity data is forced empty at the persistence point
	assert.Nil(t, sess.User)
	assert.Empty(t, sess.Roles)
	_, err := os.Stat(filepath.Join(dir, recordName))
	assert.True(t, os.IsNotExist(err))
}

func TestSetUser_PersistsWhileTokenPresent(t *testing.T) {
	store, dir := newTestStore(t)
	store.Login(loginResponse())
	store.SetUser(&Profile{
		ID:            "u-1",
		Email:         "alice@example.com",
		Roles:         []roles.Role{roles.RoleAttendee, roles.RoleManager},
		ManagedVenues: []Venue{{ID: "v1", Name: "Main Hall"}},
	})

	data, err := os.ReadFile(filepath.Join(dir, recordName))
	require.NoError(t, err)

	var record Session
	require.NoError(t, json.Unmarshal(data, &record))
	require.NotNil(t, record.User)
	assert.Equal(t, "v1", record.User.ManagedVenues[0].ID)
}

func TestSubscribe_NotifiedOnTokenIdentityChanges(t *testing.T) {
	store, dir := newTestStore(t)

	var tokens []string
	store.Subscribe(func(token string) {
		tokens = append(tokens, token)
	})

	store.Login(loginResponse())
	store.SetUser(&Profile{ID: "u-1"}) // token unchanged, no announcement
	store.Logout()
	store.Logout() // already logged out, no announcement

	assert.Equal(t, []string{"tok-abc", ""}, tokens)

	// A restore that finds a stored token announces it
	store.Login(loginResponse())
	restoredStore := NewStore(dir, nil)
	var restoredTokens []string
	restoredStore.Subscribe(func(token string) {
		restoredTokens = append(restoredTokens, token)
	})
	restoredStore.Restore()
	assert.Equal(t, []string{"tok-abc"}, restoredTokens)
}

func TestAvailableRoles_FloorsToAttendee(t *testing.T) {
	// Server granted no roles: the effective set is still [Attendee]
	store, _ := newTestStore(t)
	sess := store.Login(&api.AuthResponse{
		UserID: "u-2",
		Email:  "bob@example.com",
		Token:  "tok-xyz",
		Roles:  nil,
	})

	assert.Empty(t, sess.Roles)
	assert.Equal(t, []roles.Role{roles.RoleAttendee}, sess.AvailableRoles())
}
