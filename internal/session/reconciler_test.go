package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primarytix/outlet/internal/api"
	"github.com/primarytix/outlet/internal/errors"
	"github.com/primarytix/outlet/internal/roles"
)

// fakeProfileClient serves canned /me responses keyed by the active token.
// A token listed in gates blocks until its gate channel is closed, which
// lets tests interleave slow and fast fetches.
type fakeProfileClient struct {
	mu       sync.Mutex
	token    string
	profiles map[string]*api.Profile
	errs     map[string]error
	gates    map[string]chan struct{}
	calls    []string
}

func newFakeProfileClient() *fakeProfileClient {
	return &fakeProfileClient{
		profiles: make(map[string]*api.Profile),
		errs:     make(map[string]error),
		gates:    make(map[string]chan struct{}),
	}
}

func (f *fakeProfileClient) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeProfileClient) Me(ctx context.Context) (*api.Profile, error) {
	f.mu.Lock()
	token := f.token
	f.calls = append(f.calls, token)
	gate := f.gates[token]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[token]; err != nil {
		return nil, err
	}
	return f.profiles[token], nil
}

func (f *fakeProfileClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func profileFor(id string, roleTags []string, venueIDs ...string) *api.Profile {
	venues := make([]api.ManagedVenue, len(venueIDs))
	for i, id := range venueIDs {
		venues[i] = api.ManagedVenue{ID: id, Name: "Venue " + id}
	}
	return &api.Profile{
		ID:            id,
		Email:         id + "@example.com",
		DisplayName:   id,
		Roles:         roleTags,
		ManagedVenues: venues,
	}
}

func TestReconciler_FetchesProfileOnLogin(t *testing.T) {
	store, _ := newTestStore(t)
	client := newFakeProfileClient()
	client.profiles["tok-abc"] = profileFor("u-1", []string{"ROLE_USER", "ROLE_MANAGER"}, "v1")

	rec := NewReconciler(store, client, nil)
	defer rec.Close()

	store.Login(loginResponse())
	rec.Wait()

	sess := store.Current()
	require.NotNil(t, sess.User)
	assert.Equal(t, []Venue{{ID: "v1", Name: "Venue v1"}}, sess.User.ManagedVenues)
	assert.Equal(t, []roles.Role{roles.RoleAttendee, roles.RoleManager}, sess.Roles)
	assert.NoError(t, rec.Err())
}

func TestReconciler_FailureKeepsTokenAndSetsError(t *testing.T) {
	store, _ := newTestStore(t)
	client := newFakeProfileClient()
	client.errs["tok-abc"] = errors.NewNetworkError(fmt.Errorf("dial timeout"))

	rec := NewReconciler(store, client, nil)
	defer rec.Close()

	loggedIn := store.Login(loginResponse())
	rec.Wait()

	// The token survives a failed profile fetch; the session is untouched
	sess := store.Current()
	assert.Equal(t, "tok-abc", sess.Token)
	assert.Equal(t, loggedIn.User, sess.User)

	err := rec.Err()
	require.Error(t, err)
	assert.True(t, errors.IsProfileFetch(err))
}

func TestReconciler_SuccessClearsPriorError(t *testing.T) {
	store, _ := newTestStore(t)
	client := newFakeProfileClient()
	client.errs["tok-abc"] = errors.NewNetworkError(fmt.Errorf("dial timeout"))
	client.profiles["tok-next"] = profileFor("u-1", []string{"ROLE_USER"})

	rec := NewReconciler(store, client, nil)
	defer rec.Close()

	store.Login(loginResponse())
	rec.Wait()
	require.Error(t, rec.Err())

	store.Logout()
	next := loginResponse()
	next.Token = "tok-next"
	store.Login(next)
	rec.Wait()

	assert.NoError(t, rec.Err())
}

func TestReconciler_OneFetchPerTokenValue(t *testing.T) {
	store, _ := newTestStore(t)
	client := newFakeProfileClient()
	client.profiles["tok-abc"] = profileFor("u-1", []string{"ROLE_USER"})

	rec := NewReconciler(store, client, nil)
	defer rec.Close()

	store.Login(loginResponse())
	rec.Wait()
	require.Equal(t, 1, client.callCount())

	// Restore announces the same token value again; no second fetch
	store.Restore()
	rec.Wait()
	assert.Equal(t, 1, client.callCount())
}

func TestReconciler_StaleResponseDiscarded(t *testing.T) {
	store, _ := newTestStore(t)
	client := newFakeProfileClient()

	slowGate := make(chan struct{})
	client.gates["tok-abc"] = slowGate
	client.profiles["tok-abc"] = profileFor("stale-user", []string{"ROLE_ADMIN"})
	client.profiles["tok-next"] = profileFor("fresh-user", []string{"ROLE_USER"})

	rec := NewReconciler(store, client, nil)
	defer rec.Close()

	// Fetch for token A hangs in flight
	store.Login(loginResponse())

	// Token identity changes before A resolves
	store.Logout()
	next := loginResponse()
	next.Token = "tok-next"
	store.Login(next)

	// Give the fresh fetch time to land, then release the stale one
	waitFor(t, func() bool {
		sess := store.Current()
		return sess.User != nil && sess.User.ID == "fresh-user"
	})
	close(slowGate)
	rec.Wait()

	// The stale response for token A must not overwrite token B's state
	sess := store.Current()
	require.NotNil(t, sess.User)
	assert.Equal(t, "fresh-user", sess.User.ID)
	assert.Equal(t, []roles.Role{roles.RoleAttendee}, sess.Roles)
}

func TestReconciler_CloseDiscardsInflight(t *testing.T) {
	store, _ := newTestStore(t)
	client := newFakeProfileClient()

	gate := make(chan struct{})
	client.gates["tok-abc"] = gate
	client.profiles["tok-abc"] = profileFor("late-user", []string{"ROLE_USER"})

	rec := NewReconciler(store, client, nil)
	loggedIn := store.Login(loginResponse())

	rec.Close()
	close(gate)
	rec.Wait()

	// The response arrived after teardown and was not applied
	sess := store.Current()
	assert.Equal(t, loggedIn.User, sess.User)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if cond() {
			return
		}
		select {
		case <-deadline:
			t.Fatal("condition not met in time")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
