package session

import (
	"context"
	"sync"

	"github.com/primarytix/outlet/internal/api"
	"github.com/primarytix/outlet/internal/errors"
	"github.com/primarytix/outlet/internal/log"
)

// ProfileClient is the slice of the API client the reconciler needs.
type ProfileClient interface {
	SetToken(token string)
	Me(ctx context.Context) (*api.Profile, error)
}

// Reconciler keeps the cached profile in step with the server.
//
// It subscribes to the store's token-identity changes. A transition from
// absent to present issues exactly one authenticated profile fetch for that
// token value; a repeated announcement of the same value is ignored. A fetch
// whose token was replaced before it resolved is discarded rather than
// applied, so a stale response for token A can never overwrite state
// established for token B.
type Reconciler struct {
	store  *Store
	client ProfileClient
	logger *log.Logger

	mu         sync.Mutex
	generation int
	lastToken  string
	fetchErr   error
	closed     bool
	inflight   sync.WaitGroup
}

// NewReconciler creates a reconciler bound to the store's token changes.
func NewReconciler(store *Store, client ProfileClient, logger *log.Logger) *Reconciler {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	r := &Reconciler{
		store:  store,
		client: client,
		logger: logger,
	}
	store.Subscribe(r.onTokenChange)
	return r
}

// Err returns the outcome of the most recent reconciliation: nil after a
// success, a ProfileFetchError after a failure. The session token is never
// cleared on a fetch failure.
func (r *Reconciler) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fetchErr
}

// Wait blocks until any in-flight fetch has settled.
func (r *Reconciler) Wait() {
	r.inflight.Wait()
}

// Close tears the reconciler down. In-flight results are discarded.
func (r *Reconciler) Close() {
	r.mu.Lock()
	r.closed = true
	r.generation++
	r.mu.Unlock()
}

func (r *Reconciler) onTokenChange(token string) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	if token == r.lastToken {
		// Same token value: the fetch for it is already issued or done
		r.mu.Unlock()
		return
	}
	r.lastToken = token
	r.generation++
	gen := r.generation
	r.mu.Unlock()

	if token == "" {
		// Logout: nothing to fetch, the bumped generation orphans any
		// in-flight response
		return
	}

	r.client.SetToken(token)
	r.inflight.Add(1)
	go r.fetch(gen, token)
}

func (r *Reconciler) fetch(gen int, token string) {
	defer r.inflight.Done()

	profile, err := r.client.Me(context.Background())

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || gen != r.generation {
		// The token changed while we were in flight; discard
		r.logger.Debug("discarding stale profile response")
		return
	}

	if err != nil {
		r.logger.WithError(err).Warn("profile fetch failed")
		r.fetchErr = errors.NewProfileFetchError(err)
		return
	}

	r.fetchErr = nil
	r.store.SetUser(ProfileFromAPI(profile))
	r.logger.Debug("profile reconciled", "user_id", profile.ID, "roles", profile.Roles)
}
