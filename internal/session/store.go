package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/primarytix/outlet/internal/api"
	"github.com/primarytix/outlet/internal/log"
	"github.com/primarytix/outlet/internal/roles"
)

// recordName is the fixed name of the durable session record inside the
// state directory.
const recordName = "session.json"

// Store owns the session and its durable record.
//
// All mutation goes through Login, Logout, and SetUser; every change is
// persisted while a token is present and the record is deleted the moment
// the token goes away. Token-identity changes are announced to subscribers
// (the reconciler) outside the store's lock.
type Store struct {
	mu          sync.Mutex
	path        string
	session     Session
	subscribers []func(token string)
	logger      *log.Logger
}

// NewStore creates a session store whose durable record lives in stateDir.
func NewStore(stateDir string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Store{
		path:   filepath.Join(stateDir, recordName),
		logger: logger,
	}
}

// Subscribe registers a callback invoked whenever the token identity changes
// (login, logout, or a restore that finds a stored token). The callback runs
// outside the store's lock.
func (s *Store) Subscribe(fn func(token string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Current returns a copy of the session.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Restore reads the durable record. A missing or malformed record yields the
// empty session and clears the record; a parse failure never reaches the
// caller. If a token was restored, subscribers are notified so reconciliation
// kicks in.
func (s *Store) Restore() Session {
	s.mu.Lock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		s.session = Session{}
		s.mu.Unlock()
		return Session{}
	}

	var restored Session
	if err := json.Unmarshal(data, &restored); err != nil {
		s.logger.Warn("discarding malformed session record", "path", s.path)
		s.session = Session{}
		os.Remove(s.path)
		s.mu.Unlock()
		return Session{}
	}

	if restored.Token == "" {
		// The invariant holds even if the record was hand-edited
		restored = Session{}
		os.Remove(s.path)
	}
	s.session = restored
	subs := s.snapshotSubscribersLocked()
	s.mu.Unlock()

	if restored.Token != "" {
		notify(subs, restored.Token)
	}
	return restored
}

// Login replaces the session wholesale from the server's login payload.
// Managed venues start empty; the reconciler populates them from /me.
func (s *Store) Login(resp *api.AuthResponse) Session {
	granted := roles.FromStrings(resp.Roles)

	s.mu.Lock()
	s.session = Session{
		Token: resp.Token,
		User: &Profile{
			ID:            resp.UserID,
			Email:         resp.Email,
			DisplayName:   resp.DisplayName,
			Roles:         granted,
			ManagedVenues: []Venue{},
		},
		Roles: granted,
	}
	s.persistLocked()
	current := s.session
	subs := s.snapshotSubscribersLocked()
	s.mu.Unlock()

	s.logger.Info("session started", "user_id", resp.UserID, "roles", resp.Roles)
	notify(subs, current.Token)
	return current
}

// Logout replaces the session with the empty value and deletes the durable
// record unconditionally.
func (s *Store) Logout() {
	s.mu.Lock()
	hadToken := s.session.Token != ""
	s.session = Session{}
	s.persistLocked()
	subs := s.snapshotSubscribersLocked()
	s.mu.Unlock()

	if hadToken {
		s.logger.Info("session ended")
		notify(subs, "")
	}
}

// SetUser replaces the cached profile. If the incoming profile carries a
// role set, the session's roles are replaced too; otherwise the existing
// roles stand. Used by the reconciler; the token is untouched.
func (s *Store) SetUser(profile *Profile) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.User = profile
	if profile != nil && len(profile.Roles) > 0 {
		s.session.Roles = profile.Roles
	}
	s.persistLocked()
	return s.session
}

// persistLocked is the single invariant-enforcement point: no token means no
// identity data lingers, in memory or on disk.
func (s *Store) persistLocked() {
	if s.session.Token == "" {
		s.session.User = nil
		s.session.Roles = nil
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			s.logger.WithError(err).Warn("failed to delete session record")
		}
		return
	}

	data, err := json.MarshalIndent(s.session, "", "  ")
	if err != nil {
		s.logger.WithError(err).Warn("failed to encode session record")
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		s.logger.WithError(err).Warn("failed to create state directory")
		return
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		s.logger.WithError(err).Warn("failed to write session record")
	}
}

func (s *Store) snapshotSubscribersLocked() []func(token string) {
	subs := make([]func(token string), len(s.subscribers))
	copy(subs, s.subscribers)
	return subs
}

func notify(subs []func(token string), token string) {
	for _, fn := range subs {
		fn(token)
	}
}
