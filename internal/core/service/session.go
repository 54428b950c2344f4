package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/secureauth/webclient/internal/core/domain"
	"github.com/secureauth/webclient/internal/core/ports"
)

// Snapshot is the read-only view of the session state.
type Snapshot struct {
	IsAuthenticated bool
	User            *domain.User
}

// Subscriber is notified synchronously whenever the authenticated state is
// (re)asserted or cleared. Callbacks run outside the store's lock and may
// call Query.
type Subscriber func(authenticated bool)

// SessionStore holds the single client session: the token/user pair, set and
// cleared atomically, persisted across restarts. One instance exists per
// process; it is constructed in main and injected everywhere it is needed.
type SessionStore struct {
	mu          sync.Mutex
	session     domain.Session
	generation  uint64
	subscribers []Subscriber

	persistence ports.SessionPersistence
	log         zerolog.Logger
}

// NewSessionStore builds the store and restores any persisted session. A
// persisted pair missing either half is treated as absent and erased, so the
// token-without-user invariant holds from the first Query on.
func NewSessionStore(ctx context.Context, persistence ports.SessionPersistence, log zerolog.Logger) *SessionStore {
	s := &SessionStore{persistence: persistence, log: log}

	sess, ok, err := persistence.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("session restore failed, starting unauthenticated")
		return s
	}
	if !ok {
		return s
	}
	if !sess.Complete() {
		log.Warn().Msg("persisted session incomplete, discarding")
		if err := persistence.Erase(ctx); err != nil {
			log.Error().Err(err).Msg("failed to erase incomplete session")
		}
		return s
	}

	s.session = sess
	log.Info().Str("username", sess.User.Username).Msg("session restored")
	return s
}

// BeginAttempt bumps the request generation and returns it. The caller passes
// the value back to EstablishIfCurrent so a response that arrives after a
// newer attempt (or a logout) is discarded instead of resurrecting a session
// the user no longer wants.
func (s *SessionStore) BeginAttempt() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// Establish atomically sets the token/user pair, persists it, and notifies
// subscribers. Any prior session is overwritten without requiring Clear.
func (s *SessionStore) Establish(ctx context.Context, token string, user *domain.User) {
	s.mu.Lock()
	s.establishLocked(ctx, token, user)
	subs := s.snapshotSubscribers()
	s.mu.Unlock()

	s.notify(subs, true)
}

// EstablishIfCurrent establishes the session only when gen still matches the
// current generation. It reports whether the session was established; a false
// return means the response was stale and nothing changed.
func (s *SessionStore) EstablishIfCurrent(ctx context.Context, gen uint64, token string, user *domain.User) bool {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.log.Debug().Uint64("generation", gen).Msg("stale auth response discarded")
		return false
	}
	s.establishLocked(ctx, token, user)
	subs := s.snapshotSubscribers()
	s.mu.Unlock()

	s.notify(subs, true)
	return true
}

// Clear atomically removes the pair, erases the persisted copy, and notifies
// subscribers. Clearing an empty store is a no-op. Clear also bumps the
// generation so in-flight login responses cannot re-establish the session.
func (s *SessionStore) Clear(ctx context.Context) {
	s.mu.Lock()
	s.generation++
	if s.session.Empty() {
		s.mu.Unlock()
		return
	}
	s.session = domain.Session{}
	if err := s.persistence.Erase(ctx); err != nil {
		s.log.Error().Err(err).Msg("failed to erase persisted session")
	}
	subs := s.snapshotSubscribers()
	s.mu.Unlock()

	s.notify(subs, false)
}

// Query returns the current state. Side-effect free.
func (s *SessionStore) Query() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		IsAuthenticated: s.session.Complete(),
		User:            s.session.User,
	}
}

// BearerToken returns the current token, or "" when unauthenticated.
func (s *SessionStore) BearerToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Token
}

// Subscribe registers fn for state-change notifications.
func (s *SessionStore) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *SessionStore) establishLocked(ctx context.Context, token string, user *domain.User) {
	s.session = domain.Session{Token: token, User: user}
	if err := s.persistence.Save(ctx, s.session); err != nil {
		// The in-memory session stays valid; it just won't survive a restart.
		s.log.Error().Err(err).Msg("failed to persist session")
	}
}

func (s *SessionStore) snapshotSubscribers() []Subscriber {
	subs := make([]Subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	return subs
}

func (s *SessionStore) notify(subs []Subscriber, authenticated bool) {
	for _, fn := range subs {
		fn(authenticated)
	}
}
