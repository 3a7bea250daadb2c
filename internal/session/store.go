// Package session keeps one pagination controller per browsing session so
// concurrent visitors each see their own aggregate of loaded pages.
package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/donaldgifford/catalog-browser/internal/metrics"
	"github.com/donaldgifford/catalog-browser/internal/pager"
)

// Session is one visitor's browsing state.
type Session struct {
	ID         string
	Controller *pager.Controller
	CreatedAt  time.Time

	lastSeen atomic.Int64 // unix nanoseconds
}

// LastSeen returns when the session was last created or looked up.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) touch(t time.Time) {
	s.lastSeen.Store(t.UnixNano())
}

// Factory builds the controller for a new session.
type Factory func() *pager.Controller

// Store is an in-memory, concurrency-safe session registry.
type Store struct {
	factory Factory
	nowFunc func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// StoreOption configures the Store.
type StoreOption func(*Store)

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowFunc = f
	}
}

// NewStore creates an empty Store whose sessions get controllers from factory.
func NewStore(factory Factory, opts ...StoreOption) *Store {
	s := &Store{
		factory:  factory,
		nowFunc:  time.Now,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a new session with an empty controller.
func (s *Store) Create() *Session {
	now := s.nowFunc()
	sess := &Session{
		ID:         uuid.NewString(),
		Controller: s.factory(),
		CreatedAt:  now,
	}
	sess.touch(now)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.SessionsActive.Set(float64(n))
	return sess
}

// Get returns the session with id and refreshes its idle timer.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.touch(s.nowFunc())
	return sess, true
}

// GetOrCreate returns the session with id, or a new one when id is unknown.
// The boolean reports whether a new session was created.
func (s *Store) GetOrCreate(id string) (*Session, bool) {
	if id != "" {
		if sess, ok := s.Get(id); ok {
			return sess, false
		}
	}
	return s.Create(), true
}

// Delete removes the session with id. It reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.SessionsActive.Set(float64(n))
	return ok
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than maxIdle and returns how many
// were removed. Sessions with a fetch in flight are kept.
func (s *Store) Sweep(maxIdle time.Duration) int {
	cutoff := s.nowFunc().Add(-maxIdle)

	s.mu.Lock()
	removed := 0
	for id, sess := range s.sessions {
		if !sess.LastSeen().Before(cutoff) {
			continue
		}
		if sess.Controller.Status() != pager.StatusIdle {
			continue
		}
		delete(s.sessions, id)
		removed++
	}
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.SessionsActive.Set(float64(n))
	metrics.SessionsExpiredTotal.Add(float64(removed))
	return removed
}
