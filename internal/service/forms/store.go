package forms

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound indicates the session was closed, swept or never opened.
var ErrSessionNotFound = errors.New("form session not found")

// Store holds the open sessions of one kind of form, keyed by session id.
type Store[S any] struct {
	sessions map[string]*entry[S]
	mu       sync.RWMutex
	now      func() time.Time
}

type entry[S any] struct {
	state   S
	touched time.Time
}

// NewStore creates an empty session store.
func NewStore[S any]() *Store[S] {
	return &Store[S]{
		sessions: make(map[string]*entry[S]),
		now:      time.Now,
	}
}

// Open registers a new session built by build for a fresh id.
func (s *Store[S]) Open(build func(id string) S) S {
	id := uuid.NewString()
	state := build(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &entry[S]{state: state, touched: s.now()}
	return state
}

// Get returns a copy of the session state.
func (s *Store[S]) Get(id string) (S, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		var zero S
		return zero, ErrSessionNotFound
	}
	e.touched = s.now()
	return e.state, nil
}

// Update runs fn against the session state under the store lock. The state is only
// replaced when fn succeeds, so a failed edit leaves the session as it was.
func (s *Store[S]) Update(id string, fn func(*S) error) (S, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		var zero S
		return zero, ErrSessionNotFound
	}
	next := e.state
	if err := fn(&next); err != nil {
		return e.state, err
	}
	e.state = next
	e.touched = s.now()
	return next, nil
}

// Close removes a session. It reports whether the session existed.
func (s *Store[S]) Close(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

// Sweep closes sessions untouched for longer than idle and returns how many it closed.
func (s *Store[S]) Sweep(idle time.Duration) int {
	cutoff := s.now().Add(-idle)
	s.mu.Lock()
	defer s.mu.Unlock()
	closed := 0
	for id, e := range s.sessions {
		if e.touched.Before(cutoff) {
			delete(s.sessions, id)
			closed++
		}
	}
	return closed
}

// Len returns the number of open sessions.
func (s *Store[S]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
