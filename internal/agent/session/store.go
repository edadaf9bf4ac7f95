// Package session keeps each conversation's pending dialogue state.
//
// The store's single concurrency duty is atomic get/update of a session's
// pending triple: one mutex guards the whole map, so reading a session's
// state and writing its post-turn state never interleaves with another
// update for the same session. Turn ordering within a session is the
// caller's responsibility. Idle sessions persist for the process lifetime;
// that resource bound is an accepted tradeoff.
package session

import (
	"sync"

	"github.com/kdhyo/ledger-ai/internal/agent/model"
)

// DefaultSessionID is used when the caller supplies no session id.
const DefaultSessionID = "default"

type Store struct {
	mu     sync.Mutex
	states map[string]model.PendingState
}

func NewStore() *Store {
	return &Store{states: make(map[string]model.PendingState)}
}

func key(sessionID string) string {
	if sessionID == "" {
		return DefaultSessionID
	}
	return sessionID
}

// Get returns a copy of the session's pending state, creating the session
// lazily on first access.
func (s *Store) Get(sessionID string) model.PendingState {
	k := key(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[k]
	if !ok {
		state = model.PendingState{}
		s.states[k] = state
	}
	return state
}

// Update replaces the session's pending triple atomically.
func (s *Store) Update(sessionID string, state model.PendingState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[key(sessionID)] = state
}

// Len reports how many sessions have been seen.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}
