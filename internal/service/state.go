package service

import (
	"sync"

	"github.com/nuvoshop/wishlist-service/internal/domain"
)

// stateStore holds the reduced wishlist state per session key. All mutations
// go through Apply, so every stored state is the product of domain.Reduce.
type stateStore struct {
	mu     sync.RWMutex
	states map[string]domain.State
}

func newStateStore() *stateStore {
	return &stateStore{
		states: make(map[string]domain.State),
	}
}

// Get returns the current state for the key, or a fresh idle state.
func (s *stateStore) Get(key string) domain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[key]
	if !ok {
		return domain.NewState()
	}
	return state
}

// Apply reduces the stored state through the given intents in order and
// returns the result.
func (s *stateStore) Apply(key string, intents ...domain.Intent) domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[key]
	if !ok {
		state = domain.NewState()
	}
	for _, intent := range intents {
		state = domain.Reduce(state, intent)
	}
	s.states[key] = state
	return state
}

// Drop removes the stored state for the key.
func (s *stateStore) Drop(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, key)
}
