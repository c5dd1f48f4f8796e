package memory

import (
	"context"
	"sync"

	"github.com/iho/mitiledger/internal/domain"
)

// PendingStore implements usecase.PendingStore in process memory. State is
// lost on restart.
type PendingStore struct {
	mu     sync.Mutex
	states map[string]domain.PendingState
}

// NewPendingStore creates an empty PendingStore.
func NewPendingStore() *PendingStore {
	return &PendingStore{states: make(map[string]domain.PendingState)}
}

// Get returns a copy of the sender's pending state, or nil.
func (s *PendingStore) Get(_ context.Context, sender string) (*domain.PendingState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[sender]
	if !ok {
		return nil, nil
	}

	return &state, nil
}

// Set replaces the sender's pending state.
func (s *PendingStore) Set(_ context.Context, sender string, state *domain.PendingState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[sender] = *state

	return nil
}

// Delete clears the sender's pending state.
func (s *PendingStore) Delete(_ context.Context, sender string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, sender)

	return nil
}

// Len returns the number of senders with a pending interaction.
func (s *PendingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.states)
}
