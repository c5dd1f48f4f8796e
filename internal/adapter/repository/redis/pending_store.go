package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/mitiledger/internal/domain"
)

// PendingStore implements usecase.PendingStore using Redis. Each sender's
// slot is one JSON value; a positive ttl lets Redis expire stale slots.
type PendingStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewPendingStore creates a new PendingStore.
func NewPendingStore(client *redis.Client, ttl time.Duration) *PendingStore {
	return &PendingStore{
		client: client,
		prefix: "pending:",
		ttl:    ttl,
	}
}

// Get returns the sender's pending state, or nil if there is none.
func (s *PendingStore) Get(ctx context.Context, sender string) (*domain.PendingState, error) {
	data, err := s.client.Get(ctx, s.prefix+sender).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state domain.PendingState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode pending state for %s: %w", sender, err)
	}

	return &state, nil
}

// Set replaces the sender's pending state.
func (s *PendingStore) Set(ctx context.Context, sender string, state *domain.PendingState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode pending state for %s: %w", sender, err)
	}

	return s.client.Set(ctx, s.prefix+sender, data, s.ttl).Err()
}

// Delete clears the sender's pending state.
func (s *PendingStore) Delete(ctx context.Context, sender string) error {
	return s.client.Del(ctx, s.prefix+sender).Err()
}
