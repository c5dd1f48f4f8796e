package memory

import (
	"context"
	"sync"
	"time"
)

// MessageDeduplicator implements usecase.MessageDeduplicator in process memory.
type MessageDeduplicator struct {
	mu   sync.Mutex
	seen map[string]time.Time
	now  func() time.Time
}

// NewMessageDeduplicator creates an empty MessageDeduplicator.
func NewMessageDeduplicator() *MessageDeduplicator {
	return &MessageDeduplicator{
		seen: make(map[string]time.Time),
		now:  time.Now,
	}
}

// Claim returns true the first time messageID is seen within ttl.
// Expired IDs are swept on every call.
func (d *MessageDeduplicator) Claim(_ context.Context, messageID string, ttl time.Duration) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()

	for id, expiresAt := range d.seen {
		if !now.Before(expiresAt) {
			delete(d.seen, id)
		}
	}

	if _, ok := d.seen[messageID]; ok {
		return false, nil
	}

	d.seen[messageID] = now.Add(ttl)

	return true, nil
}

// Release forgets messageID.
func (d *MessageDeduplicator) Release(_ context.Context, messageID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.seen, messageID)

	return nil
}
