package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// MessageDeduplicator implements usecase.MessageDeduplicator using Redis.
type MessageDeduplicator struct {
	client *redis.Client
	prefix string
}

// NewMessageDeduplicator creates a new MessageDeduplicator.
func NewMessageDeduplicator(client *redis.Client) *MessageDeduplicator {
	return &MessageDeduplicator{
		client: client,
		prefix: "message:",
	}
}

// Claim atomically marks messageID as seen. It returns false if it was
// already claimed within ttl.
func (d *MessageDeduplicator) Claim(ctx context.Context, messageID string, ttl time.Duration) (bool, error) {
	return d.client.SetNX(ctx, d.prefix+messageID, time.Now().UTC().Format(time.RFC3339), ttl).Result()
}

// Release deletes the claim on messageID.
func (d *MessageDeduplicator) Release(ctx context.Context, messageID string) error {
	return d.client.Del(ctx, d.prefix+messageID).Err()
}
