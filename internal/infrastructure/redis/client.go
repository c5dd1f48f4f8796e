package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds connection settings for the pending-state and de-duplication store.
type Config struct {
	URL         string
	DialTimeout time.Duration
	PoolSize    int
}

// NewClient connects to Redis and verifies the connection. Zero-valued
// settings keep the values encoded in the URL.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// Pinger reports whether Redis is reachable.
type Pinger struct {
	client *redis.Client
}

// NewPinger creates a readiness check for client.
func NewPinger(client *redis.Client) *Pinger {
	return &Pinger{client: client}
}

// Ping implements a readiness check.
func (p *Pinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
