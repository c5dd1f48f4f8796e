package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestNewClientSuccess(t *testing.T) {
	s := miniredis.RunT(t)

	ctx := context.Background()
	client, err := NewClient(ctx, Config{URL: fmt.Sprintf("redis://%s", s.Addr()), PoolSize: 4, DialTimeout: time.Second})
	if err != nil {
		t.Fatalf("expected client, got error: %v", err)
	}
	defer client.Close()

	if got := client.Options().PoolSize; got != 4 {
		t.Fatalf("expected pool size 4, got %d", got)
	}

	if err := NewPinger(client).Ping(ctx); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}

func TestNewClientInvalidURL(t *testing.T) {
	_, err := NewClient(context.Background(), Config{URL: "://bad-url"})
	if err == nil {
		t.Fatalf("expected error for invalid URL")
	}
}

func TestNewClientPingFailure(t *testing.T) {
	s := miniredis.RunT(t)
	url := fmt.Sprintf("redis://%s", s.Addr())
	s.Close()

	_, err := NewClient(context.Background(), Config{URL: url})
	if err == nil {
		t.Fatalf("expected ping error when server is down")
	}
}

func TestPingerReportsOutage(t *testing.T) {
	s := miniredis.RunT(t)

	client, err := NewClient(context.Background(), Config{URL: fmt.Sprintf("redis://%s", s.Addr())})
	if err != nil {
		t.Fatalf("expected client, got error: %v", err)
	}
	defer client.Close()

	s.Close()

	if err := NewPinger(client).Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error after server shutdown")
	}
}
