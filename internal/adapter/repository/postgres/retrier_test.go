package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

func fastRetrier(maxRetries int) *Retrier {
	return NewRetrier(RetryConfig{
		MaxRetries:      maxRetries,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		MaxElapsedTime:  time.Second,
	}, zerolog.Nop())
}

func TestRetrierRetriesOnRetryableError(t *testing.T) {
	r := fastRetrier(2)

	attempts := 0
	err := r.Retry(context.Background(), func() error {
		attempts++
		if attempts < 2 {
			return fmt.Errorf("commit: %w", &pgconn.PgError{Code: pgErrSerializationFailure})
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestRetrierGivesUpAfterMaxRetries(t *testing.T) {
	r := fastRetrier(2)

	attempts := 0
	err := r.Retry(context.Background(), func() error {
		attempts++
		return &pgconn.PgError{Code: pgErrDeadlock}
	})

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		t.Fatalf("expected last pg error, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetrierStopsOnPermanentError(t *testing.T) {
	r := NewRetrier(DefaultRetryConfig(), zerolog.Nop())
	attempts := 0
	permanentErr := errors.New("permanent")

	err := r.Retry(context.Background(), func() error {
		attempts++
		return permanentErr
	})

	if !errors.Is(err, permanentErr) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{&pgconn.PgError{Code: pgErrDeadlock}, true},
		{&pgconn.PgError{Code: pgErrSerializationFailure}, true},
		{fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: pgErrAdminShutdown}), true},
		{&pgconn.PgError{Code: "23505"}, false},
		{errors.New("other"), false},
	}

	for _, tt := range tests {
		if got := isRetryableError(tt.err); got != tt.want {
			t.Fatalf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
