package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// PostgreSQL error codes for retryable errors.
const (
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
	pgErrAdminShutdown        = "57P01"
)

// RetryConfig bounds how a transaction is retried.
type RetryConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetryConfig returns the settings used when none are configured.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		InitialInterval: 50 * time.Millisecond,
		MaxInterval:     1 * time.Second,
		MaxElapsedTime:  10 * time.Second,
	}
}

// Retrier re-runs whole transactions with exponential backoff.
type Retrier struct {
	cfg    RetryConfig
	logger zerolog.Logger
}

// NewRetrier creates a Retrier.
func NewRetrier(cfg RetryConfig, logger zerolog.Logger) *Retrier {
	return &Retrier{cfg: cfg, logger: logger}
}

// Retry executes an operation with exponential backoff on retryable errors.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.cfg.InitialInterval
	b.MaxInterval = r.cfg.MaxInterval
	b.MaxElapsedTime = r.cfg.MaxElapsedTime

	attempt := 0

	return backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if !isRetryableError(err) {
			return backoff.Permanent(err)
		}

		attempt++
		if attempt > r.cfg.MaxRetries {
			return backoff.Permanent(err)
		}

		r.logger.Warn().Err(err).Int("retry", attempt).Msg("retryable database error, retrying")

		return err
	}, backoff.WithContext(b, ctx))
}

// isRetryableError checks if a PostgreSQL error should trigger a retry.
func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrDeadlock, pgErrSerializationFailure, pgErrAdminShutdown:
			return true
		}
	}
	return false
}
