package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type pgxPool interface {
	Begin(context.Context) (pgx.Tx, error)
}

// TxManager runs functions inside a database transaction.
type TxManager struct {
	pool    pgxPool
	retrier *Retrier
}

// NewTxManager creates a TxManager. A nil retrier runs each transaction once.
func NewTxManager(pool pgxPool, retrier *Retrier) *TxManager {
	return &TxManager{pool: pool, retrier: retrier}
}

// WithTx runs fn in a transaction and commits it. The whole transaction is
// retried on deadlocks and serialization failures.
func (m *TxManager) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	if m.retrier == nil {
		return m.run(ctx, fn)
	}

	return m.retrier.Retry(ctx, func() error {
		return m.run(ctx, fn)
	})
}

func (m *TxManager) run(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
