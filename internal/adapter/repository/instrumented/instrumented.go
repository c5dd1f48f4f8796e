// Package instrumented wraps stores with Prometheus operation metrics.
package instrumented

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/mitiledger/internal/domain"
	"github.com/iho/mitiledger/internal/infrastructure/metrics"
	"github.com/iho/mitiledger/internal/usecase"
)

type recorder struct {
	metrics *metrics.Metrics
	store   string
}

func (r recorder) observe(operation string, start time.Time, err error) {
	r.metrics.StoreOperations.WithLabelValues(r.store, operation).Inc()
	r.metrics.StoreDuration.WithLabelValues(r.store, operation).Observe(time.Since(start).Seconds())

	if err != nil {
		r.metrics.StoreErrors.WithLabelValues(r.store, operation).Inc()
	}
}

// LedgerRepository records metrics for every call to the wrapped repository.
type LedgerRepository struct {
	next usecase.LedgerRepository
	rec  recorder
}

// NewLedgerRepository wraps next. store labels the metrics, e.g. "postgres".
func NewLedgerRepository(next usecase.LedgerRepository, m *metrics.Metrics, store string) *LedgerRepository {
	return &LedgerRepository{next: next, rec: recorder{metrics: m, store: store}}
}

func (r *LedgerRepository) Init(ctx context.Context) error {
	start := time.Now()
	err := r.next.Init(ctx)
	r.rec.observe("init", start, err)
	return err
}

func (r *LedgerRepository) Append(ctx context.Context, entries ...*domain.Entry) error {
	start := time.Now()
	err := r.next.Append(ctx, entries...)
	r.rec.observe("append", start, err)
	return err
}

func (r *LedgerRepository) QueryBalances(ctx context.Context) ([]domain.BalanceRow, error) {
	start := time.Now()
	rows, err := r.next.QueryBalances(ctx)
	r.rec.observe("query_balances", start, err)
	return rows, err
}

// QueryLast does not count domain.ErrEntryNotFound as a store error.
func (r *LedgerRepository) QueryLast(ctx context.Context, participant, counterpart string) (*domain.Entry, error) {
	start := time.Now()
	entry, err := r.next.QueryLast(ctx, participant, counterpart)
	r.rec.observe("query_last", start, storeError(err))
	return entry, err
}

func (r *LedgerRepository) ListByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	start := time.Now()
	entries, err := r.next.ListByTransaction(ctx, transactionID)
	r.rec.observe("list_by_transaction", start, err)
	return entries, err
}

func (r *LedgerRepository) Update(ctx context.Context, id string, amount decimal.Decimal, description string) error {
	start := time.Now()
	err := r.next.Update(ctx, id, amount, description)
	r.rec.observe("update", start, err)
	return err
}

func (r *LedgerRepository) UpdateTransaction(ctx context.Context, updates []domain.EntryUpdate) error {
	start := time.Now()
	err := r.next.UpdateTransaction(ctx, updates)
	r.rec.observe("update_transaction", start, err)
	return err
}

func (r *LedgerRepository) EraseAll(ctx context.Context) error {
	start := time.Now()
	err := r.next.EraseAll(ctx)
	r.rec.observe("erase_all", start, err)
	return err
}

func (r *LedgerRepository) SetBalance(ctx context.Context, own, counterpart *domain.Entry) error {
	start := time.Now()
	err := r.next.SetBalance(ctx, own, counterpart)
	r.rec.observe("set_balance", start, err)
	return err
}

// PendingStore records metrics for every call to the wrapped pending store.
type PendingStore struct {
	next usecase.PendingStore
	rec  recorder
}

// NewPendingStore wraps next. store labels the metrics, e.g. "redis".
func NewPendingStore(next usecase.PendingStore, m *metrics.Metrics, store string) *PendingStore {
	return &PendingStore{next: next, rec: recorder{metrics: m, store: store}}
}

func (s *PendingStore) Get(ctx context.Context, sender string) (*domain.PendingState, error) {
	start := time.Now()
	state, err := s.next.Get(ctx, sender)
	s.rec.observe("pending_get", start, err)
	return state, err
}

func (s *PendingStore) Set(ctx context.Context, sender string, state *domain.PendingState) error {
	start := time.Now()
	err := s.next.Set(ctx, sender, state)
	s.rec.observe("pending_set", start, err)
	return err
}

func (s *PendingStore) Delete(ctx context.Context, sender string) error {
	start := time.Now()
	err := s.next.Delete(ctx, sender)
	s.rec.observe("pending_delete", start, err)
	return err
}

func storeError(err error) error {
	if errors.Is(err, domain.ErrEntryNotFound) {
		return nil
	}
	return err
}
