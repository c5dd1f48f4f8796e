package instrumented_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/mitiledger/internal/adapter/repository/instrumented"
	"github.com/iho/mitiledger/internal/domain"
	"github.com/iho/mitiledger/internal/infrastructure/metrics"
	"github.com/iho/mitiledger/internal/usecase"
	"github.com/iho/mitiledger/internal/usecase/mocks"
)

var (
	_ usecase.LedgerRepository = (*instrumented.LedgerRepository)(nil)
	_ usecase.PendingStore     = (*instrumented.PendingStore)(nil)
)

func TestLedgerRepository_RecordsOperations(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	inner := mocks.NewInMemoryLedgerRepository()
	repo := instrumented.NewLedgerRepository(inner, m, "memory")
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, &domain.Entry{ID: "e1", Participant: "a", Amount: decimal.NewFromInt(1), Kind: domain.KindDebe}))
	_, err := repo.QueryBalances(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperations.WithLabelValues("memory", "append")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperations.WithLabelValues("memory", "query_balances")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.StoreErrors.WithLabelValues("memory", "append")))

	inner.Err = errors.New("boom")
	require.Error(t, repo.EraseAll(ctx))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreErrors.WithLabelValues("memory", "erase_all")))
}

func TestLedgerRepository_NotFoundIsNotAnError(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	repo := instrumented.NewLedgerRepository(mocks.NewInMemoryLedgerRepository(), m, "memory")

	_, err := repo.QueryLast(context.Background(), "a", "b")
	require.ErrorIs(t, err, domain.ErrEntryNotFound)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperations.WithLabelValues("memory", "query_last")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.StoreErrors.WithLabelValues("memory", "query_last")))
}

func TestPendingStore_RecordsOperations(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	inner := mocks.NewInMemoryPendingStore()
	store := instrumented.NewPendingStore(inner, m, "memory")
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", &domain.PendingState{Kind: domain.PendingDescription}))
	state, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, state)
	require.NoError(t, store.Delete(ctx, "a"))

	for _, op := range []string{"pending_set", "pending_get", "pending_delete"} {
		assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperations.WithLabelValues("memory", op)), op)
	}

	inner.Err = errors.New("down")
	_, err = store.Get(ctx, "a")
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreErrors.WithLabelValues("memory", "pending_get")))
}
