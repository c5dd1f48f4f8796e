package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/iho/mitiledger/internal/domain"
	"github.com/iho/mitiledger/internal/usecase"
)

var _ usecase.LedgerRepository = (*LedgerRepository)(nil)

var entryColumnNames = []string{"id", "transaction_id", "participant", "amount", "description", "kind", "created_by", "created_at"}

type fakeMigrator struct {
	calls int
	err   error
}

func (m *fakeMigrator) Up() error {
	m.calls++
	return m.err
}

func newTestRepository(t *testing.T) (*LedgerRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	pool := newMockPool(t)
	return NewLedgerRepository(pool, NewTxManager(pool, nil), nil), pool
}

func sqlPattern(sql string) string {
	return regexp.QuoteMeta(sql)
}

func testEntry(id, participant string, amount int64) *domain.Entry {
	return &domain.Entry{
		ID:            id,
		TransactionID: "tx-1",
		Participant:   participant,
		Amount:        decimal.NewFromInt(amount),
		Description:   "mercado",
		Kind:          domain.KindMiti,
		CreatedBy:     "alice",
		CreatedAt:     time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestLedgerRepositoryInit(t *testing.T) {
	pool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgxmock pool: %v", err)
	}
	t.Cleanup(pool.Close)

	pool.ExpectPing()

	migrator := &fakeMigrator{}
	repo := NewLedgerRepository(pool, NewTxManager(pool, nil), migrator)

	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if migrator.calls != 1 {
		t.Fatalf("expected migrations to run once, got %d", migrator.calls)
	}

	pool.ExpectPing().WillReturnError(errors.New("connection refused"))
	if err := repo.Init(context.Background()); err == nil {
		t.Fatalf("expected ping failure to surface")
	}

	assertExpectations(t, pool)
}

func TestLedgerRepositoryAppend(t *testing.T) {
	repo, pool := newTestRepository(t)

	own := testEntry("e1", "alice", 25000)
	other := testEntry("e2", "bob", -25000)

	pool.ExpectBegin()
	pool.ExpectExec(sqlPattern(insertEntrySQL)).
		WithArgs("e1", "tx-1", "alice", "25000", "mercado", "miti", "alice", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectExec(sqlPattern(insertEntrySQL)).
		WithArgs("e2", "tx-1", "bob", "-25000", "mercado", "miti", "alice", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectCommit()

	if err := repo.Append(context.Background(), own, other); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertExpectations(t, pool)
}

func TestLedgerRepositoryAppendRollsBack(t *testing.T) {
	repo, pool := newTestRepository(t)

	pool.ExpectBegin()
	pool.ExpectExec(sqlPattern(insertEntrySQL)).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("duplicate key"))
	pool.ExpectRollback()

	if err := repo.Append(context.Background(), testEntry("e1", "alice", 1)); err == nil {
		t.Fatalf("expected insert error")
	}

	assertExpectations(t, pool)
}

func TestLedgerRepositoryQueryBalances(t *testing.T) {
	repo, pool := newTestRepository(t)

	pool.ExpectQuery(sqlPattern(queryBalancesSQL)).WillReturnRows(
		pgxmock.NewRows([]string{"participant", "kind", "sum"}).
			AddRow("alice", "miti", "25000.50").
			AddRow("bob", "debe", "-50000.00"),
	)

	rows, err := repo.QueryBalances(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Kind != domain.KindMiti || !rows[0].Total.Equal(decimal.RequireFromString("25000.5")) {
		t.Errorf("unexpected first row %+v", rows[0])
	}
	if rows[1].Participant != "bob" || !rows[1].Total.Equal(decimal.NewFromInt(-50000)) {
		t.Errorf("unexpected second row %+v", rows[1])
	}

	assertExpectations(t, pool)
}

func TestLedgerRepositoryQueryLast(t *testing.T) {
	repo, pool := newTestRepository(t)
	createdAt := time.Date(2024, 5, 1, 7, 0, 0, 0, time.FixedZone("COT", -5*3600))

	pool.ExpectQuery(sqlPattern(queryLastSQL)).
		WithArgs("alice", "bob").
		WillReturnRows(pgxmock.NewRows(entryColumnNames).
			AddRow("e2", "tx-1", "bob", "-25000.00", "cena", "miti", "alice", createdAt))

	entry, err := repo.QueryLast(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry.ID != "e2" || entry.Kind != domain.KindMiti || entry.CreatedBy != "alice" {
		t.Errorf("unexpected entry %+v", entry)
	}
	if !entry.Amount.Equal(decimal.NewFromInt(-25000)) {
		t.Errorf("expected amount -25000, got %s", entry.Amount)
	}
	if entry.CreatedAt.Location() != time.UTC || !entry.CreatedAt.Equal(createdAt) {
		t.Errorf("expected created_at normalized to UTC, got %v", entry.CreatedAt)
	}

	pool.ExpectQuery(sqlPattern(queryLastSQL)).
		WithArgs("alice", "bob").
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.QueryLast(context.Background(), "alice", "bob"); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}

	assertExpectations(t, pool)
}

func TestLedgerRepositoryListByTransaction(t *testing.T) {
	repo, pool := newTestRepository(t)
	createdAt := time.Now().UTC()

	pool.ExpectQuery(sqlPattern(listByTransactionSQL)).
		WithArgs("tx-1").
		WillReturnRows(pgxmock.NewRows(entryColumnNames).
			AddRow("e1", "tx-1", "alice", "25000.00", "cena", "miti", "alice", createdAt).
			AddRow("e2", "tx-1", "bob", "-25000.00", "cena", "miti", "alice", createdAt))

	entries, err := repo.ListByTransaction(context.Background(), "tx-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entries) != 2 || entries[0].Participant != "alice" || entries[1].Participant != "bob" {
		t.Fatalf("unexpected entries %+v", entries)
	}

	assertExpectations(t, pool)
}

func TestLedgerRepositoryUpdate(t *testing.T) {
	repo, pool := newTestRepository(t)

	pool.ExpectExec(sqlPattern(updateEntrySQL)).
		WithArgs("e1", "-4000", "taxi").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.Update(context.Background(), "e1", decimal.NewFromInt(-4000), "taxi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pool.ExpectExec(sqlPattern(updateEntrySQL)).
		WithArgs("missing", "1", "x").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	if err := repo.Update(context.Background(), "missing", decimal.NewFromInt(1), "x"); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}

	assertExpectations(t, pool)
}

func TestLedgerRepositoryUpdateTransactionIsAtomic(t *testing.T) {
	repo, pool := newTestRepository(t)

	pool.ExpectBegin()
	pool.ExpectExec(sqlPattern(updateEntrySQL)).
		WithArgs("e1", "30000", "cena").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	pool.ExpectExec(sqlPattern(updateEntrySQL)).
		WithArgs("e2", "-30000", "cena").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	pool.ExpectRollback()

	err := repo.UpdateTransaction(context.Background(), []domain.EntryUpdate{
		{ID: "e1", Amount: decimal.NewFromInt(30000), Description: "cena"},
		{ID: "e2", Amount: decimal.NewFromInt(-30000), Description: "cena"},
	})
	if !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}

	assertExpectations(t, pool)
}

func TestLedgerRepositoryEraseAll(t *testing.T) {
	repo, pool := newTestRepository(t)

	pool.ExpectExec(sqlPattern(eraseAllSQL)).WillReturnResult(pgxmock.NewResult("DELETE", 7))

	if err := repo.EraseAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertExpectations(t, pool)
}

func TestLedgerRepositorySetBalance(t *testing.T) {
	repo, pool := newTestRepository(t)

	own := testEntry("e1", "alice", 100000)
	own.Kind = domain.KindSetBalance
	other := testEntry("e2", "bob", -100000)
	other.Kind = domain.KindSetBalance

	pool.ExpectBegin()
	pool.ExpectExec(sqlPattern(deletePairSQL)).
		WithArgs("alice", "bob").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	pool.ExpectExec(sqlPattern(insertEntrySQL)).
		WithArgs("e1", "tx-1", "alice", "100000", "mercado", "setbalance", "alice", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectExec(sqlPattern(insertEntrySQL)).
		WithArgs("e2", "tx-1", "bob", "-100000", "mercado", "setbalance", "alice", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectCommit()

	if err := repo.SetBalance(context.Background(), own, other); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertExpectations(t, pool)
}
