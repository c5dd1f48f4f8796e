package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/iho/mitiledger/internal/domain"
)

const (
	entryColumns = `id, transaction_id, participant, amount::text, description, kind, created_by, created_at`

	insertEntrySQL = `INSERT INTO entries (id, transaction_id, participant, amount, description, kind, created_by, created_at)
VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8)`

	queryBalancesSQL = `SELECT participant, kind, SUM(amount)::text
FROM entries
GROUP BY participant, kind
ORDER BY participant, kind`

	queryLastSQL = `SELECT ` + entryColumns + `
FROM entries
WHERE participant IN ($1, $2)
ORDER BY created_at DESC, id DESC
LIMIT 1`

	listByTransactionSQL = `SELECT ` + entryColumns + `
FROM entries
WHERE transaction_id = $1
ORDER BY id`

	updateEntrySQL = `UPDATE entries SET amount = $2::numeric, description = $3 WHERE id = $1`

	eraseAllSQL = `DELETE FROM entries`

	deletePairSQL = `DELETE FROM entries WHERE participant IN ($1, $2)`
)

// DB is the subset of *pgxpool.Pool used by LedgerRepository.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
}

// SchemaMigrator brings the schema up to date.
type SchemaMigrator interface {
	Up() error
}

// LedgerRepository implements usecase.LedgerRepository on PostgreSQL.
type LedgerRepository struct {
	db        DB
	txManager *TxManager
	migrator  SchemaMigrator
}

// NewLedgerRepository creates a new LedgerRepository. migrator may be nil
// when the schema is managed externally.
func NewLedgerRepository(db DB, txManager *TxManager, migrator SchemaMigrator) *LedgerRepository {
	return &LedgerRepository{db: db, txManager: txManager, migrator: migrator}
}

// Init verifies connectivity and applies migrations.
func (r *LedgerRepository) Init(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	if r.migrator == nil {
		return nil
	}

	return r.migrator.Up()
}

// Append writes entries in one transaction.
func (r *LedgerRepository) Append(ctx context.Context, entries ...*domain.Entry) error {
	return r.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		return insertEntries(ctx, tx, entries)
	})
}

// QueryBalances sums amounts per participant and kind.
func (r *LedgerRepository) QueryBalances(ctx context.Context) ([]domain.BalanceRow, error) {
	rows, err := r.db.Query(ctx, queryBalancesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.BalanceRow

	for rows.Next() {
		var participant, kind, total string

		if err := rows.Scan(&participant, &kind, &total); err != nil {
			return nil, err
		}

		amount, err := decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("parse balance total: %w", err)
		}

		result = append(result, domain.BalanceRow{
			Participant: participant,
			Kind:        domain.Kind(kind),
			Total:       amount,
		})
	}

	return result, rows.Err()
}

// QueryLast returns the most recent entry of either participant.
func (r *LedgerRepository) QueryLast(ctx context.Context, participant, counterpart string) (*domain.Entry, error) {
	entry, err := scanEntry(r.db.QueryRow(ctx, queryLastSQL, participant, counterpart))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}

	return entry, nil
}

// ListByTransaction returns the entries written by one command.
func (r *LedgerRepository) ListByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	rows, err := r.db.Query(ctx, listByTransactionSQL, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Entry

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Update rewrites the amount and description of one entry.
func (r *LedgerRepository) Update(ctx context.Context, id string, amount decimal.Decimal, description string) error {
	return updateEntry(ctx, r.db, domain.EntryUpdate{ID: id, Amount: amount, Description: description})
}

// UpdateTransaction applies all updates or none.
func (r *LedgerRepository) UpdateTransaction(ctx context.Context, updates []domain.EntryUpdate) error {
	return r.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		for _, u := range updates {
			if err := updateEntry(ctx, tx, u); err != nil {
				return err
			}
		}
		return nil
	})
}

// EraseAll deletes every entry.
func (r *LedgerRepository) EraseAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, eraseAllSQL)
	return err
}

// SetBalance replaces the history of both participants with the two given entries.
func (r *LedgerRepository) SetBalance(ctx context.Context, own, counterpart *domain.Entry) error {
	return r.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, deletePairSQL, own.Participant, counterpart.Participant); err != nil {
			return fmt.Errorf("delete previous entries: %w", err)
		}

		return insertEntries(ctx, tx, []*domain.Entry{own, counterpart})
	})
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertEntries(ctx context.Context, db execer, entries []*domain.Entry) error {
	for _, e := range entries {
		_, err := db.Exec(ctx, insertEntrySQL,
			e.ID,
			e.TransactionID,
			e.Participant,
			e.Amount.String(),
			e.Description,
			string(e.Kind),
			e.CreatedBy,
			e.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert entry %s: %w", e.ID, err)
		}
	}

	return nil
}

func updateEntry(ctx context.Context, db execer, u domain.EntryUpdate) error {
	tag, err := db.Exec(ctx, updateEntrySQL, u.ID, u.Amount.String(), u.Description)
	if err != nil {
		return fmt.Errorf("update entry %s: %w", u.ID, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrEntryNotFound, u.ID)
	}

	return nil
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var (
		e         domain.Entry
		amount    string
		kind      string
		createdAt time.Time
	)

	err := row.Scan(&e.ID, &e.TransactionID, &e.Participant, &amount, &e.Description, &kind, &e.CreatedBy, &createdAt)
	if err != nil {
		return nil, err
	}

	e.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount of entry %s: %w", e.ID, err)
	}

	e.Kind = domain.Kind(kind)
	e.CreatedAt = createdAt.UTC()

	return &e, nil
}
