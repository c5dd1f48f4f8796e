package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/mitiledger/internal/domain"
)

// timeLayout is fixed-width so that lexical order of created_at matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const (
	schemaSQL = `CREATE TABLE IF NOT EXISTS entries (
	id             TEXT PRIMARY KEY,
	transaction_id TEXT NOT NULL,
	participant    TEXT NOT NULL,
	amount         TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	kind           TEXT NOT NULL CHECK (kind IN ('debe', 'pago', 'miti', 'setbalance')),
	created_by     TEXT NOT NULL,
	created_at     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_participant_created ON entries (participant, created_at);
CREATE INDEX IF NOT EXISTS idx_entries_transaction ON entries (transaction_id);`

	entryColumns = `id, transaction_id, participant, amount, description, kind, created_by, created_at`

	insertEntrySQL = `INSERT INTO entries (` + entryColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	selectAmountsSQL = `SELECT participant, kind, amount FROM entries`

	queryLastSQL = `SELECT ` + entryColumns + `
FROM entries
WHERE participant IN (?, ?)
ORDER BY created_at DESC, rowid DESC
LIMIT 1`

	listByTransactionSQL = `SELECT ` + entryColumns + ` FROM entries WHERE transaction_id = ? ORDER BY id`

	updateEntrySQL = `UPDATE entries SET amount = ?, description = ? WHERE id = ?`

	eraseAllSQL = `DELETE FROM entries`

	deletePairSQL = `DELETE FROM entries WHERE participant IN (?, ?)`
)

// LedgerRepository implements usecase.LedgerRepository on SQLite. Amounts are
// stored as decimal strings and summed in Go.
type LedgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Init creates the schema if it does not exist.
func (r *LedgerRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Append writes entries in one transaction.
func (r *LedgerRepository) Append(ctx context.Context, entries ...*domain.Entry) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		return insertEntries(ctx, tx, entries)
	})
}

// QueryBalances sums amounts per participant and kind.
func (r *LedgerRepository) QueryBalances(ctx context.Context) ([]domain.BalanceRow, error) {
	rows, err := r.db.QueryContext(ctx, selectAmountsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type key struct {
		participant string
		kind        domain.Kind
	}
	totals := make(map[key]decimal.Decimal)

	for rows.Next() {
		var participant, kind, raw string
		if err := rows.Scan(&participant, &kind, &raw); err != nil {
			return nil, err
		}

		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("parse amount: %w", err)
		}

		k := key{participant: participant, kind: domain.Kind(kind)}
		totals[k] = totals[k].Add(amount)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]domain.BalanceRow, 0, len(totals))
	for k, total := range totals {
		result = append(result, domain.BalanceRow{Participant: k.participant, Kind: k.kind, Total: total})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Participant != result[j].Participant {
			return result[i].Participant < result[j].Participant
		}
		return result[i].Kind < result[j].Kind
	})

	return result, nil
}

// QueryLast returns the most recent entry of either participant.
func (r *LedgerRepository) QueryLast(ctx context.Context, participant, counterpart string) (*domain.Entry, error) {
	entry, err := scanEntry(r.db.QueryRowContext(ctx, queryLastSQL, participant, counterpart))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}

	return entry, nil
}

// ListByTransaction returns the entries written by one command.
func (r *LedgerRepository) ListByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	rows, err := r.db.QueryContext(ctx, listByTransactionSQL, transactionID)
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
	return r.withTx(ctx, func(tx *sql.Tx) error {
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
	_, err := r.db.ExecContext(ctx, eraseAllSQL)
	return err
}

// SetBalance replaces the history of both participants with the two given entries.
func (r *LedgerRepository) SetBalance(ctx context.Context, own, counterpart *domain.Entry) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deletePairSQL, own.Participant, counterpart.Participant); err != nil {
			return fmt.Errorf("delete previous entries: %w", err)
		}

		return insertEntries(ctx, tx, []*domain.Entry{own, counterpart})
	})
}

func (r *LedgerRepository) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type scanner interface {
	Scan(dest ...any) error
}

func insertEntries(ctx context.Context, db execer, entries []*domain.Entry) error {
	for _, e := range entries {
		_, err := db.ExecContext(ctx, insertEntrySQL,
			e.ID,
			e.TransactionID,
			e.Participant,
			e.Amount.String(),
			e.Description,
			string(e.Kind),
			e.CreatedBy,
			e.CreatedAt.UTC().Format(timeLayout),
		)
		if err != nil {
			return fmt.Errorf("insert entry %s: %w", e.ID, err)
		}
	}

	return nil
}

func updateEntry(ctx context.Context, db execer, u domain.EntryUpdate) error {
	res, err := db.ExecContext(ctx, updateEntrySQL, u.Amount.String(), u.Description, u.ID)
	if err != nil {
		return fmt.Errorf("update entry %s: %w", u.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrEntryNotFound, u.ID)
	}

	return nil
}

func scanEntry(row scanner) (*domain.Entry, error) {
	var (
		e         domain.Entry
		amount    string
		kind      string
		createdAt string
	)

	err := row.Scan(&e.ID, &e.TransactionID, &e.Participant, &amount, &e.Description, &kind, &e.CreatedBy, &createdAt)
	if err != nil {
		return nil, err
	}

	e.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount of entry %s: %w", e.ID, err)
	}

	e.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at of entry %s: %w", e.ID, err)
	}

	e.Kind = domain.Kind(kind)

	return &e, nil
}
