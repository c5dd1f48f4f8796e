package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/mitiledger/internal/domain"
)

// LedgerRepository defines durable access to ledger entries.
type LedgerRepository interface {
	// Init idempotently ensures the schema exists.
	Init(ctx context.Context) error
	// Append writes entries atomically.
	Append(ctx context.Context, entries ...*domain.Entry) error
	// QueryBalances sums entry amounts grouped by participant and kind.
	QueryBalances(ctx context.Context) ([]domain.BalanceRow, error)
	// QueryLast returns the most recent entry of either participant, or domain.ErrEntryNotFound.
	QueryLast(ctx context.Context, participant, counterpart string) (*domain.Entry, error)
	ListByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error)
	Update(ctx context.Context, id string, amount decimal.Decimal, description string) error
	// UpdateTransaction applies several entry edits atomically.
	UpdateTransaction(ctx context.Context, updates []domain.EntryUpdate) error
	EraseAll(ctx context.Context) error
	// SetBalance deletes every entry of both participants and writes the two
	// given entries in a single transaction.
	SetBalance(ctx context.Context, own, counterpart *domain.Entry) error
}

// PendingStore keeps at most one pending interaction per sender.
type PendingStore interface {
	// Get returns nil when the sender has no pending interaction.
	Get(ctx context.Context, sender string) (*domain.PendingState, error)
	Set(ctx context.Context, sender string, state *domain.PendingState) error
	Delete(ctx context.Context, sender string) error
}

// MessageDeduplicator guards against transport redelivery.
type MessageDeduplicator interface {
	// Claim returns true the first time messageID is seen within ttl.
	Claim(ctx context.Context, messageID string, ttl time.Duration) (bool, error)
	// Release forgets a claim so a redelivery of messageID is processed.
	Release(ctx context.Context, messageID string) error
}

// Sender delivers text to a conversation.
type Sender interface {
	SendText(ctx context.Context, conversationID, text string) error
}

// CommandObserver receives the outcome of every handled command.
type CommandObserver interface {
	ObserveCommand(command, outcome string)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
