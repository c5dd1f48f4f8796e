package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/mitiledger/internal/domain"
)

// LedgerUseCase decides which entries a completed command writes and how
// corrections rewrite them.
type LedgerUseCase struct {
	repo  LedgerRepository
	idGen IDGenerator
	pair  domain.ParticipantPair
	now   func() time.Time
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(repo LedgerRepository, pair domain.ParticipantPair, idGen IDGenerator) *LedgerUseCase {
	return &LedgerUseCase{
		repo:  repo,
		idGen: idGen,
		pair:  pair,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source used to stamp entries.
func (uc *LedgerUseCase) WithClock(now func() time.Time) *LedgerUseCase {
	uc.now = now
	return uc
}

// RecordInput is a command with its amount and collected description.
type RecordInput struct {
	Command     domain.Command
	Sender      string
	Description string
	Amount      decimal.Decimal
}

// RecordResult describes what Record wrote.
type RecordResult struct {
	Kind        domain.Kind
	Sender      string
	Counterpart string
	Description string
	Amount      decimal.Decimal
	Entries     []*domain.Entry
}

// Record writes the entries for a completed amount command.
func (uc *LedgerUseCase) Record(ctx context.Context, input RecordInput) (*RecordResult, error) {
	counterpart, ok := uc.pair.Counterpart(input.Sender)
	if !ok {
		return nil, domain.ErrUnknownParticipant
	}

	kind, ok := input.Command.Kind()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCommand, input.Command)
	}

	txID := uc.idGen.Generate()
	now := uc.now()

	newEntry := func(participant string, amount decimal.Decimal) *domain.Entry {
		return &domain.Entry{
			ID:            uc.idGen.Generate(),
			TransactionID: txID,
			Participant:   participant,
			Amount:        amount,
			Description:   input.Description,
			Kind:          kind,
			CreatedBy:     input.Sender,
			CreatedAt:     now,
		}
	}

	var entries []*domain.Entry

	switch kind {
	case domain.KindDebe, domain.KindPago:
		entries = []*domain.Entry{newEntry(counterpart, input.Amount.Neg())}
		if err := uc.repo.Append(ctx, entries...); err != nil {
			return nil, fmt.Errorf("append %s entry: %w", kind, err)
		}

	case domain.KindMiti:
		half := domain.SplitHalf(input.Amount)
		entries = []*domain.Entry{
			newEntry(input.Sender, half),
			newEntry(counterpart, half.Neg()),
		}
		if err := uc.repo.Append(ctx, entries...); err != nil {
			return nil, fmt.Errorf("append miti entries: %w", err)
		}

	case domain.KindSetBalance:
		entries = []*domain.Entry{
			newEntry(input.Sender, input.Amount),
			newEntry(counterpart, input.Amount.Neg()),
		}
		if err := uc.repo.SetBalance(ctx, entries[0], entries[1]); err != nil {
			return nil, fmt.Errorf("set balance: %w", err)
		}
	}

	return &RecordResult{
		Kind:        kind,
		Sender:      input.Sender,
		Counterpart: counterpart,
		Description: input.Description,
		Amount:      input.Amount,
		Entries:     entries,
	}, nil
}

// Erase deletes every entry.
func (uc *LedgerUseCase) Erase(ctx context.Context) error {
	return uc.repo.EraseAll(ctx)
}

// Balance recomputes the balance report from stored entries.
func (uc *LedgerUseCase) Balance(ctx context.Context) (domain.BalanceReport, error) {
	rows, err := uc.repo.QueryBalances(ctx)
	if err != nil {
		return domain.BalanceReport{}, err
	}

	return domain.Aggregate(rows, uc.pair), nil
}

// LastTransaction is the most recent ledger write of a pair, as shown to users.
type LastTransaction struct {
	CreatedAt     time.Time
	TransactionID string
	EntryID       string
	Description   string
	Counterpart   string
	Kind          domain.Kind

	// Amount is the stored amount, except for miti where it is the full
	// (doubled) split total.
	Amount decimal.Decimal
}

// LastTransaction returns the most recent entry between sender and its counterpart.
func (uc *LedgerUseCase) LastTransaction(ctx context.Context, sender string) (*LastTransaction, error) {
	counterpart, ok := uc.pair.Counterpart(sender)
	if !ok {
		return nil, domain.ErrUnknownParticipant
	}

	entry, err := uc.repo.QueryLast(ctx, sender, counterpart)
	if err != nil {
		return nil, err
	}

	last := &LastTransaction{
		CreatedAt:     entry.CreatedAt,
		TransactionID: entry.TransactionID,
		EntryID:       entry.ID,
		Description:   entry.Description,
		Counterpart:   counterpart,
		Kind:          entry.Kind,
		Amount:        entry.Amount,
	}

	if entry.Kind == domain.KindMiti {
		own, err := uc.creatorEntry(ctx, entry)
		if err != nil {
			return nil, err
		}
		last.EntryID = own.ID
		last.Amount = own.Amount.Mul(decimal.NewFromInt(2))
	}

	return last, nil
}

// creatorEntry returns the half of a miti pair that belongs to whoever created it.
func (uc *LedgerUseCase) creatorEntry(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	if entry.Participant == entry.CreatedBy {
		return entry, nil
	}

	entries, err := uc.repo.ListByTransaction(ctx, entry.TransactionID)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if e.Participant == e.CreatedBy {
			return e, nil
		}
	}

	return entry, nil
}

// CorrectInput is a finished correction.
type CorrectInput struct {
	TransactionID string
	EntryID       string
	Kind          domain.Kind
	Description   string
	NewAmount     decimal.Decimal
}

// Correct rewrites the amount and description of a previously recorded command.
func (uc *LedgerUseCase) Correct(ctx context.Context, input CorrectInput) error {
	switch input.Kind {
	case domain.KindDebe, domain.KindPago:
		return uc.repo.Update(ctx, input.EntryID, input.NewAmount.Neg(), input.Description)

	case domain.KindMiti:
		entries, err := uc.repo.ListByTransaction(ctx, input.TransactionID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return domain.ErrEntryNotFound
		}

		half := domain.SplitHalf(input.NewAmount)
		updates := make([]domain.EntryUpdate, 0, len(entries))

		for _, e := range entries {
			amount := half.Neg()
			if e.Participant == e.CreatedBy {
				amount = half
			}
			updates = append(updates, domain.EntryUpdate{
				ID:          e.ID,
				Amount:      amount,
				Description: input.Description,
			})
		}

		return uc.repo.UpdateTransaction(ctx, updates)

	case domain.KindSetBalance:
		return domain.ErrNotCorrectable

	default:
		return fmt.Errorf("%w: %q", domain.ErrInvalidKind, input.Kind)
	}
}
