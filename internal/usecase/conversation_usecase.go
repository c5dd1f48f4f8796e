package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/mitiledger/internal/domain"
)

// Message is an inbound chat message.
type Message struct {
	ID             string
	SenderID       string
	ConversationID string
	Text           string
	IsGroup        bool
}

// ConversationConfig holds the conversation filters and pending-state expiry.
type ConversationConfig struct {
	// TargetConversationID restricts handling to one conversation. Empty accepts all.
	TargetConversationID string
	// PendingTTL expires stale pending interactions. Zero keeps them forever.
	PendingTTL time.Duration
}

// ConversationUseCase runs the per-sender conversation state machine.
type ConversationUseCase struct {
	ledger    *LedgerUseCase
	pending   PendingStore
	formatter *Formatter
	observer  CommandObserver
	sender    Sender
	logger    zerolog.Logger
	pair      domain.ParticipantPair
	cfg       ConversationConfig
	now       func() time.Time
}

// NewConversationUseCase creates a new ConversationUseCase.
func NewConversationUseCase(
	ledger *LedgerUseCase,
	pending PendingStore,
	formatter *Formatter,
	pair domain.ParticipantPair,
	observer CommandObserver,
	logger zerolog.Logger,
	cfg ConversationConfig,
) *ConversationUseCase {
	return &ConversationUseCase{
		ledger:    ledger,
		pending:   pending,
		formatter: formatter,
		observer:  observer,
		logger:    logger,
		pair:      pair,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithSender makes HandleMessage also deliver replies through s.
func (uc *ConversationUseCase) WithSender(s Sender) *ConversationUseCase {
	uc.sender = s
	return uc
}

// WithClock replaces the time source used to stamp and expire pending state.
func (uc *ConversationUseCase) WithClock(now func() time.Time) *ConversationUseCase {
	uc.now = now
	return uc
}

// HandleMessage processes one inbound message and returns the replies for it.
// Storage failures are answered with a generic reply. The returned error is
// only set when reply delivery fails.
func (uc *ConversationUseCase) HandleMessage(ctx context.Context, msg Message) ([]string, error) {
	if msg.Text == "" || msg.SenderID == "" {
		return nil, nil
	}

	if uc.cfg.TargetConversationID != "" && msg.ConversationID != uc.cfg.TargetConversationID {
		uc.logger.Debug().
			Str("conversation_id", msg.ConversationID).
			Msg("ignoring message from other conversation")
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultOperationTimeout)
	defer cancel()

	replies := uc.process(ctx, msg.SenderID, msg.Text)

	if uc.sender == nil {
		return replies, nil
	}

	for _, reply := range replies {
		if err := uc.sender.SendText(ctx, msg.ConversationID, reply); err != nil {
			return replies, fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
		}
	}

	return replies, nil
}

func (uc *ConversationUseCase) process(ctx context.Context, sender, text string) []string {
	state, err := uc.pending.Get(ctx, sender)
	if err != nil {
		return uc.fail(ctx, sender, "pending", err)
	}

	if state != nil && state.Expired(uc.now(), uc.cfg.PendingTTL) {
		uc.logger.Info().Str("sender", sender).Str("kind", string(state.Kind)).Msg("pending interaction expired")
		if err := uc.pending.Delete(ctx, sender); err != nil {
			return uc.fail(ctx, sender, "pending", err)
		}
		state = nil
	}

	switch {
	case state == nil:
	case state.Kind == domain.PendingDescription && state.Description != nil:
		return uc.completeDescription(ctx, sender, *state.Description, text)
	case state.Kind == domain.PendingCorrection && state.Correction != nil:
		return uc.advanceCorrection(ctx, sender, *state.Correction, text)
	}

	parsed, err := domain.ParseCommand(text)
	switch {
	case errors.Is(err, domain.ErrUnknownCommand):
		uc.logger.Debug().Str("sender", sender).Msg("ignoring text without pending interaction")
		return nil
	case errors.Is(err, domain.ErrInvalidAmount):
		uc.observe(parsed.Command, OutcomeInvalid)
		return []string{msgInvalidAmount}
	}

	switch parsed.Command {
	case domain.CommandBalance:
		return uc.balance(ctx, sender)
	case domain.CommandAyuda:
		uc.observe(parsed.Command, OutcomeOK)
		return []string{uc.formatter.Help()}
	}

	counterpart, ok := uc.pair.Counterpart(sender)
	if !ok {
		uc.logger.Warn().Str("sender", sender).Str("command", string(parsed.Command)).
			Msg("no counterpart for sender")
		uc.observe(parsed.Command, OutcomeIgnored)
		return nil
	}

	switch parsed.Command {
	case domain.CommandErase:
		return uc.erase(ctx, sender)
	case domain.CommandCorregir:
		return uc.startCorrection(ctx, sender)
	}

	req := domain.DescriptionRequest{
		Command:     parsed.Command,
		Counterpart: counterpart,
		Amount:      parsed.Amount,
	}
	if err := uc.pending.Set(ctx, sender, domain.NewPendingDescription(req, uc.now())); err != nil {
		return uc.fail(ctx, sender, string(parsed.Command), err)
	}

	uc.observe(parsed.Command, OutcomePending)

	return []string{msgAskDescription}
}

func (uc *ConversationUseCase) completeDescription(ctx context.Context, sender string, req domain.DescriptionRequest, text string) []string {
	if err := uc.pending.Delete(ctx, sender); err != nil {
		return uc.fail(ctx, sender, string(req.Command), err)
	}

	result, err := uc.ledger.Record(ctx, RecordInput{
		Command:     req.Command,
		Sender:      sender,
		Description: text,
		Amount:      req.Amount,
	})
	if err != nil {
		return uc.fail(ctx, sender, string(req.Command), err)
	}

	uc.logger.Info().
		Str("sender", sender).
		Str("counterpart", result.Counterpart).
		Str("kind", string(result.Kind)).
		Str("amount", result.Amount.String()).
		Str("description", result.Description).
		Msg("entry recorded")
	uc.observe(req.Command, OutcomeOK)

	return []string{uc.formatter.Recorded(result)}
}

func (uc *ConversationUseCase) balance(ctx context.Context, sender string) []string {
	report, err := uc.ledger.Balance(ctx)
	if err != nil {
		return uc.fail(ctx, sender, string(domain.CommandBalance), err)
	}

	uc.observe(domain.CommandBalance, OutcomeOK)

	return []string{uc.formatter.Balance(report)}
}

func (uc *ConversationUseCase) erase(ctx context.Context, sender string) []string {
	if err := uc.ledger.Erase(ctx); err != nil {
		return uc.fail(ctx, sender, string(domain.CommandErase), err)
	}

	uc.logger.Info().Str("sender", sender).Msg("ledger erased")
	uc.observe(domain.CommandErase, OutcomeOK)

	return []string{msgErased}
}

func (uc *ConversationUseCase) startCorrection(ctx context.Context, sender string) []string {
	last, err := uc.ledger.LastTransaction(ctx, sender)
	if errors.Is(err, domain.ErrEntryNotFound) {
		uc.observe(domain.CommandCorregir, OutcomeInvalid)
		return []string{msgNothingToCorrect}
	}
	if err != nil {
		return uc.fail(ctx, sender, string(domain.CommandCorregir), err)
	}

	if last.Kind == domain.KindSetBalance {
		uc.observe(domain.CommandCorregir, OutcomeInvalid)
		return []string{msgNotCorrectable}
	}

	req := domain.CorrectionRequest{
		TransactionID:  last.TransactionID,
		EntryID:        last.EntryID,
		Stage:          domain.StageConfirm,
		Kind:           last.Kind,
		Counterpart:    last.Counterpart,
		OriginalAmount: last.Amount,
	}
	if err := uc.pending.Set(ctx, sender, domain.NewPendingCorrection(req, uc.now())); err != nil {
		return uc.fail(ctx, sender, string(domain.CommandCorregir), err)
	}

	uc.observe(domain.CommandCorregir, OutcomePending)

	return []string{uc.formatter.CorrectionPreview(last)}
}

func (uc *ConversationUseCase) advanceCorrection(ctx context.Context, sender string, req domain.CorrectionRequest, text string) []string {
	switch req.Stage {
	case domain.StageConfirm:
		if !strings.EqualFold(strings.TrimSpace(text), correctionConfirmAnswer) {
			return uc.cancelCorrection(ctx, sender, msgCorrectionCancelled)
		}

		req.Stage = domain.StageNewAmount
		if err := uc.pending.Set(ctx, sender, domain.NewPendingCorrection(req, uc.now())); err != nil {
			return uc.fail(ctx, sender, string(domain.CommandCorregir), err)
		}

		return []string{msgAskNewAmount}

	case domain.StageNewAmount:
		amount, err := domain.ParseAmount(text)
		if err != nil {
			return uc.cancelCorrection(ctx, sender, msgCorrectionBadAmount)
		}

		req.NewAmount = amount
		req.Stage = domain.StageNewDescription
		if err := uc.pending.Set(ctx, sender, domain.NewPendingCorrection(req, uc.now())); err != nil {
			return uc.fail(ctx, sender, string(domain.CommandCorregir), err)
		}

		return []string{msgAskNewDescription}

	case domain.StageNewDescription:
		if err := uc.pending.Delete(ctx, sender); err != nil {
			return uc.fail(ctx, sender, string(domain.CommandCorregir), err)
		}

		err := uc.ledger.Correct(ctx, CorrectInput{
			TransactionID: req.TransactionID,
			EntryID:       req.EntryID,
			Kind:          req.Kind,
			Description:   text,
			NewAmount:     req.NewAmount,
		})
		if err != nil {
			return uc.fail(ctx, sender, string(domain.CommandCorregir), err)
		}

		uc.logger.Info().
			Str("sender", sender).
			Str("transaction_id", req.TransactionID).
			Str("kind", string(req.Kind)).
			Str("old_amount", req.OriginalAmount.String()).
			Str("new_amount", req.NewAmount.String()).
			Msg("entry corrected")
		uc.observe(domain.CommandCorregir, OutcomeOK)

		return []string{msgCorrected}
	}

	uc.logger.Warn().Str("sender", sender).Str("stage", string(req.Stage)).Msg("unknown correction stage")

	return uc.cancelCorrection(ctx, sender, msgCorrectionCancelled)
}

func (uc *ConversationUseCase) cancelCorrection(ctx context.Context, sender, reply string) []string {
	if err := uc.pending.Delete(ctx, sender); err != nil {
		return uc.fail(ctx, sender, string(domain.CommandCorregir), err)
	}

	uc.observe(domain.CommandCorregir, OutcomeCancelled)

	return []string{reply}
}

// fail logs err, clears the sender's pending slot and returns the generic reply.
func (uc *ConversationUseCase) fail(ctx context.Context, sender, command string, err error) []string {
	uc.logger.Error().Err(err).Str("sender", sender).Str("command", command).Msg("command failed")

	if delErr := uc.pending.Delete(ctx, sender); delErr != nil {
		uc.logger.Error().Err(delErr).Str("sender", sender).Msg("failed to clear pending interaction")
	}

	if uc.observer != nil {
		uc.observer.ObserveCommand(command, OutcomeError)
	}

	return []string{msgInternalError}
}

func (uc *ConversationUseCase) observe(command domain.Command, outcome string) {
	if uc.observer != nil {
		uc.observer.ObserveCommand(string(command), outcome)
	}
}
