package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PendingKind tags the variant held in a sender's pending slot.
type PendingKind string

const (
	PendingDescription PendingKind = "description"
	PendingCorrection  PendingKind = "correction"
)

// CorrectionStage is the step a correction is waiting on.
type CorrectionStage string

const (
	StageConfirm        CorrectionStage = "confirm"
	StageNewAmount      CorrectionStage = "newAmount"
	StageNewDescription CorrectionStage = "newDescription"
)

// DescriptionRequest is a command with an amount awaiting its free-text description.
type DescriptionRequest struct {
	Command     Command         `json:"command"`
	Counterpart string          `json:"counterpart"`
	Amount      decimal.Decimal `json:"amount"`
}

// CorrectionRequest tracks an in-flight edit of the last entry.
type CorrectionRequest struct {
	TransactionID  string          `json:"transaction_id"`
	EntryID        string          `json:"entry_id"`
	Stage          CorrectionStage `json:"stage"`
	Kind           Kind            `json:"kind"`
	Counterpart    string          `json:"counterpart"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	NewAmount      decimal.Decimal `json:"new_amount"`
}

// PendingState is the single interaction slot of a sender. Exactly one of
// Description or Correction is set, matching Kind.
type PendingState struct {
	UpdatedAt   time.Time           `json:"updated_at"`
	Description *DescriptionRequest `json:"description,omitempty"`
	Correction  *CorrectionRequest  `json:"correction,omitempty"`
	Kind        PendingKind         `json:"kind"`
}

// NewPendingDescription builds an awaiting-description state.
func NewPendingDescription(req DescriptionRequest, now time.Time) *PendingState {
	return &PendingState{
		Kind:        PendingDescription,
		Description: &req,
		UpdatedAt:   now,
	}
}

// NewPendingCorrection builds an awaiting-correction state.
func NewPendingCorrection(req CorrectionRequest, now time.Time) *PendingState {
	return &PendingState{
		Kind:       PendingCorrection,
		Correction: &req,
		UpdatedAt:  now,
	}
}

// Expired reports whether the state is older than ttl. A zero ttl never expires.
func (s *PendingState) Expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(s.UpdatedAt) > ttl
}
