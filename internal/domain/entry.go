package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies the command that produced an entry.
type Kind string

const (
	KindDebe       Kind = "debe"
	KindPago       Kind = "pago"
	KindMiti       Kind = "miti"
	KindSetBalance Kind = "setbalance"
)

// Valid reports whether k is a known entry kind.
func (k Kind) Valid() bool {
	switch k {
	case KindDebe, KindPago, KindMiti, KindSetBalance:
		return true
	}
	return false
}

// Mirrored reports whether entries of this kind are written as a zero-sum pair,
// one per participant.
func (k Kind) Mirrored() bool {
	return k == KindMiti || k == KindSetBalance
}

// Entry represents a single signed ledger record against a participant.
type Entry struct {
	CreatedAt     time.Time
	ID            string
	TransactionID string
	Participant   string
	Description   string
	CreatedBy     string
	Kind          Kind
	Amount        decimal.Decimal
}

// EntryUpdate is an in-place edit of a single entry.
type EntryUpdate struct {
	ID          string
	Description string
	Amount      decimal.Decimal
}

// SplitHalf returns the share of amount owed by each side of a miti split.
func SplitHalf(amount decimal.Decimal) decimal.Decimal {
	return amount.Div(two)
}
