package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/mitiledger/internal/domain"
)

// Message processing statuses.
const (
	StatusProcessed = "processed"
	StatusDuplicate = "duplicate"
	StatusIgnored   = "ignored"
)

// MessageResponse carries the bot replies for one inbound message.
type MessageResponse struct {
	MessageID     string   `json:"message_id,omitempty"`
	Status        string   `json:"status"`
	Replies       []string `json:"replies"`
	DeliveryError string   `json:"delivery_error,omitempty"`
}

// BalanceResponse is the JSON view of the current balance.
type BalanceResponse struct {
	Balances []ParticipantBalanceResponse `json:"balances"`
	Debt     *DebtResponse                `json:"debt"`
	Settled  bool                         `json:"settled"`
	Text     string                       `json:"text"`
}

// ParticipantBalanceResponse is one participant's balance.
type ParticipantBalanceResponse struct {
	Participant string          `json:"participant"`
	Name        string          `json:"name"`
	Balance     decimal.Decimal `json:"balance"`
}

// DebtResponse states who owes whom.
type DebtResponse struct {
	Debtor   string          `json:"debtor"`
	Creditor string          `json:"creditor"`
	Amount   decimal.Decimal `json:"amount"`
}

// BalanceFromDomain converts a balance report to response. text is the
// rendered chat reply for the same report.
func BalanceFromDomain(report domain.BalanceReport, pair domain.ParticipantPair, text string) *BalanceResponse {
	resp := &BalanceResponse{
		Balances: make([]ParticipantBalanceResponse, len(report.Balances)),
		Settled:  report.Settled(),
		Text:     text,
	}

	for i, b := range report.Balances {
		resp.Balances[i] = ParticipantBalanceResponse{
			Participant: b.Participant,
			Name:        pair.Name(b.Participant),
			Balance:     b.Balance,
		}
	}

	if report.Debt != nil {
		resp.Debt = &DebtResponse{
			Debtor:   report.Debt.Debtor,
			Creditor: report.Debt.Creditor,
			Amount:   report.Debt.Amount,
		}
	}

	return resp
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
