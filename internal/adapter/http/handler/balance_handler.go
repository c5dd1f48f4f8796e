package handler

import (
	"context"
	"net/http"

	"github.com/iho/mitiledger/internal/adapter/http/dto"
	"github.com/iho/mitiledger/internal/domain"
	"github.com/iho/mitiledger/internal/usecase"
)

// BalanceReader reads the current balance.
type BalanceReader interface {
	Balance(ctx context.Context) (domain.BalanceReport, error)
}

// BalanceHandler exposes the ledger balance as JSON.
type BalanceHandler struct {
	ledger    BalanceReader
	formatter *usecase.Formatter
	pair      domain.ParticipantPair
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(ledger BalanceReader, formatter *usecase.Formatter, pair domain.ParticipantPair) *BalanceHandler {
	return &BalanceHandler{ledger: ledger, formatter: formatter, pair: pair}
}

// Get returns the current balance.
func (h *BalanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledger.Balance(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(report, h.pair, h.formatter.Balance(report)))
}
