package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// BalanceRow is a stored sum of entry amounts for one participant and kind.
type BalanceRow struct {
	Participant string
	Kind        Kind
	Total       decimal.Decimal
}

// ParticipantBalance is the derived balance of one participant.
type ParticipantBalance struct {
	Participant string
	Balance     decimal.Decimal
}

// Debt states that Debtor owes Amount to Creditor.
type Debt struct {
	Debtor   string
	Creditor string
	Amount   decimal.Decimal
}

// BalanceReport is the result of aggregating the ledger.
type BalanceReport struct {
	Debt     *Debt
	Balances []ParticipantBalance
}

// Settled reports whether nobody owes anything.
func (r BalanceReport) Settled() bool {
	return r.Debt == nil
}

// Aggregate reduces stored rows into per-participant balances and a netted
// debt summary for the pair.
//
// Single-sided kinds (debe, pago) only store the counterpart's side, so their
// totals are mirrored onto the other participant here. That keeps the
// per-participant view zero-sum for every kind.
func Aggregate(rows []BalanceRow, pair ParticipantPair) BalanceReport {
	totals := make(map[string]decimal.Decimal)

	for _, row := range rows {
		totals[row.Participant] = totals[row.Participant].Add(row.Total)

		if row.Kind.Mirrored() {
			continue
		}

		if counterpart, ok := pair.Counterpart(row.Participant); ok {
			totals[counterpart] = totals[counterpart].Sub(row.Total)
		}
	}

	report := BalanceReport{Balances: orderBalances(totals, pair)}

	if len(report.Balances) == 0 {
		return report
	}

	// Balances are zero-sum, so the difference counts the debt twice.
	net := totals[pair.A.ID].Sub(totals[pair.B.ID]).Div(two)

	switch net.Sign() {
	case 1:
		report.Debt = &Debt{Debtor: pair.B.ID, Creditor: pair.A.ID, Amount: net}
	case -1:
		report.Debt = &Debt{Debtor: pair.A.ID, Creditor: pair.B.ID, Amount: net.Neg()}
	}

	return report
}

// orderBalances lists the pair first, then any other participant by identity.
func orderBalances(totals map[string]decimal.Decimal, pair ParticipantPair) []ParticipantBalance {
	balances := make([]ParticipantBalance, 0, len(totals))

	for _, id := range []string{pair.A.ID, pair.B.ID} {
		if total, ok := totals[id]; ok {
			balances = append(balances, ParticipantBalance{Participant: id, Balance: total})
		}
	}

	var others []string
	for id := range totals {
		if !pair.Contains(id) {
			others = append(others, id)
		}
	}
	sort.Strings(others)

	for _, id := range others {
		balances = append(balances, ParticipantBalance{Participant: id, Balance: totals[id]})
	}

	return balances
}
