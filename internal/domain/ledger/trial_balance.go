package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TrialBalanceStatus represents the result status of a trial balance check
type TrialBalanceStatus string

const (
	TrialBalanceStatusBalanced   TrialBalanceStatus = "BALANCED"   // Debit equals Credit
	TrialBalanceStatusUnbalanced TrialBalanceStatus = "UNBALANCED" // Debit does not equal Credit
)

// IsBalanced returns true if the trial balance is balanced
func (s TrialBalanceStatus) IsBalanced() bool {
	return s == TrialBalanceStatusBalanced
}

// Summary is one ledger's movement over a period
type Summary struct {
	LedgerID       uuid.UUID       `json:"ledger_id"`
	LedgerName     string          `json:"ledger_name"`
	LedgerType     Type            `json:"ledger_type"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Debits         decimal.Decimal `json:"debits"`
	Credits        decimal.Decimal `json:"credits"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// TrialBalance is the portfolio view of every ledger over a period
type TrialBalance struct {
	From         *time.Time         `json:"from,omitempty"`
	To           *time.Time         `json:"to,omitempty"`
	Rows         []Summary          `json:"rows"`
	TotalDebits  decimal.Decimal    `json:"total_debits"`
	TotalCredits decimal.Decimal    `json:"total_credits"`
	Difference   decimal.Decimal    `json:"difference"`
	Status       TrialBalanceStatus `json:"status"`
}

// Summarize computes one ledger's summary for the period. Entries dated before
// the period roll into the opening balance; entries after it are ignored.
func Summarize(l Ledger, entries []LedgerEntry, p Period) Summary {
	s := Summary{
		LedgerID:   l.ID,
		LedgerName: l.Name,
		LedgerType: l.Type,
		Debits:     decimal.Zero,
		Credits:    decimal.Zero,
	}
	priorDebits, priorCredits := decimal.Zero, decimal.Zero
	for _, e := range entries {
		if e.LedgerID != l.ID {
			continue
		}
		switch {
		case p.Before(e.EntryDate):
			priorDebits = priorDebits.Add(e.Debit)
			priorCredits = priorCredits.Add(e.Credit)
		case p.Contains(e.EntryDate):
			s.Debits = s.Debits.Add(e.Debit)
			s.Credits = s.Credits.Add(e.Credit)
		}
	}
	s.OpeningBalance = ClosingBalance(l.Type, l.OpeningBalance, priorDebits, priorCredits)
	s.ClosingBalance = ClosingBalance(l.Type, s.OpeningBalance, s.Debits, s.Credits)
	return s
}

// BuildTrialBalance summarizes every ledger and checks that period debits
// equal period credits. A nonzero difference is reported as UNBALANCED.
func BuildTrialBalance(ledgers []Ledger, entries []LedgerEntry, p Period) TrialBalance {
	byLedger := make(map[uuid.UUID][]LedgerEntry, len(ledgers))
	for _, e := range entries {
		byLedger[e.LedgerID] = append(byLedger[e.LedgerID], e)
	}

	tb := TrialBalance{
		From:         p.From,
		To:           p.To,
		Rows:         make([]Summary, 0, len(ledgers)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}
	for _, l := range ledgers {
		row := Summarize(l, byLedger[l.ID], p)
		tb.Rows = append(tb.Rows, row)
		tb.TotalDebits = tb.TotalDebits.Add(row.Debits)
		tb.TotalCredits = tb.TotalCredits.Add(row.Credits)
	}
	sort.SliceStable(tb.Rows, func(i, j int) bool {
		if tb.Rows[i].LedgerType != tb.Rows[j].LedgerType {
			return tb.Rows[i].LedgerType < tb.Rows[j].LedgerType
		}
		return tb.Rows[i].LedgerName < tb.Rows[j].LedgerName
	})

	tb.Difference = tb.TotalDebits.Sub(tb.TotalCredits)
	tb.Status = TrialBalanceStatusBalanced
	if !tb.Difference.IsZero() {
		tb.Status = TrialBalanceStatusUnbalanced
	}
	return tb
}

// NetByType returns the net movement of all ledgers of type t in the period,
// signed by the normal side of the type.
func NetByType(ledgers []Ledger, entries []LedgerEntry, t Type, p Period) decimal.Decimal {
	ids := make(map[uuid.UUID]bool)
	for _, l := range ledgers {
		if l.Type == t {
			ids[l.ID] = true
		}
	}
	debits, credits := decimal.Zero, decimal.Zero
	for _, e := range entries {
		if !ids[e.LedgerID] || !p.Contains(e.EntryDate) {
			continue
		}
		debits = debits.Add(e.Debit)
		credits = credits.Add(e.Credit)
	}
	return ClosingBalance(t, decimal.Zero, debits, credits)
}
