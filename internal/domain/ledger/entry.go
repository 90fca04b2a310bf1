package ledger

import (
	"strings"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEntry is one immutable posting. Exactly one of Debit and Credit is
// positive.
type LedgerEntry struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	LedgerID  uuid.UUID
	EntryDate time.Time
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	Narration string
	Reference string
	CreatedAt time.Time
}

// NewLedgerEntry validates and creates a posting against ledger
func NewLedgerEntry(l *Ledger, entryDate time.Time, debit, credit decimal.Decimal, narration, reference string) (*LedgerEntry, error) {
	if l == nil {
		return nil, shared.NewValidationError("Ledger is required")
	}
	if debit.IsNegative() || credit.IsNegative() {
		return nil, shared.NewValidationError("Debit and credit cannot be negative")
	}
	if debit.IsPositive() == credit.IsPositive() {
		return nil, shared.NewValidationError("Enter either a debit or a credit amount")
	}
	if entryDate.IsZero() {
		entryDate = time.Now()
	}
	return &LedgerEntry{
		ID:        uuid.New(),
		TenantID:  l.TenantID,
		LedgerID:  l.ID,
		EntryDate: entryDate,
		Debit:     debit,
		Credit:    credit,
		Narration: strings.TrimSpace(narration),
		Reference: strings.TrimSpace(reference),
		CreatedAt: time.Now(),
	}, nil
}

// NewJournal posts amount as a debit to one ledger and a matching credit to
// another, sharing one reference.
func NewJournal(debitLedger, creditLedger *Ledger, entryDate time.Time, amount decimal.Decimal, narration, reference string) ([]LedgerEntry, error) {
	if debitLedger == nil || creditLedger == nil {
		return nil, shared.NewValidationError("Both ledgers are required")
	}
	if debitLedger.ID == creditLedger.ID {
		return nil, shared.NewValidationError("Debit and credit ledgers must differ")
	}
	if debitLedger.TenantID != creditLedger.TenantID {
		return nil, shared.NewValidationError("Ledgers belong to different companies")
	}
	if reference == "" {
		reference = uuid.NewString()
	}
	dr, err := NewLedgerEntry(debitLedger, entryDate, amount, decimal.Zero, narration, reference)
	if err != nil {
		return nil, err
	}
	cr, err := NewLedgerEntry(creditLedger, entryDate, decimal.Zero, amount, narration, reference)
	if err != nil {
		return nil, err
	}
	return []LedgerEntry{*dr, *cr}, nil
}

// Totals sums the debits and credits of entries
func Totals(entries []LedgerEntry) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, e := range entries {
		debits = debits.Add(e.Debit)
		credits = credits.Add(e.Credit)
	}
	return debits, credits
}

// Period is an inclusive date range. A nil bound is open.
type Period struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether t falls inside the period
func (p Period) Contains(t time.Time) bool {
	if p.From != nil && t.Before(*p.From) {
		return false
	}
	if p.To != nil && t.After(*p.To) {
		return false
	}
	return true
}

// Before reports whether t is earlier than the start of the period
func (p Period) Before(t time.Time) bool {
	return p.From != nil && t.Before(*p.From)
}
