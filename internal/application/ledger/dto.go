package ledger

import (
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateLedgerRequest represents a request to open a ledger account
type CreateLedgerRequest struct {
	Name           string          `json:"name" binding:"required,min=1,max=200"`
	Type           string          `json:"ledger_type" binding:"required,oneof=asset bank cash receivables expense capital equity loan payables liability income"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Description    string          `json:"description" binding:"omitempty,max=500"`
}

// PostEntryRequest posts a single debit or credit against a ledger
type PostEntryRequest struct {
	EntryDate string          `json:"entry_date" binding:"omitempty,datetime=2006-01-02"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Narration string          `json:"narration" binding:"omitempty,max=500"`
	Reference string          `json:"reference" binding:"omitempty,max=100"`
}

// PostJournalRequest moves an amount from one ledger to another
type PostJournalRequest struct {
	DebitLedgerID  uuid.UUID       `json:"debit_ledger_id" binding:"required"`
	CreditLedgerID uuid.UUID       `json:"credit_ledger_id" binding:"required"`
	EntryDate      string          `json:"entry_date" binding:"omitempty,datetime=2006-01-02"`
	Amount         decimal.Decimal `json:"amount" binding:"required,decimal_gt0"`
	Narration      string          `json:"narration" binding:"omitempty,max=500"`
	Reference      string          `json:"reference" binding:"omitempty,max=100"`
}

// PeriodQuery selects a reporting period; both bounds are optional
type PeriodQuery struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// LedgerResponse represents a ledger with its current balance
type LedgerResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"ledger_type"`
	CreditNormal   bool            `json:"credit_normal"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Balance        decimal.Decimal `json:"balance"`
	Description    string          `json:"description,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// EntryResponse represents a posting in API responses
type EntryResponse struct {
	ID        uuid.UUID       `json:"id"`
	LedgerID  uuid.UUID       `json:"ledger_id"`
	EntryDate string          `json:"entry_date"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Narration string          `json:"narration,omitempty"`
	Reference string          `json:"reference,omitempty"`
}

// ToLedgerResponse converts a ledger and its balance to a response
func ToLedgerResponse(l *ledger.Ledger, balance decimal.Decimal) LedgerResponse {
	return LedgerResponse{
		ID:             l.ID,
		Name:           l.Name,
		Type:           string(l.Type),
		CreditNormal:   l.Type.IsCreditNormal(),
		OpeningBalance: l.OpeningBalance,
		Balance:        balance,
		Description:    l.Description,
		CreatedAt:      l.CreatedAt,
	}
}

// ToEntryResponses converts postings to responses
func ToEntryResponses(entries []ledger.LedgerEntry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = EntryResponse{
			ID:        e.ID,
			LedgerID:  e.LedgerID,
			EntryDate: e.EntryDate.Format(dateLayout),
			Debit:     e.Debit,
			Credit:    e.Credit,
			Narration: e.Narration,
			Reference: e.Reference,
		}
	}
	return out
}
