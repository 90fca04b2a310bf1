package ledger

import (
	"strings"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type classifies a ledger account
type Type string

const (
	TypeAsset       Type = "asset"
	TypeBank        Type = "bank"
	TypeCash        Type = "cash"
	TypeReceivables Type = "receivables"
	TypeExpense     Type = "expense"
	TypeCapital     Type = "capital"
	TypeEquity      Type = "equity"
	TypeLoan        Type = "loan"
	TypePayables    Type = "payables"
	TypeLiability   Type = "liability"
	TypeIncome      Type = "income"
)

// AllTypes lists every ledger type in display order
var AllTypes = []Type{
	TypeAsset, TypeBank, TypeCash, TypeReceivables, TypeExpense,
	TypeCapital, TypeEquity, TypeLoan, TypePayables, TypeLiability, TypeIncome,
}

// IsValid checks if the ledger type is known
func (t Type) IsValid() bool {
	for _, known := range AllTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsCreditNormal reports whether credits increase the balance of this type
func (t Type) IsCreditNormal() bool {
	switch t {
	case TypeCapital, TypeEquity, TypeLoan, TypePayables, TypeLiability, TypeIncome:
		return true
	}
	return false
}

// ClosingBalance applies period debits and credits to an opening balance
// according to the normal side of the ledger type.
func ClosingBalance(t Type, opening, debits, credits decimal.Decimal) decimal.Decimal {
	if t.IsCreditNormal() {
		return opening.Add(credits).Sub(debits)
	}
	return opening.Add(debits).Sub(credits)
}

// Ledger is a named account that entries are posted against
type Ledger struct {
	shared.TenantAggregateRoot
	Name           string
	Type           Type
	OpeningBalance decimal.Decimal
	Description    string
}

// NewLedger creates a ledger account
func NewLedger(tenantID, ownerID uuid.UUID, name string, t Type, opening decimal.Decimal) (*Ledger, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Ledger name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewValidationError("Ledger name cannot exceed 200 characters")
	}
	if !t.IsValid() {
		return nil, shared.NewValidationError("Invalid ledger type: " + string(t))
	}
	return &Ledger{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID, ownerID),
		Name:                name,
		Type:                t,
		OpeningBalance:      opening,
	}, nil
}

// Balance returns the closing balance after the given entries
func (l *Ledger) Balance(entries []LedgerEntry) decimal.Decimal {
	debits, credits := Totals(entries)
	return ClosingBalance(l.Type, l.OpeningBalance, debits, credits)
}
