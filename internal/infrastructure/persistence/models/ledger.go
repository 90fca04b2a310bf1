package models

import (
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerModel is the persistence model for ledger accounts
type LedgerModel struct {
	TenantAggregateModel
	Name           string          `gorm:"type:varchar(200);not null"`
	LedgerType     string          `gorm:"type:varchar(20);not null"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Description    string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (LedgerModel) TableName() string {
	return "ledgers"
}

// ToDomain converts the model to a domain Ledger
func (m *LedgerModel) ToDomain() *ledger.Ledger {
	return &ledger.Ledger{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Type:                ledger.Type(m.LedgerType),
		OpeningBalance:      m.OpeningBalance,
		Description:         m.Description,
	}
}

// LedgerModelFromDomain creates a model from a domain Ledger
func LedgerModelFromDomain(l *ledger.Ledger) *LedgerModel {
	m := &LedgerModel{
		Name:           l.Name,
		LedgerType:     string(l.Type),
		OpeningBalance: l.OpeningBalance,
		Description:    l.Description,
	}
	m.FromDomainTenantAggregateRoot(l.TenantAggregateRoot)
	return m
}

// LedgerEntryModel is one append-only posting
type LedgerEntryModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	LedgerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	EntryDate time.Time       `gorm:"type:date;not null;index"`
	Debit     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Credit    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Narration string          `gorm:"type:varchar(500)"`
	Reference string          `gorm:"type:varchar(100);index"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the model to a domain LedgerEntry
func (m *LedgerEntryModel) ToDomain() ledger.LedgerEntry {
	return ledger.LedgerEntry{
		ID:        m.ID,
		TenantID:  m.TenantID,
		LedgerID:  m.LedgerID,
		EntryDate: m.EntryDate,
		Debit:     m.Debit,
		Credit:    m.Credit,
		Narration: m.Narration,
		Reference: m.Reference,
		CreatedAt: m.CreatedAt,
	}
}

// LedgerEntryModelFromDomain creates a model from a domain LedgerEntry
func LedgerEntryModelFromDomain(e *ledger.LedgerEntry) LedgerEntryModel {
	return LedgerEntryModel{
		ID:        e.ID,
		TenantID:  e.TenantID,
		LedgerID:  e.LedgerID,
		EntryDate: e.EntryDate,
		Debit:     e.Debit,
		Credit:    e.Credit,
		Narration: e.Narration,
		Reference: e.Reference,
		CreatedAt: e.CreatedAt,
	}
}
