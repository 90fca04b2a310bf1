package ledger

import (
	"context"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// LedgerRepository defines the interface for ledger persistence. Entries are
// append-only: there is no update or delete.
type LedgerRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Ledger, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Ledger, error)
	Save(ctx context.Context, l *Ledger) error

	// AppendEntries inserts entries in one statement
	AppendEntries(ctx context.Context, entries []LedgerEntry) error

	// FindEntriesForTenant returns entries dated on or before p.To (all of
	// them when p.To is nil), in entry-date order
	FindEntriesForTenant(ctx context.Context, tenantID uuid.UUID, p Period) ([]LedgerEntry, error)
}
