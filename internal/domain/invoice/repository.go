package invoice

import (
	"context"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByIDForTenant loads the invoice with its items and payments
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)

	// FindAllForTenant lists invoice headers. Supported filter keys:
	// invoice_type, entity_type, payment_status, entity_id.
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Invoice, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// FindPaymentsForInvoice returns payments in payment-date order
	FindPaymentsForInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]InvoicePayment, error)

	// FindOverdueCandidates returns unpaid (due/partial) invoices of the tenant
	FindOverdueCandidates(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]Invoice, error)

	// NumberExists checks whether a system or custom number is taken for the owner
	NumberExists(ctx context.Context, tenantID, ownerID uuid.UUID, number string) (bool, error)

	// Create inserts the header and items. A unique-number violation is
	// reported as shared.ErrDuplicateNumber.
	Create(ctx context.Context, inv *Invoice) error

	// SaveWithLock updates status and paid fields guarded by the version column
	SaveWithLock(ctx context.Context, inv *Invoice) error

	// AddPayment inserts one payment row
	AddPayment(ctx context.Context, payment *InvoicePayment) error
}

// GSTEntryRepository persists the derived GST ledger
type GSTEntryRepository interface {
	Create(ctx context.Context, entry *GSTEntry) error
	MarkPaid(ctx context.Context, tenantID, invoiceID uuid.UUID, paidAt time.Time) error
	FindByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) (*GSTEntry, error)
}
