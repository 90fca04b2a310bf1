package invoice

import (
	"context"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/inventory"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/invoice"
)

// TransactionScope runs invoice writes atomically. Everything the callback does
// through the repositories it receives commits or rolls back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories an invoice write touches.
// All of them share the same underlying database transaction.
type TransactionalRepositories interface {
	InvoiceRepo() invoice.InvoiceRepository
	GSTEntryRepo() invoice.GSTEntryRepository
	// ProductRepo is used for stock deltas; they must roll back with the invoice
	ProductRepo() inventory.ProductRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing or when transaction support is not required.
type NoOpTransactionScope struct {
	invoiceRepo  invoice.InvoiceRepository
	gstEntryRepo invoice.GSTEntryRepository
	productRepo  inventory.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	invoiceRepo invoice.InvoiceRepository,
	gstEntryRepo invoice.GSTEntryRepository,
	productRepo inventory.ProductRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		invoiceRepo:  invoiceRepo,
		gstEntryRepo: gstEntryRepo,
		productRepo:  productRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InvoiceRepo returns the invoice repository.
func (s *NoOpTransactionScope) InvoiceRepo() invoice.InvoiceRepository {
	return s.invoiceRepo
}

// GSTEntryRepo returns the GST entry repository.
func (s *NoOpTransactionScope) GSTEntryRepo() invoice.GSTEntryRepository {
	return s.gstEntryRepo
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() inventory.ProductRepository {
	return s.productRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
