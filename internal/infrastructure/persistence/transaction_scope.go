package persistence

import (
	"context"

	appinvoice "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/invoice"
	apptrade "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/trade"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/inventory"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/invoice"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope runs a unit of work inside one GORM transaction. The
// repositories handed to the callback all share that transaction, so stock
// deltas roll back together with the document that caused them.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// ForInvoices adapts the scope to the invoice service
func (s *GormTransactionScope) ForInvoices() appinvoice.TransactionScope {
	return invoiceScope{s}
}

// ForPurchaseOrders adapts the scope to the purchase order service
func (s *GormTransactionScope) ForPurchaseOrders() apptrade.TransactionScope {
	return tradeScope{s}
}

func (s *GormTransactionScope) execute(ctx context.Context, fn func(repos *gormTransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type invoiceScope struct{ *GormTransactionScope }

// Execute implements appinvoice.TransactionScope
func (s invoiceScope) Execute(ctx context.Context, fn func(repos appinvoice.TransactionalRepositories) error) error {
	return s.execute(ctx, func(repos *gormTransactionalRepositories) error { return fn(repos) })
}

type tradeScope struct{ *GormTransactionScope }

// Execute implements apptrade.TransactionScope
func (s tradeScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.execute(ctx, func(repos *gormTransactionalRepositories) error { return fn(repos) })
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// InvoiceRepo returns the invoice repository scoped to the current transaction.
func (r *gormTransactionalRepositories) InvoiceRepo() invoice.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

// GSTEntryRepo returns the GST entry repository scoped to the current transaction.
func (r *gormTransactionalRepositories) GSTEntryRepo() invoice.GSTEntryRepository {
	return NewGormGSTEntryRepository(r.tx)
}

// ProductRepo returns the product repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ProductRepo() inventory.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// PurchaseOrderRepo returns the purchase order repository scoped to the current transaction.
func (r *gormTransactionalRepositories) PurchaseOrderRepo() trade.PurchaseOrderRepository {
	return NewGormPurchaseOrderRepository(r.tx)
}

var (
	_ appinvoice.TransactionScope          = invoiceScope{}
	_ apptrade.TransactionScope            = tradeScope{}
	_ appinvoice.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
	_ apptrade.TransactionalRepositories   = (*gormTransactionalRepositories)(nil)
)
