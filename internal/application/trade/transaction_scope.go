package trade

import (
	"context"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/inventory"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/trade"
)

// TransactionScope runs a purchase order change and its stock movements in
// one database transaction.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories bound to the current transaction
type TransactionalRepositories interface {
	PurchaseOrderRepo() trade.PurchaseOrderRepository
	ProductRepo() inventory.ProductRepository
}

// NoOpTransactionScope runs the callback directly against the given repositories
type NoOpTransactionScope struct {
	orderRepo   trade.PurchaseOrderRepository
	productRepo inventory.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(orderRepo trade.PurchaseOrderRepository, productRepo inventory.ProductRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// PurchaseOrderRepo returns the purchase order repository.
func (s *NoOpTransactionScope) PurchaseOrderRepo() trade.PurchaseOrderRepository {
	return s.orderRepo
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() inventory.ProductRepository {
	return s.productRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
