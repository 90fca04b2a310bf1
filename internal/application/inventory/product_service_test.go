package inventory

import (
	"context"
	"testing"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/inventory"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Product), args.Error(1)
}

func (m *MockProductRepository) FindByNameForTenant(ctx context.Context, tenantID uuid.UUID, name string) (*inventory.Product, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Product, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Product), args.Error(1)
}

func (m *MockProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *inventory.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) ApplyStockDelta(ctx context.Context, tenantID, productID uuid.UUID, delta decimal.Decimal, guardNonNegative bool) error {
	args := m.Called(ctx, tenantID, productID, delta, guardNonNegative)
	return args.Error(0)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func newTestProduct(t *testing.T, tenantID uuid.UUID, stock string) *inventory.Product {
	t.Helper()
	p, err := inventory.NewProduct(tenantID, uuid.New(), "Widget", "w-1",
		decimal.RequireFromString(stock), decimal.NewFromInt(50), decimal.NewFromInt(80), decimal.NewFromInt(18))
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	repo := new(MockProductRepository)
	publisher := new(MockEventPublisher)
	repo.On("Save", ctx, mock.AnythingOfType("*inventory.Product")).Return(nil)
	publisher.On("Publish", ctx, mock.Anything).Return(nil)

	svc := NewProductService(repo, nil)
	svc.SetEventPublisher(publisher)

	resp, err := svc.Create(ctx, tenantID, uuid.New(), CreateProductRequest{
		Name:          "Steel Rod",
		SKU:           "sr-10",
		Unit:          "kg",
		OpeningStock:  decimal.NewFromInt(100),
		PurchasePrice: decimal.NewFromInt(40),
		SellingPrice:  decimal.NewFromInt(55),
		GSTRate:       decimal.NewFromInt(18),
	})
	require.NoError(t, err)
	assert.Equal(t, "SR-10", resp.SKU)
	assert.Equal(t, "kg", resp.Unit)
	assert.True(t, resp.StockValue.Equal(decimal.NewFromInt(4000)))
	assert.Contains(t, resp.StockValueINR, "000.00")
	publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestProductService_Create_Validation(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo, nil)

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), CreateProductRequest{
		Name:         "Rod",
		OpeningStock: decimal.NewFromInt(-1),
	})
	require.Error(t, err)
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_Adjust(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("reduction is guarded", func(t *testing.T) {
		product := newTestProduct(t, tenantID, "10")
		repo := new(MockProductRepository)
		repo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
		repo.On("ApplyStockDelta", ctx, tenantID, product.ID, decimal.NewFromInt(-4), true).Return(nil).Once()
		svc := NewProductService(repo, nil)

		resp, err := svc.Adjust(ctx, tenantID, product.ID, AdjustStockRequest{Quantity: decimal.NewFromInt(-4), Reason: "damaged"})
		require.NoError(t, err)
		assert.True(t, resp.Delta.Equal(decimal.NewFromInt(-4)))
		assert.Equal(t, "damaged", resp.Reason)
		repo.AssertExpectations(t)
	})

	t.Run("addition is unguarded", func(t *testing.T) {
		product := newTestProduct(t, tenantID, "0")
		repo := new(MockProductRepository)
		repo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
		repo.On("ApplyStockDelta", ctx, tenantID, product.ID, decimal.NewFromInt(7), false).Return(nil).Once()
		svc := NewProductService(repo, nil)

		_, err := svc.Adjust(ctx, tenantID, product.ID, AdjustStockRequest{Quantity: decimal.NewFromInt(7), Reason: "count"})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("insufficient stock surfaces", func(t *testing.T) {
		product := newTestProduct(t, tenantID, "2")
		repo := new(MockProductRepository)
		repo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
		repo.On("ApplyStockDelta", ctx, tenantID, product.ID, decimal.NewFromInt(-5), true).Return(shared.ErrInsufficientStock)
		svc := NewProductService(repo, nil)

		_, err := svc.Adjust(ctx, tenantID, product.ID, AdjustStockRequest{Quantity: decimal.NewFromInt(-5), Reason: "loss"})
		require.Error(t, err)
		assert.Equal(t, shared.CodeInsufficientStock, shared.CodeOf(err))
		assert.Contains(t, err.Error(), "available 2")
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		svc := NewProductService(new(MockProductRepository), nil)
		_, err := svc.Adjust(ctx, tenantID, uuid.New(), AdjustStockRequest{Quantity: decimal.Zero, Reason: "x"})
		require.Error(t, err)
	})
}

func TestProductService_List_Defaults(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	repo := new(MockProductRepository)
	outOfStock := true
	repo.On("FindAllForTenant", ctx, tenantID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.OrderBy == "name" && f.Filters["out_of_stock"] == true
	})).Return([]inventory.Product{*newTestProduct(t, tenantID, "0")}, nil)
	repo.On("CountForTenant", ctx, tenantID, mock.Anything).Return(int64(1), nil)
	svc := NewProductService(repo, nil)

	list, total, err := svc.List(ctx, tenantID, ProductListFilter{OutOfStock: &outOfStock})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, int64(1), total)
}
