package trade

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/inventory"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/partner"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPurchaseOrderRepository is a mock implementation of PurchaseOrderRepository
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.PurchaseOrder, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.PurchaseOrder, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseOrderRepository) Create(ctx context.Context, order *trade.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) SaveWithLock(ctx context.Context, order *trade.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

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

// MockBusinessEntityRepository is a mock implementation of BusinessEntityRepository
type MockBusinessEntityRepository struct {
	mock.Mock
}

func (m *MockBusinessEntityRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.BusinessEntity, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.BusinessEntity), args.Error(1)
}

func (m *MockBusinessEntityRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, entityType partner.EntityType, filter shared.Filter) ([]partner.BusinessEntity, error) {
	args := m.Called(ctx, tenantID, entityType, filter)
	return args.Get(0).([]partner.BusinessEntity), args.Error(1)
}

func (m *MockBusinessEntityRepository) Save(ctx context.Context, entity *partner.BusinessEntity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type testEnv struct {
	tenantID  uuid.UUID
	ownerID   uuid.UUID
	orders    *MockPurchaseOrderRepository
	products  *MockProductRepository
	suppliers *MockBusinessEntityRepository
	publisher *MockEventPublisher
	svc       *PurchaseOrderService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		tenantID:  uuid.New(),
		ownerID:   uuid.New(),
		orders:    new(MockPurchaseOrderRepository),
		products:  new(MockProductRepository),
		suppliers: new(MockBusinessEntityRepository),
		publisher: new(MockEventPublisher),
	}
	env.svc = NewPurchaseOrderService(env.orders, env.suppliers, NewNoOpTransactionScope(env.orders, env.products), "27", nil)
	env.svc.SetEventPublisher(env.publisher)
	env.svc.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }
	env.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	return env
}

func (e *testEnv) savedOrder(t *testing.T, productID *uuid.UUID, ordered string) *trade.PurchaseOrder {
	t.Helper()
	order, err := trade.NewPurchaseOrder(e.tenantID, e.ownerID, nil, "27", time.Now(), []trade.ItemInput{{
		ProductID: productID, Description: "Steel Rod", Quantity: decimal.RequireFromString(ordered),
		UnitPrice: decimal.NewFromInt(100), GSTRate: decimal.NewFromInt(18),
	}})
	require.NoError(t, err)
	order.AssignNumber("PO-202406-000001")
	e.orders.On("FindByIDForTenant", mock.Anything, e.tenantID, order.ID).Return(order, nil)
	return order
}

func TestPurchaseOrderService_Create(t *testing.T) {
	env := newTestEnv()
	supplier, err := partner.NewBusinessEntity(env.tenantID, env.ownerID, "Steel Supplies", partner.EntityTypeSupplier, "29", "")
	require.NoError(t, err)
	env.suppliers.On("FindByIDForTenant", mock.Anything, env.tenantID, supplier.ID).Return(supplier, nil)
	env.orders.On("Create", mock.Anything, mock.AnythingOfType("*trade.PurchaseOrder")).Return(nil).Once()

	resp, err := env.svc.Create(context.Background(), env.tenantID, env.ownerID, CreatePurchaseOrderRequest{
		SupplierID:   &supplier.ID,
		ExpectedDate: "2024-06-15",
		Items: []CreatePurchaseOrderItemInput{
			{Description: "Steel Rod", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(100), GSTRate: decimal.NewFromInt(18)},
		},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.OrderNumber, "PO-202406-"))
	assert.Equal(t, "draft", resp.Status)
	assert.Equal(t, "Steel Supplies", resp.SupplierName)
	assert.Equal(t, "2024-06-15", resp.ExpectedDate)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(1180)))
	env.publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestPurchaseOrderService_Create_UnknownSupplier(t *testing.T) {
	env := newTestEnv()
	missing := uuid.New()
	env.suppliers.On("FindByIDForTenant", mock.Anything, env.tenantID, missing).Return(nil, shared.ErrNotFound)

	_, err := env.svc.Create(context.Background(), env.tenantID, env.ownerID, CreatePurchaseOrderRequest{
		SupplierID: &missing,
		Items:      []CreatePurchaseOrderItemInput{{Description: "x", Quantity: decimal.NewFromInt(1)}},
	})
	require.Error(t, err)
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
}

func TestPurchaseOrderService_Create_RetriesDuplicateNumber(t *testing.T) {
	env := newTestEnv()
	var numbers []string
	capture := func(args mock.Arguments) { numbers = append(numbers, args.Get(1).(*trade.PurchaseOrder).OrderNumber) }
	env.orders.On("Create", mock.Anything, mock.Anything).Run(capture).Return(shared.ErrDuplicateNumber).Once()
	env.orders.On("Create", mock.Anything, mock.Anything).Run(capture).Return(nil).Once()

	_, err := env.svc.Create(context.Background(), env.tenantID, env.ownerID, CreatePurchaseOrderRequest{
		Items: []CreatePurchaseOrderItemInput{{Description: "x", Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	require.Len(t, numbers, 2)
	assert.NotEqual(t, numbers[0], numbers[1])
}

func TestPurchaseOrderService_Receive_AppliesOnlyNewQuantity(t *testing.T) {
	env := newTestEnv()
	product, err := inventory.NewProduct(env.tenantID, env.ownerID, "Steel Rod", "", decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	env.products.On("FindByIDForTenant", mock.Anything, env.tenantID, product.ID).Return(product, nil)

	order := env.savedOrder(t, &product.ID, "10")
	itemID := order.Items[0].ID
	env.orders.On("SaveWithLock", mock.Anything, order).Return(nil)
	env.products.On("ApplyStockDelta", mock.Anything, env.tenantID, product.ID, decimal.NewFromInt(4), false).Return(nil).Once()
	env.products.On("ApplyStockDelta", mock.Anything, env.tenantID, product.ID, decimal.NewFromInt(6), false).Return(nil).Once()

	resp, err := env.svc.Receive(context.Background(), env.tenantID, order.ID, ReceivePurchaseOrderRequest{
		Items: []ReceiveItemInput{{ItemID: itemID, ReceivedQuantity: decimal.NewFromInt(4)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "partial", resp.Order.Status)
	require.Len(t, resp.StockAdjustments, 1)
	assert.Equal(t, inventory.OutcomeApplied, resp.StockAdjustments[0].Outcome)

	resp, err = env.svc.Receive(context.Background(), env.tenantID, order.ID, ReceivePurchaseOrderRequest{
		Items: []ReceiveItemInput{{ItemID: itemID, ReceivedQuantity: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "received", resp.Order.Status)
	require.Len(t, resp.Received, 1)
	assert.True(t, resp.Received[0].Delta.Equal(decimal.NewFromInt(6)))
	env.products.AssertExpectations(t)

	_, err = env.svc.Receive(context.Background(), env.tenantID, order.ID, ReceivePurchaseOrderRequest{
		Items: []ReceiveItemInput{{ItemID: itemID, ReceivedQuantity: decimal.NewFromInt(10)}},
	})
	require.Error(t, err)
	assert.Equal(t, shared.CodeInvalidState, shared.CodeOf(err))
	env.products.AssertNumberOfCalls(t, "ApplyStockDelta", 2)
}

func TestPurchaseOrderService_Receive_UnmatchedItemSkipsStock(t *testing.T) {
	env := newTestEnv()
	order := env.savedOrder(t, nil, "5")
	env.orders.On("SaveWithLock", mock.Anything, order).Return(nil)
	env.products.On("FindByNameForTenant", mock.Anything, env.tenantID, "Steel Rod").Return(nil, shared.ErrNotFound)

	resp, err := env.svc.Receive(context.Background(), env.tenantID, order.ID, ReceivePurchaseOrderRequest{
		Items: []ReceiveItemInput{{ItemID: order.Items[0].ID, ReceivedQuantity: decimal.NewFromInt(5)}},
	})
	require.NoError(t, err)
	require.Len(t, resp.StockAdjustments, 1)
	assert.Equal(t, inventory.OutcomeSkippedUnmatched, resp.StockAdjustments[0].Outcome)
	env.products.AssertNotCalled(t, "ApplyStockDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPurchaseOrderService_Receive_ConflictRollsBack(t *testing.T) {
	env := newTestEnv()
	order := env.savedOrder(t, nil, "5")
	env.orders.On("SaveWithLock", mock.Anything, order).Return(shared.ErrConcurrencyConflict)

	_, err := env.svc.Receive(context.Background(), env.tenantID, order.ID, ReceivePurchaseOrderRequest{
		Items: []ReceiveItemInput{{ItemID: order.Items[0].ID, ReceivedQuantity: decimal.NewFromInt(5)}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	env.products.AssertNotCalled(t, "FindByNameForTenant", mock.Anything, mock.Anything, mock.Anything)
}

func TestPurchaseOrderService_Receive_StoreFailure(t *testing.T) {
	env := newTestEnv()
	order := env.savedOrder(t, nil, "5")
	env.orders.On("SaveWithLock", mock.Anything, order).Return(errors.New("connection reset"))

	_, err := env.svc.Receive(context.Background(), env.tenantID, order.ID, ReceivePurchaseOrderRequest{
		Items: []ReceiveItemInput{{ItemID: order.Items[0].ID, ReceivedQuantity: decimal.NewFromInt(1)}},
	})
	require.Error(t, err)
	assert.Equal(t, shared.CodeDependencyFailure, shared.CodeOf(err))
}

func TestPurchaseOrderService_SendAndCancel(t *testing.T) {
	env := newTestEnv()
	order := env.savedOrder(t, nil, "5")
	env.orders.On("SaveWithLock", mock.Anything, order).Return(nil)

	resp, err := env.svc.Send(context.Background(), env.tenantID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "sent", resp.Status)

	resp, err = env.svc.Cancel(context.Background(), env.tenantID, order.ID, CancelPurchaseOrderRequest{Reason: "price changed"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "price changed", resp.CancelReason)

	_, err = env.svc.Cancel(context.Background(), env.tenantID, order.ID, CancelPurchaseOrderRequest{})
	require.Error(t, err)
}

func TestPurchaseOrderService_List(t *testing.T) {
	env := newTestEnv()
	supplierID := uuid.New()
	env.orders.On("FindAllForTenant", mock.Anything, env.tenantID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["status"] == "partial" && f.Filters["supplier_id"] == supplierID && f.OrderBy == "created_at"
	})).Return([]trade.PurchaseOrder{}, nil)
	env.orders.On("CountForTenant", mock.Anything, env.tenantID, mock.Anything).Return(int64(0), nil)

	list, total, err := env.svc.List(context.Background(), env.tenantID, PurchaseOrderListFilter{Status: "partial", SupplierID: &supplierID})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, int64(0), total)
}
