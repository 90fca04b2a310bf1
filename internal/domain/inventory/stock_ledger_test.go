package inventory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryProducts is a ProductRepository whose ApplyStockDelta has the same
// conditional semantics as the SQL implementation
type memoryProducts struct {
	mu       sync.Mutex
	products map[uuid.UUID]*Product
	failWith error
}

func newMemoryProducts(products ...*Product) *memoryProducts {
	m := &memoryProducts{products: map[uuid.UUID]*Product{}}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *memoryProducts) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	p, ok := m.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memoryProducts) FindByNameForTenant(_ context.Context, tenantID uuid.UUID, name string) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, p := range m.products {
		if p.TenantID == tenantID && p.MatchesName(name) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memoryProducts) FindAllForTenant(context.Context, uuid.UUID, shared.Filter) ([]Product, error) {
	return nil, nil
}

func (m *memoryProducts) CountForTenant(context.Context, uuid.UUID, shared.Filter) (int64, error) {
	return int64(len(m.products)), nil
}

func (m *memoryProducts) Save(_ context.Context, p *Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
	return nil
}

func (m *memoryProducts) ApplyStockDelta(_ context.Context, tenantID, productID uuid.UUID, delta decimal.Decimal, guard bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[productID]
	if !ok || p.TenantID != tenantID {
		return shared.ErrNotFound
	}
	next := p.CurrentStock.Add(delta)
	if guard && next.IsNegative() {
		return shared.ErrInsufficientStock
	}
	p.CurrentStock = next
	return nil
}

func (m *memoryProducts) stock(id uuid.UUID) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[id].CurrentStock
}

func TestStockLedger_SaleWithinStock(t *testing.T) {
	p := createTestProduct(t, "Steel Rod", 10)
	repo := newMemoryProducts(p)

	adj, err := NewStockLedger().Apply(context.Background(), repo, p.TenantID, MovementSale,
		[]StockLine{{ProductID: &p.ID, Description: "Steel Rod", Quantity: decimal.NewFromInt(4)}})
	require.NoError(t, err)
	require.Len(t, adj, 1)
	assert.Equal(t, OutcomeApplied, adj[0].Outcome)
	assert.True(t, repo.stock(p.ID).Equal(decimal.NewFromInt(6)))
}

func TestStockLedger_InsufficientStockIsSkippedWithWarning(t *testing.T) {
	p := createTestProduct(t, "Steel Rod", 5)
	repo := newMemoryProducts(p)

	adj, err := NewStockLedger().Apply(context.Background(), repo, p.TenantID, MovementSale,
		[]StockLine{{Description: "steel rod", Quantity: decimal.NewFromInt(7)}})
	require.NoError(t, err)
	require.Len(t, adj, 1)
	assert.Equal(t, OutcomeSkippedInsufficient, adj[0].Outcome)
	assert.True(t, adj[0].IsWarning())
	assert.True(t, repo.stock(p.ID).Equal(decimal.NewFromInt(5)))

	warnings := Warnings(adj)
	require.Len(t, warnings, 1)
	assert.True(t, strings.Contains(warnings[0], "Steel Rod"))
}

func TestStockLedger_UnmatchedLinesAreFreeText(t *testing.T) {
	p := createTestProduct(t, "Steel Rod", 5)
	repo := newMemoryProducts(p)
	missing := uuid.New()

	adj, err := NewStockLedger().Apply(context.Background(), repo, p.TenantID, MovementPurchase, []StockLine{
		{Description: "Freight charges", Quantity: decimal.NewFromInt(1)},
		{ProductID: &missing, Description: "", Quantity: decimal.NewFromInt(1)},
		{Description: "Steel Rod", Quantity: decimal.NewFromInt(3)},
	})
	require.NoError(t, err)
	require.Len(t, adj, 3)
	assert.Equal(t, OutcomeSkippedUnmatched, adj[0].Outcome)
	assert.Equal(t, OutcomeSkippedUnmatched, adj[1].Outcome)
	assert.Equal(t, OutcomeApplied, adj[2].Outcome)
	assert.True(t, repo.stock(p.ID).Equal(decimal.NewFromInt(8)))
	assert.Empty(t, Warnings(adj))
}

func TestStockLedger_TenantScopedResolution(t *testing.T) {
	p := createTestProduct(t, "Steel Rod", 5)
	repo := newMemoryProducts(p)

	adj, err := NewStockLedger().Apply(context.Background(), repo, uuid.New(), MovementSale,
		[]StockLine{{ProductID: &p.ID, Description: "Steel Rod", Quantity: decimal.NewFromInt(1)}})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkippedUnmatched, adj[0].Outcome)
	assert.True(t, repo.stock(p.ID).Equal(decimal.NewFromInt(5)))
}

func TestStockLedger_ReturnsReverseOriginalMovement(t *testing.T) {
	p := createTestProduct(t, "Steel Rod", 5)
	repo := newMemoryProducts(p)
	ledger := NewStockLedger()
	line := []StockLine{{ProductID: &p.ID, Quantity: decimal.NewFromInt(2)}}

	_, err := ledger.Apply(context.Background(), repo, p.TenantID, MovementSaleReturn, line)
	require.NoError(t, err)
	assert.True(t, repo.stock(p.ID).Equal(decimal.NewFromInt(7)))

	_, err = ledger.Apply(context.Background(), repo, p.TenantID, MovementPurchaseReturn, line)
	require.NoError(t, err)
	assert.True(t, repo.stock(p.ID).Equal(decimal.NewFromInt(5)))
}

func TestStockLedger_StoreFailureIsReturned(t *testing.T) {
	p := createTestProduct(t, "Steel Rod", 5)
	repo := newMemoryProducts(p)
	repo.failWith = errors.New("connection reset")

	_, err := NewStockLedger().Apply(context.Background(), repo, p.TenantID, MovementSale,
		[]StockLine{{ProductID: &p.ID, Quantity: decimal.NewFromInt(1)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestStockLedger_ConcurrentSalesNeverGoNegative(t *testing.T) {
	p := createTestProduct(t, "Steel Rod", 50)
	repo := newMemoryProducts(p)
	ledger := NewStockLedger()

	var wg sync.WaitGroup
	var mu sync.Mutex
	applied := 0
	for i := 0; i < 80; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			adj, err := ledger.Apply(context.Background(), repo, p.TenantID, MovementSale,
				[]StockLine{{ProductID: &p.ID, Quantity: decimal.NewFromInt(1)}})
			if err == nil && adj[0].Outcome == OutcomeApplied {
				mu.Lock()
				applied++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, applied)
	assert.True(t, repo.stock(p.ID).IsZero())
}

func TestStockLedger_UnknownMovement(t *testing.T) {
	_, err := NewStockLedger().Apply(context.Background(), newMemoryProducts(), uuid.New(), Movement("gift"), nil)
	require.Error(t, err)
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
}
