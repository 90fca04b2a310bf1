package trade

import (
	"testing"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/partner"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Test helpers for PurchaseOrder
func createTestPurchaseOrder(t *testing.T, quantities ...string) *PurchaseOrder {
	t.Helper()
	tenantID := uuid.New()
	supplier, err := partner.NewBusinessEntity(tenantID, uuid.New(), "Steel Supplies", partner.EntityTypeSupplier, "29", "")
	require.NoError(t, err)

	items := make([]ItemInput, len(quantities))
	for i, q := range quantities {
		productID := uuid.New()
		items[i] = ItemInput{ProductID: &productID, Description: "Item", Quantity: dec(q), UnitPrice: dec("100"), GSTRate: dec("18")}
	}
	order, err := NewPurchaseOrder(tenantID, uuid.New(), supplier, "27", time.Now(), items)
	require.NoError(t, err)
	order.AssignNumber("PO-202404-000001")
	return order
}

// ============================================
// PurchaseOrderStatus Tests
// ============================================

func TestPurchaseOrderStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  PurchaseOrderStatus
		isValid bool
	}{
		{PurchaseOrderStatusDraft, true},
		{PurchaseOrderStatusSent, true},
		{PurchaseOrderStatusPartial, true},
		{PurchaseOrderStatusReceived, true},
		{PurchaseOrderStatusCancelled, true},
		{PurchaseOrderStatus("confirmed"), false},
		{PurchaseOrderStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestPurchaseOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    PurchaseOrderStatus
		to      PurchaseOrderStatus
		allowed bool
	}{
		{PurchaseOrderStatusDraft, PurchaseOrderStatusSent, true},
		{PurchaseOrderStatusDraft, PurchaseOrderStatusCancelled, true},
		{PurchaseOrderStatusSent, PurchaseOrderStatusPartial, true},
		{PurchaseOrderStatusSent, PurchaseOrderStatusDraft, false},
		{PurchaseOrderStatusPartial, PurchaseOrderStatusReceived, true},
		{PurchaseOrderStatusPartial, PurchaseOrderStatusSent, false},
		{PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled, false},
		{PurchaseOrderStatusReceived, PurchaseOrderStatusPartial, false},
		{PurchaseOrderStatusCancelled, PurchaseOrderStatusSent, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNewPurchaseOrder(t *testing.T) {
	t.Run("computes totals with IGST for another state", func(t *testing.T) {
		order := createTestPurchaseOrder(t, "10")

		assert.Equal(t, PurchaseOrderStatusDraft, order.Status)
		assert.True(t, order.Subtotal.Equal(dec("1000")))
		assert.True(t, order.TaxAmount.Equal(dec("180")))
		assert.True(t, order.TotalAmount.Equal(dec("1180")))
		require.Len(t, order.Items, 1)
		assert.True(t, order.Items[0].ReceivedQuantity.IsZero())
		assert.Equal(t, order.ID, order.Items[0].OrderID)
	})

	t.Run("drops blank rows", func(t *testing.T) {
		order, err := NewPurchaseOrder(uuid.New(), uuid.New(), nil, "27", time.Time{}, []ItemInput{
			{Description: "  ", Quantity: dec("1"), UnitPrice: dec("1")},
			{Description: "Bolts", Quantity: dec("5"), UnitPrice: dec("2"), GSTRate: dec("5")},
		})
		require.NoError(t, err)
		require.Len(t, order.Items, 1)
		assert.Equal(t, "Bolts", order.Items[0].Description)
		assert.False(t, order.OrderDate.IsZero())
	})

	t.Run("rejects no items", func(t *testing.T) {
		_, err := NewPurchaseOrder(uuid.New(), uuid.New(), nil, "27", time.Now(), nil)
		require.Error(t, err)
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewPurchaseOrder(uuid.New(), uuid.New(), nil, "27", time.Now(), []ItemInput{
			{Description: "Bolts", Quantity: dec("0"), UnitPrice: dec("2")},
		})
		require.Error(t, err)
	})

	t.Run("rejects supplier from another tenant", func(t *testing.T) {
		supplier, err := partner.NewBusinessEntity(uuid.New(), uuid.New(), "Other", partner.EntityTypeSupplier, "27", "")
		require.NoError(t, err)
		_, err = NewPurchaseOrder(uuid.New(), uuid.New(), supplier, "27", time.Now(), []ItemInput{
			{Description: "Bolts", Quantity: dec("1"), UnitPrice: dec("2")},
		})
		require.Error(t, err)
	})
}

func TestPurchaseOrder_Send(t *testing.T) {
	order := createTestPurchaseOrder(t, "10")
	v := order.Version

	require.NoError(t, order.Send())
	assert.Equal(t, PurchaseOrderStatusSent, order.Status)
	assert.NotNil(t, order.SentAt)
	assert.Equal(t, v+1, order.Version)

	err := order.Send()
	require.Error(t, err)
	assert.Equal(t, shared.CodeInvalidState, shared.CodeOf(err))
}

func TestPurchaseOrder_Receive_OnlyNewDeltaCounts(t *testing.T) {
	order := createTestPurchaseOrder(t, "10")
	require.NoError(t, order.Send())
	itemID := order.Items[0].ID

	deltas, err := order.Receive([]ReceiveLine{{ItemID: itemID, ReceivedQuantity: dec("4")}})
	require.NoError(t, err)
	require.Len(t, deltas, 1)
	assert.True(t, deltas[0].Delta.Equal(dec("4")))
	assert.Equal(t, PurchaseOrderStatusPartial, order.Status)

	deltas, err = order.Receive([]ReceiveLine{{ItemID: itemID, ReceivedQuantity: dec("10")}})
	require.NoError(t, err)
	require.Len(t, deltas, 1)
	assert.True(t, deltas[0].Previous.Equal(dec("4")))
	assert.True(t, deltas[0].Delta.Equal(dec("6")))
	assert.Equal(t, PurchaseOrderStatusReceived, order.Status)
	assert.NotNil(t, order.ReceivedAt)
	assert.True(t, order.Items[0].ReceivedQuantity.Equal(dec("10")))

	_, err = order.Receive([]ReceiveLine{{ItemID: itemID, ReceivedQuantity: dec("10")}})
	require.Error(t, err)
	assert.Equal(t, shared.CodeInvalidState, shared.CodeOf(err))
}

func TestPurchaseOrder_Receive_Clamps(t *testing.T) {
	t.Run("above ordered quantity", func(t *testing.T) {
		order := createTestPurchaseOrder(t, "10")
		deltas, err := order.Receive([]ReceiveLine{{ItemID: order.Items[0].ID, ReceivedQuantity: dec("15")}})
		require.NoError(t, err)
		require.Len(t, deltas, 1)
		assert.True(t, deltas[0].Delta.Equal(dec("10")))
		assert.True(t, deltas[0].Clamped)
		assert.True(t, order.Items[0].ReceivedQuantity.Equal(dec("10")))
		assert.Equal(t, PurchaseOrderStatusReceived, order.Status)
	})

	t.Run("below previously received", func(t *testing.T) {
		order := createTestPurchaseOrder(t, "10")
		itemID := order.Items[0].ID
		_, err := order.Receive([]ReceiveLine{{ItemID: itemID, ReceivedQuantity: dec("6")}})
		require.NoError(t, err)

		deltas, err := order.Receive([]ReceiveLine{{ItemID: itemID, ReceivedQuantity: dec("2")}})
		require.NoError(t, err)
		require.Len(t, deltas, 1)
		assert.True(t, deltas[0].Delta.IsZero())
		assert.True(t, deltas[0].Clamped)
		assert.Empty(t, StockDeltas(deltas))
		assert.True(t, order.Items[0].ReceivedQuantity.Equal(dec("6")))
		assert.Equal(t, PurchaseOrderStatusPartial, order.Status)
	})
}

func TestPurchaseOrder_Receive_MultipleItems(t *testing.T) {
	order := createTestPurchaseOrder(t, "5", "3")
	first, second := order.Items[0].ID, order.Items[1].ID

	_, err := order.Receive([]ReceiveLine{{ItemID: first, ReceivedQuantity: dec("5")}})
	require.NoError(t, err)
	assert.Equal(t, PurchaseOrderStatusPartial, order.Status)

	deltas, err := order.Receive([]ReceiveLine{
		{ItemID: first, ReceivedQuantity: dec("5")},
		{ItemID: second, ReceivedQuantity: dec("3")},
	})
	require.NoError(t, err)
	require.Len(t, deltas, 1)
	assert.Equal(t, second, deltas[0].ItemID)
	assert.Equal(t, PurchaseOrderStatusReceived, order.Status)
	assert.True(t, order.TotalReceived().Equal(order.TotalOrdered()))
}

func TestPurchaseOrder_Receive_Validation(t *testing.T) {
	order := createTestPurchaseOrder(t, "10")

	_, err := order.Receive(nil)
	require.Error(t, err)

	_, err = order.Receive([]ReceiveLine{{ItemID: uuid.New(), ReceivedQuantity: dec("1")}})
	require.Error(t, err)

	_, err = order.Receive([]ReceiveLine{{ItemID: order.Items[0].ID, ReceivedQuantity: dec("-1")}})
	require.Error(t, err)
	assert.True(t, order.Items[0].ReceivedQuantity.IsZero())
	assert.Equal(t, PurchaseOrderStatusDraft, order.Status)
}

func TestPurchaseOrder_Receive_RaisesEvent(t *testing.T) {
	order := createTestPurchaseOrder(t, "10")
	_, err := order.Receive([]ReceiveLine{{ItemID: order.Items[0].ID, ReceivedQuantity: dec("4")}})
	require.NoError(t, err)

	events := order.GetDomainEvents()
	require.Len(t, events, 1)
	evt, ok := events[0].(*PurchaseOrderReceivedEvent)
	require.True(t, ok)
	assert.Equal(t, EventTypePurchaseOrderReceived, evt.EventType())
	assert.Equal(t, PurchaseOrderStatusPartial, evt.Status)
	require.Len(t, evt.Items, 1)
	assert.True(t, evt.Items[0].Delta.Equal(dec("4")))
}

func TestPurchaseOrder_Cancel(t *testing.T) {
	order := createTestPurchaseOrder(t, "10")
	_, err := order.Receive([]ReceiveLine{{ItemID: order.Items[0].ID, ReceivedQuantity: dec("4")}})
	require.NoError(t, err)

	require.NoError(t, order.Cancel(" supplier closed "))
	assert.Equal(t, PurchaseOrderStatusCancelled, order.Status)
	assert.Equal(t, "supplier closed", order.CancelReason)
	assert.NotNil(t, order.CancelledAt)

	_, err = order.Receive([]ReceiveLine{{ItemID: order.Items[0].ID, ReceivedQuantity: dec("10")}})
	require.Error(t, err)
	assert.Error(t, order.Cancel("again"))
}
