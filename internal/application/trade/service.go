package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/inventory"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/partner"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/trade"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// PurchaseOrderService handles purchase order business operations
type PurchaseOrderService struct {
	orderRepo       trade.PurchaseOrderRepository
	supplierRepo    partner.BusinessEntityRepository
	txScope         TransactionScope
	stockLedger     *inventory.StockLedger
	eventPublisher  shared.EventPublisher
	businessMetrics *telemetry.BusinessMetrics
	logger          *zap.Logger
	sellerState     string
	now             func() time.Time
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	orderRepo trade.PurchaseOrderRepository,
	supplierRepo partner.BusinessEntityRepository,
	txScope TransactionScope,
	sellerState string,
	logger *zap.Logger,
) *PurchaseOrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseOrderService{
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		txScope:      txScope,
		stockLedger:  inventory.NewStockLedger(),
		logger:       logger,
		sellerState:  sellerState,
		now:          time.Now,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetBusinessMetrics sets the business metrics collector
func (s *PurchaseOrderService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Create creates a new draft purchase order
func (s *PurchaseOrderService) Create(ctx context.Context, tenantID, ownerID uuid.UUID, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	var supplier *partner.BusinessEntity
	if req.SupplierID != nil && *req.SupplierID != uuid.Nil {
		e, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, *req.SupplierID)
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewValidationError("Supplier not found")
		}
		if err != nil {
			return nil, err
		}
		supplier = e
	}

	orderDate, err := parseDate(req.OrderDate, "order_date")
	if err != nil {
		return nil, err
	}
	expected, err := parseDate(req.ExpectedDate, "expected_date")
	if err != nil {
		return nil, err
	}

	items := make([]trade.ItemInput, len(req.Items))
	for i, it := range req.Items {
		items[i] = trade.ItemInput{
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			GSTRate:     it.GSTRate,
		}
	}
	var date time.Time
	if orderDate != nil {
		date = *orderDate
	}
	order, err := trade.NewPurchaseOrder(tenantID, ownerID, supplier, s.sellerState, date, items)
	if err != nil {
		return nil, err
	}
	order.ExpectedDate = expected
	order.Notes = req.Notes

	number := shared.GenerateDocumentNumber(shared.PurchaseOrderNumberPrefix, s.now())
	order.AssignNumber(number)
	err = s.orderRepo.Create(ctx, order)
	if errors.Is(err, shared.ErrDuplicateNumber) {
		next := shared.GenerateDocumentNumber(shared.PurchaseOrderNumberPrefix, s.now())
		if next == number {
			next = shared.GenerateDocumentNumber(shared.PurchaseOrderNumberPrefix, s.now().Add(time.Millisecond))
		}
		order.AssignNumber(next)
		err = s.orderRepo.Create(ctx, order)
		if errors.Is(err, shared.ErrDuplicateNumber) {
			return nil, shared.WrapDomainError(shared.CodeConflict, "Could not allocate a unique order number, please retry", err)
		}
	}
	if err != nil {
		return nil, err
	}

	order.AddDomainEvent(trade.NewPurchaseOrderCreatedEvent(order))
	s.publish(ctx, order)

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// List retrieves a list of purchase orders with filtering and pagination
func (s *PurchaseOrderService) List(ctx context.Context, tenantID uuid.UUID, filter PurchaseOrderListFilter) ([]PurchaseOrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	orders, err := s.orderRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToPurchaseOrderResponses(orders), total, nil
}

// Send marks a draft order as sent to the supplier
func (s *PurchaseOrderService) Send(ctx context.Context, tenantID, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.Send(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Receive records new cumulative received quantities. The order update and
// the stock increase of every newly received quantity commit together, so a
// repeated receipt of the same cumulative quantity adds no stock.
func (s *PurchaseOrderService) Receive(ctx context.Context, tenantID, orderID uuid.UUID, req ReceivePurchaseOrderRequest) (*ReceivePurchaseOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase_order", "receive",
		telemetry.SpanAttrTenantID, tenantID.String(),
		telemetry.SpanAttrOrderID, orderID.String(),
		telemetry.SpanAttrItemCount, len(req.Items),
	)
	defer span.End()

	resp, err := s.receive(ctx, tenantID, orderID, req)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetOK(span)
	return resp, nil
}

func (s *PurchaseOrderService) receive(ctx context.Context, tenantID, orderID uuid.UUID, req ReceivePurchaseOrderRequest) (*ReceivePurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	lines := make([]trade.ReceiveLine, len(req.Items))
	for i, it := range req.Items {
		lines[i] = trade.ReceiveLine{ItemID: it.ItemID, ReceivedQuantity: it.ReceivedQuantity}
	}
	deltas, err := order.Receive(lines)
	if err != nil {
		return nil, err
	}

	stockDeltas := trade.StockDeltas(deltas)
	stockLines := make([]inventory.StockLine, len(stockDeltas))
	for i, d := range stockDeltas {
		stockLines[i] = inventory.StockLine{ProductID: d.ProductID, Description: d.Description, Quantity: d.Delta}
	}

	var adjustments []inventory.StockAdjustment
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.PurchaseOrderRepo().SaveWithLock(ctx, order); err != nil {
			return err
		}
		if len(stockLines) == 0 {
			return nil
		}
		adjs, err := s.stockLedger.Apply(ctx, repos.ProductRepo(), tenantID, inventory.MovementReceipt, stockLines)
		if err != nil {
			return err
		}
		adjustments = adjs
		return nil
	})
	if err != nil {
		if shared.CodeOf(err) == "" {
			err = shared.WrapDomainError(shared.CodeDependencyFailure, "Failed to record receipt", err)
		}
		return nil, err
	}

	for _, d := range deltas {
		if d.Clamped {
			s.logger.Info("received quantity clamped",
				zap.String("order_number", order.OrderNumber),
				zap.String("item_id", d.ItemID.String()),
				zap.String("current", d.Current.String()),
			)
		}
	}
	if s.businessMetrics != nil {
		s.businessMetrics.RecordReceipt(ctx, tenantID, string(order.Status))
	}
	s.publish(ctx, order)

	return &ReceivePurchaseOrderResponse{
		Order:            ToPurchaseOrderResponse(order),
		Received:         toReceivedDeltaResponses(deltas),
		StockAdjustments: adjustments,
	}, nil
}

// Cancel cancels an order that is not yet fully received
func (s *PurchaseOrderService) Cancel(ctx context.Context, tenantID, orderID uuid.UUID, req CancelPurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.Cancel(req.Reason); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	s.publish(ctx, order)
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

func (s *PurchaseOrderService) publish(ctx context.Context, order *trade.PurchaseOrder) {
	events := order.GetDomainEvents()
	order.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish purchase order events",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}
}

func parseDate(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return nil, shared.NewValidationError(fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field))
	}
	return &t, nil
}
