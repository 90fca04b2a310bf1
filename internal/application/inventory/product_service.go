package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/inventory"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService handles product and manual stock operations
type ProductService struct {
	productRepo    inventory.ProductRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo inventory.ProductRepository, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create registers a product with its opening stock
func (s *ProductService) Create(ctx context.Context, tenantID, ownerID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	product, err := inventory.NewProduct(tenantID, ownerID, req.Name, req.SKU,
		req.OpeningStock, req.PurchasePrice, req.SellingPrice, req.GSTRate)
	if err != nil {
		return nil, err
	}
	product.HSNCode = strings.TrimSpace(req.HSNCode)
	if unit := strings.TrimSpace(req.Unit); unit != "" {
		product.Unit = unit
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, product.GetDomainEvents()...)
	product.ClearDomainEvents()

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.OutOfStock != nil {
		domainFilter.Filters["out_of_stock"] = *filter.OutOfStock
	}

	products, err := s.productRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// Adjust applies a signed manual correction. A reduction below zero is
// refused with an insufficient-stock error and leaves stock unchanged.
func (s *ProductService) Adjust(ctx context.Context, tenantID, productID uuid.UUID, req AdjustStockRequest) (*StockAdjustmentResponse, error) {
	if req.Quantity.IsZero() {
		return nil, shared.NewValidationError("Adjustment quantity cannot be zero")
	}
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	delta := inventory.MovementAdjustment.Delta(req.Quantity)
	err = s.productRepo.ApplyStockDelta(ctx, tenantID, productID, delta, delta.IsNegative())
	if errors.Is(err, shared.ErrInsufficientStock) {
		return nil, shared.WrapDomainError(shared.CodeInsufficientStock,
			fmt.Sprintf("Insufficient stock for %s: available %s, requested %s",
				product.Name, product.CurrentStock.String(), delta.Abs().String()), err)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("manual stock adjustment applied",
		zap.String("tenant_id", tenantID.String()),
		zap.String("product_id", productID.String()),
		zap.String("delta", delta.String()),
		zap.String("reason", req.Reason),
	)

	updated, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	return &StockAdjustmentResponse{
		Product:  ToProductResponse(updated),
		Delta:    delta,
		Reason:   strings.TrimSpace(req.Reason),
		Adjusted: time.Now(),
	}, nil
}

func (s *ProductService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish product events", zap.Error(err))
	}
}
