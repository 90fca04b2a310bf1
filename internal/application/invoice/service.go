package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/inventory"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/invoice"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/partner"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/tax"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceService handles invoice creation, payments and status changes
type InvoiceService struct {
	invoiceRepo     invoice.InvoiceRepository
	entityRepo      partner.BusinessEntityRepository
	txScope         TransactionScope
	stockLedger     *inventory.StockLedger
	idempotency     shared.IdempotencyStore
	idempotencyTTL  time.Duration
	eventPublisher  shared.EventPublisher
	businessMetrics *telemetry.BusinessMetrics
	logger          *zap.Logger
	sellerState     string
	now             func() time.Time
}

// NewInvoiceService creates a new InvoiceService. sellerState is the
// company's GST state code used to decide between CGST/SGST and IGST.
func NewInvoiceService(
	invoiceRepo invoice.InvoiceRepository,
	entityRepo partner.BusinessEntityRepository,
	txScope TransactionScope,
	sellerState string,
	logger *zap.Logger,
) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		invoiceRepo:    invoiceRepo,
		entityRepo:     entityRepo,
		txScope:        txScope,
		stockLedger:    inventory.NewStockLedger(),
		idempotencyTTL: shared.DefaultIdempotencyTTL,
		logger:         logger,
		sellerState:    sellerState,
		now:            time.Now,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *InvoiceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetBusinessMetrics sets the business metrics collector
func (s *InvoiceService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// SetIdempotencyStore enables Idempotency-Key handling on Create
func (s *InvoiceService) SetIdempotencyStore(store shared.IdempotencyStore, ttl time.Duration) {
	s.idempotency = store
	if ttl > 0 {
		s.idempotencyTTL = ttl
	}
}

// Preview prices an invoice without saving anything
func (s *InvoiceService) Preview(ctx context.Context, tenantID, ownerID uuid.UUID, req CreateInvoiceRequest) (*PreviewResponse, error) {
	inv, err := s.build(ctx, tenantID, ownerID, req)
	if err != nil {
		return nil, err
	}
	lines := make([]tax.LineInput, len(inv.Items))
	for i, item := range inv.Items {
		lines[i] = tax.LineInput{Quantity: item.Quantity, UnitPrice: item.UnitPrice, GSTRate: item.GSTRate}
	}
	breakdown, err := tax.Compute(lines, inv.Jurisdiction())
	if err != nil {
		return nil, err
	}
	resp := toPreviewResponse(breakdown)
	return &resp, nil
}

// Create validates, numbers and persists an invoice. The invoice row, its
// stock movements and its GST entry are written in one transaction; the
// InvoiceCreated event is published only after commit. Lines that could not
// move stock are reported as warnings and do not fail the invoice.
func (s *InvoiceService) Create(ctx context.Context, tenantID, ownerID uuid.UUID, idempotencyKey string, req CreateInvoiceRequest) (*CreateInvoiceResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "create",
		telemetry.SpanAttrTenantID, tenantID.String(),
		telemetry.SpanAttrInvoiceType, req.InvoiceType,
		telemetry.SpanAttrItemCount, len(req.Items),
	)
	defer span.End()

	resp, err := s.create(ctx, tenantID, ownerID, idempotencyKey, req)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrInvoiceID, resp.Invoice.ID.String(),
		telemetry.SpanAttrAmount, resp.Invoice.TotalAmount.String(),
		telemetry.SpanAttrStockWarnings, len(resp.Warnings),
	)
	telemetry.SetOK(span)
	return resp, nil
}

func (s *InvoiceService) create(ctx context.Context, tenantID, ownerID uuid.UUID, idempotencyKey string, req CreateInvoiceRequest) (*CreateInvoiceResponse, error) {
	release, err := s.reserve(ctx, tenantID, idempotencyKey)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			release()
		}
	}()

	inv, err := s.build(ctx, tenantID, ownerID, req)
	if err != nil {
		return nil, err
	}

	if inv.CustomNumber != "" {
		taken, err := s.invoiceRepo.NumberExists(ctx, tenantID, ownerID, inv.CustomNumber)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, customNumberConflict(inv.CustomNumber)
		}
	}

	number := shared.GenerateDocumentNumber(shared.InvoiceNumberPrefix, s.now())
	inv.AssignNumber(number)

	adjustments, err := s.persist(ctx, inv)
	if errors.Is(err, shared.ErrDuplicateNumber) {
		adjustments, err = s.retryNumber(ctx, inv, number)
	}
	if err != nil {
		return nil, err
	}
	committed = true

	warnings := inventory.Warnings(adjustments)
	for _, w := range warnings {
		s.logger.Warn("stock not updated for invoice line",
			zap.String("tenant_id", tenantID.String()),
			zap.String("invoice_number", inv.DisplayNumber()),
			zap.String("warning", w),
		)
	}

	inv.AddDomainEvent(invoice.NewInvoiceCreatedEvent(inv, warnings))
	for _, a := range adjustments {
		if a.IsWarning() {
			inv.AddDomainEvent(inventory.NewStockSkippedEvent(tenantID, a.ProductID, inv.ID, a.Movement, a.Delta.Abs()))
		}
	}
	s.publish(ctx, inv)

	if s.businessMetrics != nil {
		s.businessMetrics.RecordInvoiceCreated(ctx, tenantID, string(inv.InvoiceType), inv.TotalAmount)
		counts := make(map[inventory.Outcome]int)
		for _, a := range adjustments {
			counts[a.Outcome]++
		}
		s.businessMetrics.RecordStockWarnings(ctx, tenantID, string(inventory.OutcomeSkippedInsufficient), counts[inventory.OutcomeSkippedInsufficient])
		s.businessMetrics.RecordStockWarnings(ctx, tenantID, string(inventory.OutcomeSkippedUnmatched), counts[inventory.OutcomeSkippedUnmatched])
	}

	return &CreateInvoiceResponse{
		Invoice:          ToInvoiceResponse(inv),
		StockAdjustments: adjustments,
		Warnings:         warnings,
	}, nil
}

// retryNumber handles a unique-number violation. A clash on a custom number
// is a conflict; a clash on the system number is retried once with a fresh one.
func (s *InvoiceService) retryNumber(ctx context.Context, inv *invoice.Invoice, previous string) ([]inventory.StockAdjustment, error) {
	if inv.CustomNumber != "" {
		taken, err := s.invoiceRepo.NumberExists(ctx, inv.TenantID, inv.OwnerID, inv.CustomNumber)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, customNumberConflict(inv.CustomNumber)
		}
	}

	now := s.now()
	next := shared.GenerateDocumentNumber(shared.InvoiceNumberPrefix, now)
	if next == previous {
		next = shared.GenerateDocumentNumber(shared.InvoiceNumberPrefix, now.Add(time.Millisecond))
	}
	s.logger.Info("invoice number taken, retrying",
		zap.String("tenant_id", inv.TenantID.String()),
		zap.String("previous", previous),
		zap.String("next", next),
	)
	inv.AssignNumber(next)

	adjustments, err := s.persist(ctx, inv)
	if errors.Is(err, shared.ErrDuplicateNumber) {
		return nil, shared.WrapDomainError(shared.CodeConflict, "Could not allocate a unique invoice number, please retry", err)
	}
	return adjustments, err
}

func (s *InvoiceService) persist(ctx context.Context, inv *invoice.Invoice) ([]inventory.StockAdjustment, error) {
	var adjustments []inventory.StockAdjustment
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		adjustments = nil
		if err := repos.InvoiceRepo().Create(ctx, inv); err != nil {
			return err
		}
		if inv.SyncsInventory() {
			lines := make([]inventory.StockLine, len(inv.Items))
			for i, item := range inv.Items {
				lines[i] = inventory.StockLine{ProductID: item.ProductID, Description: item.Description, Quantity: item.Quantity}
			}
			adjs, err := s.stockLedger.Apply(ctx, repos.ProductRepo(), inv.TenantID, inv.InvoiceType.Movement(), lines)
			if err != nil {
				return err
			}
			adjustments = adjs
		}
		if entry := invoice.NewGSTEntry(inv); entry != nil {
			if err := repos.GSTEntryRepo().Create(ctx, entry); err != nil {
				return fmt.Errorf("create gst entry: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, asDomainError("Failed to save invoice", err)
	}
	return adjustments, nil
}

func (s *InvoiceService) build(ctx context.Context, tenantID, ownerID uuid.UUID, req CreateInvoiceRequest) (*invoice.Invoice, error) {
	var entity *partner.BusinessEntity
	if req.EntityID != nil && *req.EntityID != uuid.Nil {
		e, err := s.entityRepo.FindByIDForTenant(ctx, tenantID, *req.EntityID)
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewValidationError("Business entity not found")
		}
		if err != nil {
			return nil, err
		}
		entity = e
	}

	invoiceDate, err := parseDate(req.InvoiceDate, "invoice_date")
	if err != nil {
		return nil, err
	}
	header := invoice.Header{
		InvoiceType:  invoice.InvoiceType(req.InvoiceType),
		EntityType:   partner.EntityType(req.EntityType),
		CustomNumber: req.CustomNumber,
		ForceIGST:    req.ForceIGST,
		Notes:        req.Notes,
	}
	if invoiceDate != nil {
		header.InvoiceDate = *invoiceDate
	}
	if header.DueDate, err = parseDate(req.DueDate, "due_date"); err != nil {
		return nil, err
	}

	items := make([]invoice.ItemInput, len(req.Items))
	for i, it := range req.Items {
		items[i] = invoice.ItemInput{
			ProductID:   it.ProductID,
			Description: it.Description,
			HSNCode:     it.HSNCode,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			GSTRate:     it.GSTRate,
		}
	}
	return invoice.NewInvoice(tenantID, ownerID, header, items, entity, s.sellerState)
}

// GetByID retrieves an invoice with its items and payments
func (s *InvoiceService) GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(inv)
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, tenantID uuid.UUID, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "invoice_date"
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
	if filter.InvoiceType != "" {
		domainFilter.Filters["invoice_type"] = filter.InvoiceType
	}
	if filter.EntityType != "" {
		domainFilter.Filters["entity_type"] = filter.EntityType
	}
	if filter.PaymentStatus != "" {
		domainFilter.Filters["payment_status"] = filter.PaymentStatus
	}
	if filter.EntityID != nil {
		domainFilter.Filters["entity_id"] = *filter.EntityID
	}
	var err error
	if domainFilter.DateFrom, err = parseDate(filter.DateFrom, "from"); err != nil {
		return nil, 0, err
	}
	if domainFilter.DateTo, err = parseDate(filter.DateTo, "to"); err != nil {
		return nil, 0, err
	}

	invoices, err := s.invoiceRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.invoiceRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToInvoiceResponses(invoices), total, nil
}

// ListPayments returns the payments of an invoice in date order
func (s *InvoiceService) ListPayments(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]PaymentResponse, error) {
	if _, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID); err != nil {
		return nil, err
	}
	payments, err := s.invoiceRepo.FindPaymentsForInvoice(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponses(payments), nil
}

// RecordPayment appends a payment and moves the invoice to partial or paid.
// The invoice update is version checked, so two concurrent payments cannot
// both be counted against the same snapshot.
func (s *InvoiceService) RecordPayment(ctx context.Context, tenantID, invoiceID uuid.UUID, req RecordPaymentRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.IsVoid() {
		return nil, shared.NewDomainError(shared.CodeVoidTransaction, "Payments cannot be recorded against a return invoice")
	}
	paidOn, err := parseDate(req.PaymentDate, "payment_date")
	if err != nil {
		return nil, err
	}
	if paidOn == nil {
		today := s.now()
		paidOn = &today
	}

	wasPaid := inv.PaymentStatus == invoice.PaymentStatusPaid
	payment, err := inv.RecordPayment(req.Amount, *paidOn, req.Method, req.Reference)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.InvoiceRepo().SaveWithLock(ctx, inv); err != nil {
			return err
		}
		if err := repos.InvoiceRepo().AddPayment(ctx, payment); err != nil {
			return fmt.Errorf("add payment: %w", err)
		}
		if !wasPaid && inv.PaymentStatus == invoice.PaymentStatusPaid {
			return repos.GSTEntryRepo().MarkPaid(ctx, tenantID, inv.ID, *inv.PaidAt)
		}
		return nil
	})
	if err != nil {
		if s.businessMetrics != nil {
			s.businessMetrics.RecordPayment(ctx, tenantID, payment.Method, telemetry.PaymentStatusFailed)
		}
		return nil, asDomainError("Failed to record payment", err)
	}

	if s.businessMetrics != nil {
		status := telemetry.PaymentStatusPartial
		if inv.PaymentStatus == invoice.PaymentStatusPaid {
			status = telemetry.PaymentStatusPaid
		}
		s.businessMetrics.RecordPayment(ctx, tenantID, payment.Method, status)
	}
	s.publish(ctx, inv)

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// UpdatePaymentStatus applies a manual status change. A paid invoice can not
// be moved back; marking paid also stamps the linked GST entry.
func (s *InvoiceService) UpdatePaymentStatus(ctx context.Context, tenantID, invoiceID uuid.UUID, req UpdatePaymentStatusRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	target := invoice.PaymentStatus(req.Status)
	if inv.PaymentStatus == target {
		response := ToInvoiceResponse(inv)
		return &response, nil
	}
	if err := inv.UpdatePaymentStatus(target, s.now()); err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.InvoiceRepo().SaveWithLock(ctx, inv); err != nil {
			return err
		}
		if target == invoice.PaymentStatusPaid && !inv.IsVoid() {
			return repos.GSTEntryRepo().MarkPaid(ctx, tenantID, inv.ID, *inv.PaidAt)
		}
		return nil
	})
	if err != nil {
		return nil, asDomainError("Failed to update payment status", err)
	}
	s.publish(ctx, inv)

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// MarkOverdue flags unpaid invoices whose due date is before asOf. An invoice
// changed concurrently is skipped and picked up by the next run.
func (s *InvoiceService) MarkOverdue(ctx context.Context, tenantID uuid.UUID, req MarkOverdueRequest) (*MarkOverdueResponse, error) {
	asOf, err := parseDate(req.AsOf, "as_of")
	if err != nil {
		return nil, err
	}
	if asOf == nil {
		today := s.now()
		asOf = &today
	}

	candidates, err := s.invoiceRepo.FindOverdueCandidates(ctx, tenantID, *asOf)
	if err != nil {
		return nil, err
	}

	resp := &MarkOverdueResponse{InvoiceIDs: []uuid.UUID{}}
	for i := range candidates {
		inv := &candidates[i]
		if !inv.MarkOverdueIfPast(*asOf) {
			continue
		}
		if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
			if errors.Is(err, shared.ErrConcurrencyConflict) {
				s.logger.Info("invoice changed while marking overdue, skipping",
					zap.String("invoice_id", inv.ID.String()))
				continue
			}
			return nil, err
		}
		s.publish(ctx, inv)
		resp.InvoiceIDs = append(resp.InvoiceIDs, inv.ID)
	}
	resp.Updated = len(resp.InvoiceIDs)
	return resp, nil
}

func (s *InvoiceService) publish(ctx context.Context, inv *invoice.Invoice) {
	events := inv.GetDomainEvents()
	inv.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish invoice events",
			zap.String("invoice_id", inv.ID.String()),
			zap.Error(err),
		)
	}
}

// reserve claims the idempotency key and returns the function that frees it
// again when the request does not complete.
func (s *InvoiceService) reserve(ctx context.Context, tenantID uuid.UUID, key string) (func(), error) {
	if key == "" || s.idempotency == nil {
		return func() {}, nil
	}
	scoped := "invoice:" + tenantID.String() + ":" + key
	ok, err := s.idempotency.Reserve(ctx, scoped, s.idempotencyTTL)
	if err != nil {
		return nil, shared.WrapDomainError(shared.CodeDependencyFailure, "Idempotency store unavailable", err)
	}
	if !ok {
		return nil, shared.NewDomainError(shared.CodeIdempotencyConflict, "A request with this Idempotency-Key was already processed")
	}
	return func() {
		if err := s.idempotency.Release(ctx, scoped); err != nil {
			s.logger.Warn("failed to release idempotency key", zap.String("key", scoped), zap.Error(err))
		}
	}, nil
}

func customNumberConflict(number string) error {
	return shared.NewDomainError(shared.CodeConflict, fmt.Sprintf("Invoice number %s is already in use", number))
}

// asDomainError leaves domain errors untouched and wraps store failures
func asDomainError(message string, err error) error {
	if shared.CodeOf(err) != "" {
		return err
	}
	return shared.WrapDomainError(shared.CodeDependencyFailure, message, err)
}

func parseDate(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, value, time.Local)
	if err != nil {
		return nil, shared.NewValidationError(fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field))
	}
	return &t, nil
}
