package invoice

import (
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/inventory"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/invoice"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared/valueobject"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/tax"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format accepted in requests
const DateLayout = "2006-01-02"

// ==================== Invoice DTOs ====================

// CreateInvoiceRequest represents a request to create an invoice
type CreateInvoiceRequest struct {
	InvoiceType  string             `json:"invoice_type" binding:"required,oneof=sales purchase sale_return purchase_return"`
	EntityType   string             `json:"entity_type" binding:"required,oneof=customer supplier wholesaler transport labour other"`
	EntityID     *uuid.UUID         `json:"entity_id"`
	CustomNumber string             `json:"custom_invoice_number" binding:"omitempty,max=50"`
	InvoiceDate  string             `json:"invoice_date" binding:"omitempty,datetime=2006-01-02"`
	DueDate      string             `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	ForceIGST    bool               `json:"force_igst"`
	Notes        string             `json:"notes" binding:"omitempty,max=1000"`
	Items        []InvoiceItemInput `json:"items" binding:"required,min=1,dive"`
}

// InvoiceItemInput represents one line in the create invoice request
type InvoiceItemInput struct {
	ProductID   *uuid.UUID      `json:"product_id"`
	Description string          `json:"description" binding:"max=500"`
	HSNCode     string          `json:"hsn_code" binding:"omitempty,max=20"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
}

// RecordPaymentRequest represents a payment against an invoice
type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,decimal_gt0"`
	PaymentDate string          `json:"payment_date" binding:"omitempty,datetime=2006-01-02"`
	Method      string          `json:"payment_method" binding:"omitempty,max=50"`
	Reference   string          `json:"reference" binding:"omitempty,max=100"`
}

// UpdatePaymentStatusRequest represents a manual status override
type UpdatePaymentStatusRequest struct {
	Status string `json:"payment_status" binding:"required,oneof=due partial paid overdue"`
}

// MarkOverdueRequest flags invoices past their due date
type MarkOverdueRequest struct {
	AsOf string `json:"as_of" binding:"omitempty,datetime=2006-01-02"`
}

// InvoiceListFilter represents filter options for the invoice list
type InvoiceListFilter struct {
	Search        string     `form:"search"`
	InvoiceType   string     `form:"invoice_type" binding:"omitempty,oneof=sales purchase sale_return purchase_return"`
	EntityType    string     `form:"entity_type" binding:"omitempty,oneof=customer supplier wholesaler transport labour other"`
	PaymentStatus string     `form:"payment_status" binding:"omitempty,oneof=due partial paid overdue"`
	EntityID      *uuid.UUID `form:"entity_id"`
	DateFrom      string     `form:"from" binding:"omitempty,datetime=2006-01-02"`
	DateTo        string     `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// InvoiceItemResponse represents an invoice line in API responses
type InvoiceItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	Description string          `json:"description"`
	HSNCode     string          `json:"hsn_code,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
	LineTotal   decimal.Decimal `json:"line_total"`
	GSTAmount   decimal.Decimal `json:"gst_amount"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
	Method      string          `json:"payment_method,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// InvoiceResponse represents an invoice in API responses. Amounts are
// rounded to two places here and nowhere earlier.
type InvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	TenantID      uuid.UUID             `json:"tenant_id"`
	InvoiceNumber string                `json:"invoice_number"`
	DisplayNumber string                `json:"display_number"`
	InvoiceType   string                `json:"invoice_type"`
	EntityType    string                `json:"entity_type"`
	EntityID      *uuid.UUID            `json:"entity_id,omitempty"`
	EntityName    string                `json:"entity_name,omitempty"`
	InvoiceDate   string                `json:"invoice_date"`
	DueDate       string                `json:"due_date"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	TaxAmount     decimal.Decimal       `json:"tax_amount"`
	CGST          decimal.Decimal       `json:"cgst"`
	SGST          decimal.Decimal       `json:"sgst"`
	IGST          decimal.Decimal       `json:"igst"`
	TotalAmount   decimal.Decimal       `json:"total_amount"`
	TotalDisplay  string                `json:"total_display"`
	AmountPaid    decimal.Decimal       `json:"amount_paid"`
	AmountDue     decimal.Decimal       `json:"amount_due"`
	PaymentStatus string                `json:"payment_status"`
	PaidAt        *time.Time            `json:"paid_at,omitempty"`
	IsVoid        bool                  `json:"is_void"`
	Notes         string                `json:"notes,omitempty"`
	Items         []InvoiceItemResponse `json:"items,omitempty"`
	Payments      []PaymentResponse     `json:"payments,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	Version       int                   `json:"version"`
}

// CreateInvoiceResponse carries the invoice plus what happened to stock
type CreateInvoiceResponse struct {
	Invoice          InvoiceResponse             `json:"invoice"`
	StockAdjustments []inventory.StockAdjustment `json:"stock_adjustments,omitempty"`
	Warnings         []string                    `json:"warnings,omitempty"`
}

// PreviewLineResponse is one priced line of a preview
type PreviewLineResponse struct {
	LineTotal decimal.Decimal `json:"line_total"`
	GSTAmount decimal.Decimal `json:"gst_amount"`
}

// PreviewResponse is the tax computation for an unsaved invoice
type PreviewResponse struct {
	IsInterState bool                  `json:"is_inter_state"`
	Subtotal     decimal.Decimal       `json:"subtotal"`
	TaxAmount    decimal.Decimal       `json:"tax_amount"`
	CGST         decimal.Decimal       `json:"cgst"`
	SGST         decimal.Decimal       `json:"sgst"`
	IGST         decimal.Decimal       `json:"igst"`
	Total        decimal.Decimal       `json:"total"`
	Lines        []PreviewLineResponse `json:"lines"`
}

// MarkOverdueResponse reports the invoices flagged overdue
type MarkOverdueResponse struct {
	Updated    int         `json:"updated"`
	InvoiceIDs []uuid.UUID `json:"invoice_ids"`
}

// ToInvoiceResponse converts a domain Invoice to InvoiceResponse
func ToInvoiceResponse(inv *invoice.Invoice) InvoiceResponse {
	round := valueobject.RoundForDisplay
	totals := inv.RoundedTotals()
	amountPaid := round(inv.AmountPaid)
	amountDue := totals.Total.Sub(amountPaid)
	if amountDue.IsNegative() {
		amountDue = decimal.Zero
	}
	resp := InvoiceResponse{
		ID:            inv.ID,
		TenantID:      inv.TenantID,
		InvoiceNumber: inv.InvoiceNumber,
		DisplayNumber: inv.DisplayNumber(),
		InvoiceType:   string(inv.InvoiceType),
		EntityType:    string(inv.EntityType),
		EntityID:      inv.EntityID,
		EntityName:    inv.EntityName,
		InvoiceDate:   inv.InvoiceDate.Format(DateLayout),
		DueDate:       inv.EffectiveDueDate().Format(DateLayout),
		Subtotal:      totals.Subtotal,
		TaxAmount:     totals.TaxAmount,
		CGST:          totals.CGST,
		SGST:          totals.SGST,
		IGST:          totals.IGST,
		TotalAmount:   totals.Total,
		TotalDisplay:  valueobject.FormatINR(totals.Total),
		AmountPaid:    amountPaid,
		AmountDue:     amountDue,
		PaymentStatus: string(inv.PaymentStatus),
		PaidAt:        inv.PaidAt,
		IsVoid:        inv.IsVoid(),
		Notes:         inv.Notes,
		CreatedAt:     inv.CreatedAt,
		Version:       inv.Version,
	}
	if len(inv.Items) > 0 {
		resp.Items = make([]InvoiceItemResponse, len(inv.Items))
		for i, item := range inv.Items {
			resp.Items[i] = InvoiceItemResponse{
				ID:          item.ID,
				ProductID:   item.ProductID,
				Description: item.Description,
				HSNCode:     item.HSNCode,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				GSTRate:     item.GSTRate,
				LineTotal:   round(item.LineTotal),
				GSTAmount:   round(item.GSTAmount),
			}
		}
	}
	if len(inv.Payments) > 0 {
		resp.Payments = ToPaymentResponses(inv.Payments)
	}
	return resp
}

// ToInvoiceResponses converts a slice of invoices to responses
func ToInvoiceResponses(invoices []invoice.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses
}

// ToPaymentResponses converts payments to responses
func ToPaymentResponses(payments []invoice.InvoicePayment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = PaymentResponse{
			ID:          p.ID,
			InvoiceID:   p.InvoiceID,
			Amount:      p.Amount,
			PaymentDate: p.PaymentDate.Format(DateLayout),
			Method:      p.Method,
			Reference:   p.Reference,
			CreatedAt:   p.CreatedAt,
		}
	}
	return responses
}

func toPreviewResponse(b tax.Breakdown) PreviewResponse {
	r := b.Rounded()
	resp := PreviewResponse{
		IsInterState: r.InterState,
		Subtotal:     r.Subtotal,
		TaxAmount:    r.TaxAmount,
		CGST:         r.CGST,
		SGST:         r.SGST,
		IGST:         r.IGST,
		Total:        r.Total,
		Lines:        make([]PreviewLineResponse, len(r.Lines)),
	}
	for i, l := range r.Lines {
		resp.Lines[i] = PreviewLineResponse{LineTotal: l.LineTotal, GSTAmount: l.GSTAmount}
	}
	return resp
}
