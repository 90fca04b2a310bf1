package report

import (
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type names a report
type Type string

const (
	TypeProfitLoss   Type = "profit_loss"
	TypeTrialBalance Type = "trial_balance"
	TypeGST          Type = "gst"
	TypeAging        Type = "aging"
	TypeReturns      Type = "returns"
	TypeSales        Type = "sales"
	TypePurchases    Type = "purchases"
)

// AllTypes lists every report type
var AllTypes = []Type{
	TypeProfitLoss, TypeTrialBalance, TypeGST, TypeAging, TypeReturns, TypeSales, TypePurchases,
}

// IsValid checks if the report type is known
func (t Type) IsValid() bool {
	for _, known := range AllTypes {
		if t == known {
			return true
		}
	}
	return false
}

// String returns the string representation
func (t Type) String() string {
	return string(t)
}

// MiscellaneousLabel replaces a missing product or counterparty in grouped rows
const MiscellaneousLabel = "Miscellaneous"

// Request selects a report for one tenant over an inclusive date range
type Request struct {
	Type     Type
	TenantID uuid.UUID
	From     time.Time
	To       time.Time
	// AsOf is the reference date for aging. Defaults to To.
	AsOf *time.Time
}

// Validate checks the request and normalizes To to the end of its day
func (r *Request) Validate() error {
	if !r.Type.IsValid() {
		return shared.NewValidationError("Unknown report type: " + string(r.Type))
	}
	if r.TenantID == uuid.Nil {
		return shared.NewValidationError("Tenant is required")
	}
	if r.From.IsZero() || r.To.IsZero() {
		return shared.NewValidationError("Both from and to dates are required")
	}
	if r.To.Before(r.From) {
		return shared.NewValidationError("The to date cannot be before the from date")
	}
	r.To = EndOfDay(r.To)
	return nil
}

// ReferenceDate is the date aging is measured against
func (r Request) ReferenceDate() time.Time {
	if r.AsOf != nil {
		return *r.AsOf
	}
	return r.To
}

// InRange reports whether t falls inside the request range
func (r Request) InRange(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// Row is one line of a report. Values holds the numeric columns named in
// Report.Columns.
type Row struct {
	Group     string                     `json:"group,omitempty"`
	Label     string                     `json:"label"`
	Reference string                     `json:"reference,omitempty"`
	Date      *time.Time                 `json:"date,omitempty"`
	Values    map[string]decimal.Decimal `json:"values"`
}

// Summary carries the four headline figures. Their meaning depends on the
// report type.
type Summary struct {
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	GrossProfit    decimal.Decimal `json:"gross_profit"`
	NetProfit      decimal.Decimal `json:"net_profit"`
}

// ZeroSummary returns a summary with every figure at zero
func ZeroSummary() Summary {
	return Summary{
		TotalSales:     decimal.Zero,
		TotalPurchases: decimal.Zero,
		GrossProfit:    decimal.Zero,
		NetProfit:      decimal.Zero,
	}
}

// Report is a fully computed report
type Report struct {
	ID          uuid.UUID                  `json:"id"`
	Type        Type                       `json:"type"`
	TenantID    uuid.UUID                  `json:"tenant_id"`
	From        time.Time                  `json:"from"`
	To          time.Time                  `json:"to"`
	GeneratedAt time.Time                  `json:"generated_at"`
	Columns     []string                   `json:"columns"`
	Rows        []Row                      `json:"rows"`
	Totals      map[string]decimal.Decimal `json:"totals,omitempty"`
	Summary     Summary                    `json:"summary"`
	Warnings    []string                   `json:"warnings,omitempty"`
}

func newReport(req Request, columns ...string) *Report {
	return &Report{
		ID:          uuid.New(),
		Type:        req.Type,
		TenantID:    req.TenantID,
		From:        req.From,
		To:          req.To,
		GeneratedAt: time.Now(),
		Columns:     columns,
		Rows:        make([]Row, 0),
		Totals:      make(map[string]decimal.Decimal),
		Summary:     ZeroSummary(),
	}
}

func (r *Report) addRow(row Row) {
	r.Rows = append(r.Rows, row)
}

func (r *Report) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// EndOfDay returns the last instant of t's day
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// StartOfDay returns midnight of t's day
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
