package report

import (
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/report"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportQuery selects a report period. Type comes from the path.
type ReportQuery struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
	AsOf string `form:"as_of" binding:"omitempty,datetime=2006-01-02"`
}

// RowResponse is one report line with amounts rounded for display
type RowResponse struct {
	Group     string                     `json:"group,omitempty"`
	Label     string                     `json:"label"`
	Reference string                     `json:"reference,omitempty"`
	Date      string                     `json:"date,omitempty"`
	Values    map[string]decimal.Decimal `json:"values"`
}

// SummaryResponse carries the headline figures and their INR display strings
type SummaryResponse struct {
	TotalSales        decimal.Decimal `json:"total_sales"`
	TotalPurchases    decimal.Decimal `json:"total_purchases"`
	GrossProfit       decimal.Decimal `json:"gross_profit"`
	NetProfit         decimal.Decimal `json:"net_profit"`
	TotalSalesINR     string          `json:"total_sales_display"`
	TotalPurchasesINR string          `json:"total_purchases_display"`
	GrossProfitINR    string          `json:"gross_profit_display"`
	NetProfitINR      string          `json:"net_profit_display"`
}

// ReportResponse represents a computed report in API responses
type ReportResponse struct {
	ID          uuid.UUID                  `json:"id"`
	Type        string                     `json:"type"`
	From        string                     `json:"from"`
	To          string                     `json:"to"`
	GeneratedAt time.Time                  `json:"generated_at"`
	Columns     []string                   `json:"columns"`
	Rows        []RowResponse              `json:"rows"`
	Totals      map[string]decimal.Decimal `json:"totals,omitempty"`
	Summary     SummaryResponse            `json:"summary"`
	Warnings    []string                   `json:"warnings,omitempty"`
	// Degraded is set when part of the data could not be loaded
	Degraded    bool                       `json:"degraded"`
}

// ToReportResponse converts a domain report to a response
func ToReportResponse(r *report.Report) ReportResponse {
	rows := make([]RowResponse, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = RowResponse{
			Group:     row.Group,
			Label:     row.Label,
			Reference: row.Reference,
			Values:    roundValues(row.Values),
		}
		if row.Date != nil {
			rows[i].Date = row.Date.Format(dateLayout)
		}
	}
	return ReportResponse{
		ID:          r.ID,
		Type:        r.Type.String(),
		From:        r.From.Format(dateLayout),
		To:          r.To.Format(dateLayout),
		GeneratedAt: r.GeneratedAt,
		Columns:     r.Columns,
		Rows:        rows,
		Totals:      roundValues(r.Totals),
		Summary: SummaryResponse{
			TotalSales:        valueobject.RoundForDisplay(r.Summary.TotalSales),
			TotalPurchases:    valueobject.RoundForDisplay(r.Summary.TotalPurchases),
			GrossProfit:       valueobject.RoundForDisplay(r.Summary.GrossProfit),
			NetProfit:         valueobject.RoundForDisplay(r.Summary.NetProfit),
			TotalSalesINR:     valueobject.FormatINR(r.Summary.TotalSales),
			TotalPurchasesINR: valueobject.FormatINR(r.Summary.TotalPurchases),
			GrossProfitINR:    valueobject.FormatINR(r.Summary.GrossProfit),
			NetProfitINR:      valueobject.FormatINR(r.Summary.NetProfit),
		},
		Warnings: r.Warnings,
	}
}

func roundValues(in map[string]decimal.Decimal) map[string]decimal.Decimal {
	if in == nil {
		return nil
	}
	out := make(map[string]decimal.Decimal, len(in))
	for k, v := range in {
		out[k] = valueobject.RoundForDisplay(v)
	}
	return out
}
