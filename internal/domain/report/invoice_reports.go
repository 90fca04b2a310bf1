package report

import (
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/invoice"
	"github.com/shopspring/decimal"
)

// buildReturns lists sale and purchase returns for audit. They are outside
// every total, so the summary stays zero.
func buildReturns(ds *Dataset, req Request) *Report {
	rep := newReport(req, "subtotal", "tax", "total")
	saleReturns, purchaseReturns := decimal.Zero, decimal.Zero

	returns := Select(ds, req, InvoiceQuery{
		Types:       []invoice.InvoiceType{invoice.InvoiceTypeSaleReturn, invoice.InvoiceTypePurchaseReturn},
		IncludeVoid: true,
	})
	for _, inv := range returns {
		date := inv.InvoiceDate
		rep.addRow(Row{
			Group:     string(inv.InvoiceType),
			Label:     labelOrMisc(inv.EntityName),
			Reference: inv.DisplayNumber(),
			Date:      &date,
			Values: map[string]decimal.Decimal{
				"subtotal": inv.Subtotal,
				"tax":      inv.TaxAmount,
				"total":    inv.TotalAmount,
			},
		})
		if inv.InvoiceType == invoice.InvoiceTypeSaleReturn {
			saleReturns = saleReturns.Add(inv.TotalAmount)
		} else {
			purchaseReturns = purchaseReturns.Add(inv.TotalAmount)
		}
	}

	rep.Totals["sale_returns"] = saleReturns
	rep.Totals["purchase_returns"] = purchaseReturns
	return rep
}

func buildSales(ds *Dataset, req Request) *Report {
	rep := byEntityReport(ds, req, invoice.InvoiceTypeSales)
	rep.Summary.TotalSales = rep.Totals["subtotal"]
	return rep
}

func buildPurchases(ds *Dataset, req Request) *Report {
	rep := byEntityReport(ds, req, invoice.InvoiceTypePurchase)
	rep.Summary.TotalPurchases = rep.Totals["subtotal"]
	return rep
}

// byEntityReport groups non-return invoices of one type by counterparty
func byEntityReport(ds *Dataset, req Request, t invoice.InvoiceType) *Report {
	rep := newReport(req, "invoices", "subtotal", "tax", "total", "paid")
	invoices := Select(ds, req, InvoiceQuery{Types: []invoice.InvoiceType{t}})

	for _, agg := range AggregateBy(invoices, ByEntity) {
		rep.addRow(Row{
			Group: string(t),
			Label: agg.Key,
			Values: map[string]decimal.Decimal{
				"invoices": decimal.NewFromInt(int64(agg.Count)),
				"subtotal": agg.Subtotal,
				"tax":      agg.Tax,
				"total":    agg.Total,
				"paid":     agg.Paid,
			},
		})
	}

	sum := Sum(invoices)
	rep.Totals["subtotal"] = sum.Subtotal
	rep.Totals["tax"] = sum.Tax
	rep.Totals["total"] = sum.Total
	rep.Totals["paid"] = sum.Paid
	return rep
}
