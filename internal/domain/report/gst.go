package report

import (
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/invoice"
	"github.com/shopspring/decimal"
)

// GSTTotals splits tax into output (sales) and input (purchases) buckets
type GSTTotals struct {
	OutputTaxable decimal.Decimal
	OutputCGST    decimal.Decimal
	OutputSGST    decimal.Decimal
	OutputIGST    decimal.Decimal
	InputTaxable  decimal.Decimal
	InputCGST     decimal.Decimal
	InputSGST     decimal.Decimal
	InputIGST     decimal.Decimal
}

// OutputTax is the tax collected on sales
func (g GSTTotals) OutputTax() decimal.Decimal {
	return g.OutputCGST.Add(g.OutputSGST).Add(g.OutputIGST)
}

// InputTax is the tax paid on purchases
func (g GSTTotals) InputTax() decimal.Decimal {
	return g.InputCGST.Add(g.InputSGST).Add(g.InputIGST)
}

// NetLiability is output tax less input credit
func (g GSTTotals) NetLiability() decimal.Decimal {
	return g.OutputTax().Sub(g.InputTax())
}

// buildGST reads only sale and purchase GST entries. Returns never produce a
// GST entry, and any other transaction type is ignored.
func buildGST(ds *Dataset, req Request) *Report {
	rep := newReport(req, "taxable", "cgst", "sgst", "igst", "total_tax")
	t := GSTTotals{
		OutputTaxable: decimal.Zero, OutputCGST: decimal.Zero, OutputSGST: decimal.Zero, OutputIGST: decimal.Zero,
		InputTaxable: decimal.Zero, InputCGST: decimal.Zero, InputSGST: decimal.Zero, InputIGST: decimal.Zero,
	}

	for i := range ds.GSTEntries {
		e := &ds.GSTEntries[i]
		if !req.InRange(e.EntryDate) {
			continue
		}
		switch e.TransactionType {
		case invoice.GSTTransactionSale:
			t.OutputTaxable = t.OutputTaxable.Add(e.TaxableAmount)
			t.OutputCGST = t.OutputCGST.Add(e.CGST)
			t.OutputSGST = t.OutputSGST.Add(e.SGST)
			t.OutputIGST = t.OutputIGST.Add(e.IGST)
		case invoice.GSTTransactionPurchase:
			t.InputTaxable = t.InputTaxable.Add(e.TaxableAmount)
			t.InputCGST = t.InputCGST.Add(e.CGST)
			t.InputSGST = t.InputSGST.Add(e.SGST)
			t.InputIGST = t.InputIGST.Add(e.IGST)
		default:
			continue
		}
		date := e.EntryDate
		rep.addRow(Row{
			Group:     string(e.TransactionType),
			Label:     labelOrMisc(e.EntityName),
			Reference: e.InvoiceNumber,
			Date:      &date,
			Values: map[string]decimal.Decimal{
				"taxable":   e.TaxableAmount,
				"cgst":      e.CGST,
				"sgst":      e.SGST,
				"igst":      e.IGST,
				"total_tax": e.CGST.Add(e.SGST).Add(e.IGST),
			},
		})
	}

	rep.Totals["output_cgst"] = t.OutputCGST
	rep.Totals["output_sgst"] = t.OutputSGST
	rep.Totals["output_igst"] = t.OutputIGST
	rep.Totals["output_tax"] = t.OutputTax()
	rep.Totals["input_cgst"] = t.InputCGST
	rep.Totals["input_sgst"] = t.InputSGST
	rep.Totals["input_igst"] = t.InputIGST
	rep.Totals["input_tax"] = t.InputTax()
	rep.Totals["net_liability"] = t.NetLiability()

	gross := t.OutputTaxable.Sub(t.InputTaxable)
	rep.Summary = Summary{
		TotalSales:     t.OutputTaxable,
		TotalPurchases: t.InputTaxable,
		GrossProfit:    gross,
		NetProfit:      gross.Sub(t.NetLiability()),
	}
	return rep
}
