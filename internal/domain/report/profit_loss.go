package report

import (
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/invoice"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/ledger"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/partner"
	"github.com/shopspring/decimal"
)

var expenseEntityTypes = []partner.EntityType{partner.EntityTypeLabour, partner.EntityTypeTransport}

// ProfitLoss holds every intermediate figure of the profit and loss statement
type ProfitLoss struct {
	Sales           decimal.Decimal
	Purchases       decimal.Decimal
	OpeningStock    decimal.Decimal
	SoldAtCost      decimal.Decimal
	ClosingStock    decimal.Decimal
	COGS            decimal.Decimal
	GrossProfit     decimal.Decimal
	ExpenseInvoices decimal.Decimal
	LedgerExpenses  decimal.Decimal
	LedgerIncome    decimal.Decimal
	SalesTax        decimal.Decimal
	PurchaseTax     decimal.Decimal
	NetProfit       decimal.Decimal
}

// ComputeProfitLoss derives the statement for the request range.
//
// Opening stock is the current stock valuation and is not period scoped.
// Closing stock is opening stock less the cost of goods sold in the range,
// floored at zero. Sold lines that match no product contribute zero cost.
func ComputeProfitLoss(ds *Dataset, req Request) ProfitLoss {
	var pl ProfitLoss

	salesInvoices := Select(ds, req, InvoiceQuery{Types: []invoice.InvoiceType{invoice.InvoiceTypeSales}})
	purchaseInvoices := Select(ds, req, InvoiceQuery{
		Types:              []invoice.InvoiceType{invoice.InvoiceTypePurchase},
		ExcludeEntityTypes: expenseEntityTypes,
	})
	expenseInvoices := Select(ds, req, InvoiceQuery{EntityTypes: expenseEntityTypes})

	sales := Sum(salesInvoices)
	purchases := Sum(purchaseInvoices)
	pl.Sales = sales.Subtotal
	pl.SalesTax = sales.Tax
	pl.Purchases = purchases.Subtotal
	pl.PurchaseTax = purchases.Tax
	pl.ExpenseInvoices = Sum(expenseInvoices).Total

	pl.OpeningStock = decimal.Zero
	for i := range ds.Products {
		pl.OpeningStock = pl.OpeningStock.Add(ds.Products[i].StockValue())
	}

	idx := newProductIndex(ds.Products)
	pl.SoldAtCost = decimal.Zero
	for _, inv := range salesInvoices {
		for _, item := range inv.Items {
			if p := idx.resolve(item.ProductID, item.Description); p != nil {
				pl.SoldAtCost = pl.SoldAtCost.Add(item.Quantity.Mul(p.PurchasePrice))
			}
		}
	}
	pl.ClosingStock = pl.OpeningStock.Sub(pl.SoldAtCost)
	if pl.ClosingStock.IsNegative() {
		pl.ClosingStock = decimal.Zero
	}

	pl.COGS = pl.OpeningStock.Add(pl.Purchases).Sub(pl.ClosingStock)
	pl.GrossProfit = pl.Sales.Sub(pl.COGS)

	p := period(req)
	pl.LedgerExpenses = ledger.NetByType(ds.Ledgers, ds.LedgerEntries, ledger.TypeExpense, p)
	pl.LedgerIncome = ledger.NetByType(ds.Ledgers, ds.LedgerEntries, ledger.TypeIncome, p)

	netTax := pl.PurchaseTax.Sub(pl.SalesTax)
	pl.NetProfit = pl.GrossProfit.
		Sub(pl.ExpenseInvoices.Add(pl.LedgerExpenses)).
		Add(pl.LedgerIncome).
		Sub(netTax)
	return pl
}

func buildProfitLoss(ds *Dataset, req Request) *Report {
	pl := ComputeProfitLoss(ds, req)
	rep := newReport(req, "amount")

	rep.addRow(amountRow("Trading", "Sales", pl.Sales))
	rep.addRow(amountRow("Trading", "Opening Stock", pl.OpeningStock))
	rep.addRow(amountRow("Trading", "Purchases", pl.Purchases))
	rep.addRow(amountRow("Trading", "Closing Stock", pl.ClosingStock))
	rep.addRow(amountRow("Trading", "Cost of Goods Sold", pl.COGS))
	rep.addRow(amountRow("Trading", "Gross Profit", pl.GrossProfit))
	rep.addRow(amountRow("Operating", "Labour & Transport", pl.ExpenseInvoices))
	rep.addRow(amountRow("Operating", "Ledger Expenses", pl.LedgerExpenses))
	rep.addRow(amountRow("Operating", "Ledger Income", pl.LedgerIncome))
	rep.addRow(amountRow("Tax", "Input Tax", pl.PurchaseTax))
	rep.addRow(amountRow("Tax", "Output Tax", pl.SalesTax))
	rep.addRow(amountRow("Result", "Net Profit", pl.NetProfit))

	rep.Totals["opening_stock"] = pl.OpeningStock
	rep.Totals["closing_stock"] = pl.ClosingStock
	rep.Totals["cogs"] = pl.COGS
	rep.Summary = Summary{
		TotalSales:     pl.Sales,
		TotalPurchases: pl.Purchases,
		GrossProfit:    pl.GrossProfit,
		NetProfit:      pl.NetProfit,
	}
	return rep
}
