package report

import (
	"fmt"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// buildTrialBalance lists every ledger with its period movement. The summary
// carries period credits as sales, period debits as purchases and the
// income-less-expense result as both profit figures.
func buildTrialBalance(ds *Dataset, req Request) *Report {
	p := period(req)
	tb := ledger.BuildTrialBalance(ds.Ledgers, ds.LedgerEntries, p)
	rep := newReport(req, "opening", "debits", "credits", "closing")

	for _, row := range tb.Rows {
		rep.addRow(Row{
			Group:     string(row.LedgerType),
			Label:     row.LedgerName,
			Reference: row.LedgerID.String(),
			Values: map[string]decimal.Decimal{
				"opening": row.OpeningBalance,
				"debits":  row.Debits,
				"credits": row.Credits,
				"closing": row.ClosingBalance,
			},
		})
	}

	rep.Totals["total_debits"] = tb.TotalDebits
	rep.Totals["total_credits"] = tb.TotalCredits
	rep.Totals["difference"] = tb.Difference
	if !tb.Status.IsBalanced() {
		rep.warn(fmt.Sprintf("Trial balance is %s: debits exceed credits by %s", tb.Status, tb.Difference.StringFixed(2)))
	}

	result := ledger.NetByType(ds.Ledgers, ds.LedgerEntries, ledger.TypeIncome, p).
		Sub(ledger.NetByType(ds.Ledgers, ds.LedgerEntries, ledger.TypeExpense, p))
	rep.Summary = Summary{
		TotalSales:     tb.TotalCredits,
		TotalPurchases: tb.TotalDebits,
		GrossProfit:    result,
		NetProfit:      result,
	}
	return rep
}
