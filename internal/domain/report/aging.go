package report

import (
	"math"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/invoice"
	"github.com/shopspring/decimal"
)

// Aging bucket labels in display order
const (
	BucketNotDue = "Not Due Yet"
	Bucket0To30  = "0-30"
	Bucket31To60 = "31-60"
	Bucket61To90 = "61-90"
	BucketOver90 = "90+"
)

// AgingBuckets lists the buckets in display order
var AgingBuckets = []string{BucketNotDue, Bucket0To30, Bucket31To60, Bucket61To90, BucketOver90}

// DaysPastDue counts whole calendar days from due to asOf. Negative means not
// yet due.
func DaysPastDue(due, asOf time.Time) int {
	d := StartOfDay(asOf).Sub(StartOfDay(due.In(asOf.Location())))
	return int(math.Round(d.Hours() / 24))
}

// BucketFor maps days past due onto an aging bucket
func BucketFor(days int) string {
	switch {
	case days < 0:
		return BucketNotDue
	case days <= 30:
		return Bucket0To30
	case days <= 60:
		return Bucket31To60
	case days <= 90:
		return Bucket61To90
	default:
		return BucketOver90
	}
}

// buildAging buckets every unpaid non-return sales invoice. The summary
// carries billed totals as sales and the outstanding balance as net profit.
func buildAging(ds *Dataset, req Request) *Report {
	rep := newReport(req, "total", "paid", "amount_due", "days_past_due")
	asOf := req.ReferenceDate()

	for _, bucket := range AgingBuckets {
		rep.Totals[bucket] = decimal.Zero
	}
	billed, outstanding := decimal.Zero, decimal.Zero

	for _, inv := range Select(ds, req, InvoiceQuery{Types: []invoice.InvoiceType{invoice.InvoiceTypeSales}}) {
		paid := paidSum(inv)
		due := inv.TotalAmount.Sub(paid)
		if !due.IsPositive() {
			continue
		}
		dueDate := inv.EffectiveDueDate()
		days := DaysPastDue(dueDate, asOf)
		bucket := BucketFor(days)

		rep.addRow(Row{
			Group:     bucket,
			Label:     labelOrMisc(inv.EntityName),
			Reference: inv.DisplayNumber(),
			Date:      &dueDate,
			Values: map[string]decimal.Decimal{
				"total":         inv.TotalAmount,
				"paid":          paid,
				"amount_due":    due,
				"days_past_due": decimal.NewFromInt(int64(days)),
			},
		})
		rep.Totals[bucket] = rep.Totals[bucket].Add(due)
		billed = billed.Add(inv.TotalAmount)
		outstanding = outstanding.Add(due)
	}

	rep.Totals["amount_due"] = outstanding
	rep.Summary.TotalSales = billed
	rep.Summary.NetProfit = outstanding
	return rep
}
