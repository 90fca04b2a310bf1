package report

import (
	"slices"
	"sort"
	"strings"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/invoice"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// InvoiceQuery is the filter stage of the shared pipeline. Returns are
// excluded unless IncludeVoid is set.
type InvoiceQuery struct {
	Types       []invoice.InvoiceType
	EntityTypes []partner.EntityType
	// ExcludeEntityTypes drops invoices of these entity types
	ExcludeEntityTypes []partner.EntityType
	IncludeVoid        bool
	// AnyDate disables the request date range
	AnyDate bool
}

func (q InvoiceQuery) matches(inv *invoice.Invoice, req Request) bool {
	if inv.IsVoid() && !q.IncludeVoid {
		return false
	}
	if len(q.Types) > 0 && !slices.Contains(q.Types, inv.InvoiceType) {
		return false
	}
	if len(q.EntityTypes) > 0 && !slices.Contains(q.EntityTypes, inv.EntityType) {
		return false
	}
	if slices.Contains(q.ExcludeEntityTypes, inv.EntityType) {
		return false
	}
	if !q.AnyDate && !req.InRange(inv.InvoiceDate) {
		return false
	}
	return true
}

// Select runs the filter stage over the dataset invoices
func Select(ds *Dataset, req Request, q InvoiceQuery) []*invoice.Invoice {
	out := make([]*invoice.Invoice, 0)
	for i := range ds.Invoices {
		if q.matches(&ds.Invoices[i], req) {
			out = append(out, &ds.Invoices[i])
		}
	}
	return out
}

// Dimension extracts the grouping key of an invoice
type Dimension func(inv *invoice.Invoice) string

// ByEntity groups by counterparty name
func ByEntity(inv *invoice.Invoice) string {
	return labelOrMisc(inv.EntityName)
}

// ByMonth groups by invoice month
func ByMonth(inv *invoice.Invoice) string {
	return inv.InvoiceDate.Format("2006-01")
}

// ByType groups by invoice type
func ByType(inv *invoice.Invoice) string {
	return string(inv.InvoiceType)
}

// Aggregate is the aggregate stage result for one dimension value
type Aggregate struct {
	Key      string
	Count    int
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
	Paid     decimal.Decimal
}

// AggregateBy sums invoices per dimension value, ordered by key
func AggregateBy(invoices []*invoice.Invoice, dim Dimension) []Aggregate {
	groups := make(map[string]*Aggregate)
	for _, inv := range invoices {
		key := dim(inv)
		agg, ok := groups[key]
		if !ok {
			agg = &Aggregate{Key: key, Subtotal: decimal.Zero, Tax: decimal.Zero, Total: decimal.Zero, Paid: decimal.Zero}
			groups[key] = agg
		}
		agg.Count++
		agg.Subtotal = agg.Subtotal.Add(inv.Subtotal)
		agg.Tax = agg.Tax.Add(inv.TaxAmount)
		agg.Total = agg.Total.Add(inv.TotalAmount)
		agg.Paid = agg.Paid.Add(paidSum(inv))
	}
	out := make([]Aggregate, 0, len(groups))
	for _, agg := range groups {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Sum totals every invoice in the slice
func Sum(invoices []*invoice.Invoice) Aggregate {
	all := AggregateBy(invoices, func(*invoice.Invoice) string { return "" })
	if len(all) == 0 {
		return Aggregate{Subtotal: decimal.Zero, Tax: decimal.Zero, Total: decimal.Zero, Paid: decimal.Zero}
	}
	return all[0]
}

// paidSum prefers the loaded payment rows and falls back to the stored
// running total when payments were not loaded
func paidSum(inv *invoice.Invoice) decimal.Decimal {
	if len(inv.Payments) == 0 {
		return inv.AmountPaid
	}
	sum := decimal.Zero
	for _, p := range inv.Payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}

func labelOrMisc(s string) string {
	if strings.TrimSpace(s) == "" {
		return MiscellaneousLabel
	}
	return s
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
