// Package tax computes the GST split for a set of invoice or purchase-order lines.
//
// Intra-state supplies split the tax evenly into CGST and SGST; inter-state
// supplies (or any call with ForceIGST) carry the whole tax as IGST. The three
// buckets always sum to the total tax exactly: no bucket is rounded on its own,
// rounding happens only at presentation.
package tax

import (
	"fmt"
	"strings"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// LineInput is the taxable part of a single line item
type LineInput struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	GSTRate   decimal.Decimal // percent, 0-100
}

// Jurisdiction carries the state codes compared to decide the split
type Jurisdiction struct {
	CounterpartyState string
	SellerState       string
	ForceIGST         bool
}

// LineResult holds per-line amounts at full precision
type LineResult struct {
	LineTotal decimal.Decimal
	GSTAmount decimal.Decimal
}

// Breakdown is the computed result for a set of lines
type Breakdown struct {
	Lines      []LineResult
	Subtotal   decimal.Decimal
	TaxAmount  decimal.Decimal
	Total      decimal.Decimal
	CGST       decimal.Decimal
	SGST       decimal.Decimal
	IGST       decimal.Decimal
	InterState bool
}

// IsInterState reports whether a supply crosses state lines.
// Both state codes must be present for a mismatch to count; the comparison is
// case-insensitive and symmetric in its two arguments.
func IsInterState(j Jurisdiction) bool {
	if j.ForceIGST {
		return true
	}
	buyer := normalizeState(j.CounterpartyState)
	seller := normalizeState(j.SellerState)
	if buyer == "" || seller == "" {
		return false
	}
	return buyer != seller
}

func normalizeState(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateLine checks a single line before it takes part in any total
func ValidateLine(index int, line LineInput) error {
	if !line.Quantity.IsPositive() {
		return shared.NewValidationError(fmt.Sprintf("line %d: quantity must be greater than zero", index+1))
	}
	if line.UnitPrice.IsNegative() {
		return shared.NewValidationError(fmt.Sprintf("line %d: unit price cannot be negative", index+1))
	}
	if line.GSTRate.IsNegative() || line.GSTRate.GreaterThan(hundred) {
		return shared.NewValidationError(fmt.Sprintf("line %d: gst rate must be between 0 and 100", index+1))
	}
	return nil
}

// Compute validates every line and returns the totals and tax buckets.
// No partial result is returned on error.
func Compute(lines []LineInput, j Jurisdiction) (Breakdown, error) {
	result := Breakdown{
		Lines:     make([]LineResult, 0, len(lines)),
		Subtotal:  decimal.Zero,
		TaxAmount: decimal.Zero,
		CGST:      decimal.Zero,
		SGST:      decimal.Zero,
		IGST:      decimal.Zero,
	}

	for i, line := range lines {
		if err := ValidateLine(i, line); err != nil {
			return Breakdown{}, err
		}
		lineTotal := line.Quantity.Mul(line.UnitPrice)
		gst := lineTotal.Mul(line.GSTRate).Div(hundred)
		result.Lines = append(result.Lines, LineResult{LineTotal: lineTotal, GSTAmount: gst})
		result.Subtotal = result.Subtotal.Add(lineTotal)
		result.TaxAmount = result.TaxAmount.Add(gst)
	}

	result.InterState = IsInterState(j)
	if result.InterState {
		result.IGST = result.TaxAmount
	} else {
		result.CGST = result.TaxAmount.Div(two)
		// SGST takes the remainder so the buckets sum to TaxAmount exactly
		result.SGST = result.TaxAmount.Sub(result.CGST)
	}
	result.Total = result.Subtotal.Add(result.TaxAmount)
	return result, nil
}

// Rounded returns a copy of the breakdown rounded for display.
// CGST is rounded and SGST recomputed so the displayed buckets still add up
// to the displayed tax amount.
func (b Breakdown) Rounded() Breakdown {
	out := b
	out.Lines = make([]LineResult, len(b.Lines))
	for i, l := range b.Lines {
		out.Lines[i] = LineResult{LineTotal: l.LineTotal.Round(2), GSTAmount: l.GSTAmount.Round(2)}
	}
	out.Subtotal, out.TaxAmount, out.Total = RoundTotals(b.Subtotal, b.TaxAmount)
	if b.InterState {
		out.IGST = out.TaxAmount
		return out
	}
	out.CGST = b.CGST.Round(2)
	out.SGST = out.TaxAmount.Sub(out.CGST)
	return out
}

// RoundTotals rounds a subtotal and tax amount to two places and derives the
// total from the rounded parts, so the rounded total is their exact sum.
func RoundTotals(subtotal, taxAmount decimal.Decimal) (roundedSubtotal, roundedTax, total decimal.Decimal) {
	roundedSubtotal = subtotal.Round(2)
	roundedTax = taxAmount.Round(2)
	return roundedSubtotal, roundedTax, roundedSubtotal.Add(roundedTax)
}

// BucketSum returns CGST + SGST + IGST
func (b Breakdown) BucketSum() decimal.Decimal {
	return b.CGST.Add(b.SGST).Add(b.IGST)
}
