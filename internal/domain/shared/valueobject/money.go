// Package valueobject holds small immutable values shared across bounded contexts.
package valueobject

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DisplayPlaces is the number of decimal places amounts are rounded to for presentation.
// Computation keeps full precision until this point.
const DisplayPlaces int32 = 2

// CurrencySymbol is the rupee sign used for display strings
const CurrencySymbol = "₹"

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// RoundForDisplay rounds an amount half-away-from-zero to two places
func RoundForDisplay(d decimal.Decimal) decimal.Decimal {
	return d.Round(DisplayPlaces)
}

// FormatINR renders an amount with Indian digit grouping (lakh/crore), e.g. ₹12,34,567.89
func FormatINR(d decimal.Decimal) string {
	rounded := RoundForDisplay(d)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	f, _ := rounded.Float64()
	return sign + CurrencySymbol + inrPrinter.Sprint(number.Decimal(f, number.Scale(int(DisplayPlaces))))
}

// SumDecimals adds a list of amounts
func SumDecimals(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// MaxZero clamps negative amounts to zero
func MaxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
