package tax

import (
	"testing"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(qty, price, rate string) LineInput {
	return LineInput{Quantity: d(qty), UnitPrice: d(price), GSTRate: d(rate)}
}

func TestCompute_IntraStateSplit(t *testing.T) {
	b, err := Compute([]LineInput{line("2", "1000", "18")}, Jurisdiction{CounterpartyState: "27", SellerState: "27"})
	require.NoError(t, err)

	assert.True(t, b.Subtotal.Equal(d("2000")))
	assert.True(t, b.TaxAmount.Equal(d("360")))
	assert.True(t, b.CGST.Equal(d("180")))
	assert.True(t, b.SGST.Equal(d("180")))
	assert.True(t, b.IGST.IsZero())
	assert.True(t, b.Total.Equal(d("2360")))
	assert.False(t, b.InterState)
}

func TestCompute_ForceIGST(t *testing.T) {
	b, err := Compute([]LineInput{line("2", "1000", "18")}, Jurisdiction{CounterpartyState: "27", SellerState: "27", ForceIGST: true})
	require.NoError(t, err)

	assert.True(t, b.IGST.Equal(d("360")))
	assert.True(t, b.CGST.IsZero())
	assert.True(t, b.SGST.IsZero())
	assert.True(t, b.Total.Equal(d("2360")))
}

func TestCompute_InterStateByStateCodes(t *testing.T) {
	b, err := Compute([]LineInput{line("1", "500", "12")}, Jurisdiction{CounterpartyState: "29", SellerState: "27"})
	require.NoError(t, err)
	assert.True(t, b.InterState)
	assert.True(t, b.IGST.Equal(d("60")))
}

func TestCompute_BucketsSumExactly(t *testing.T) {
	lines := []LineInput{
		line("3", "33.33", "5"),
		line("7", "19.99", "12"),
		line("0.5", "101.01", "28"),
		line("1", "0.01", "18"),
	}
	for _, j := range []Jurisdiction{
		{CounterpartyState: "MH", SellerState: "mh"},
		{CounterpartyState: "KA", SellerState: "MH"},
		{ForceIGST: true},
	} {
		b, err := Compute(lines, j)
		require.NoError(t, err)
		assert.True(t, b.BucketSum().Equal(b.TaxAmount), "buckets %s != tax %s", b.BucketSum(), b.TaxAmount)
		assert.True(t, b.Subtotal.Add(b.TaxAmount).Equal(b.Total))

		r := b.Rounded()
		assert.True(t, r.BucketSum().Equal(r.TaxAmount))
		assert.True(t, r.Subtotal.Add(r.TaxAmount).Equal(r.Total))
	}
}

func TestIsInterState(t *testing.T) {
	tests := []struct {
		name string
		j    Jurisdiction
		want bool
	}{
		{"same state", Jurisdiction{CounterpartyState: "27", SellerState: "27"}, false},
		{"case and spaces ignored", Jurisdiction{CounterpartyState: " ka ", SellerState: "KA"}, false},
		{"different states", Jurisdiction{CounterpartyState: "29", SellerState: "27"}, true},
		{"missing buyer state", Jurisdiction{SellerState: "27"}, false},
		{"missing seller state", Jurisdiction{CounterpartyState: "27"}, false},
		{"forced", Jurisdiction{ForceIGST: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInterState(tt.j))
			swapped := Jurisdiction{CounterpartyState: tt.j.SellerState, SellerState: tt.j.CounterpartyState, ForceIGST: tt.j.ForceIGST}
			assert.Equal(t, tt.want, IsInterState(swapped))
		})
	}
}

func TestCompute_Validation(t *testing.T) {
	tests := []struct {
		name string
		line LineInput
	}{
		{"zero quantity", line("0", "10", "5")},
		{"negative quantity", line("-1", "10", "5")},
		{"negative price", line("1", "-10", "5")},
		{"rate above 100", line("1", "10", "101")},
		{"negative rate", line("1", "10", "-1")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute([]LineInput{line("1", "1", "0"), tt.line}, Jurisdiction{})
			require.Error(t, err)
			assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
			assert.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestCompute_EmptyLines(t *testing.T) {
	b, err := Compute(nil, Jurisdiction{})
	require.NoError(t, err)
	assert.True(t, b.Total.IsZero())
	assert.Empty(t, b.Lines)
}
