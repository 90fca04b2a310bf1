package valueobject

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundForDisplay(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"180.005", "180.01"},
		{"180.004", "180"},
		{"-12.345", "-12.35"},
		{"0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := RoundForDisplay(decimal.RequireFromString(tt.in))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestFormatINR(t *testing.T) {
	t.Run("keeps digits and two decimals", func(t *testing.T) {
		s := FormatINR(decimal.RequireFromString("1234567.891"))
		assert.True(t, strings.HasPrefix(s, CurrencySymbol))
		digits := strings.ReplaceAll(strings.TrimPrefix(s, CurrencySymbol), ",", "")
		assert.Equal(t, "1234567.89", digits)
	})

	t.Run("negative amounts carry the sign first", func(t *testing.T) {
		s := FormatINR(decimal.RequireFromString("-50"))
		assert.True(t, strings.HasPrefix(s, "-"+CurrencySymbol))
		assert.Equal(t, "50.00", strings.TrimPrefix(s, "-"+CurrencySymbol))
	})
}

func TestSumDecimalsAndMaxZero(t *testing.T) {
	total := SumDecimals(decimal.NewFromInt(10), decimal.NewFromFloat(2.5), decimal.NewFromInt(-1))
	assert.True(t, total.Equal(decimal.NewFromFloat(11.5)))
	assert.True(t, MaxZero(decimal.NewFromInt(-3)).IsZero())
	assert.True(t, MaxZero(decimal.NewFromInt(3)).Equal(decimal.NewFromInt(3)))
}
