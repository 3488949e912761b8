package lib

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestQuo(t *testing.T) {
	tests := []struct {
		name          string
		a, b          decimal.Decimal
		expected      string
		errorContains string
	}{
		{
			name:     "exact",
			a:        decimal.NewFromInt(100000),
			b:        decimal.NewFromInt(100),
			expected: "1000",
		},
		{
			name:     "rounded",
			a:        decimal.NewFromInt(2),
			b:        decimal.NewFromInt(3),
			expected: "0.666666666666666666666666666667",
		},
		{
			name:          "zero divisor",
			a:             One,
			b:             Zero,
			errorContains: "division by zero",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Quo(test.a, test.b)
			if test.errorContains != "" {
				require.ErrorContains(t, err, test.errorContains)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.expected, got.String())
		})
	}
}

func TestParseDecimal(t *testing.T) {
	got, err := ParseDecimal("0.003")
	require.NoError(t, err)
	require.True(t, got.Equal(decimal.RequireFromString("0.003")))
	_, err = ParseDecimal("three")
	require.ErrorContains(t, err, "is not a valid decimal")
}

func TestDiscountAmount(t *testing.T) {
	logAccuracy, slope := decimal.NewFromInt(1_000_000_000), decimal.RequireFromString("0.05")
	tests := []struct {
		name     string
		detail   string
		staked   decimal.Decimal
		expected float64
	}{
		{
			name:     "no stake",
			detail:   "a zero stake carries no discount",
			staked:   Zero,
			expected: 0,
		},
		{
			name:     "one hundred",
			detail:   "1e9 * (100^(1/1e9) - 1) * 0.05",
			staked:   Hundred,
			expected: 0.2302585098,
		},
		{
			name:     "below one",
			detail:   "a stake below one would yield a negative discount and is clamped to zero",
			staked:   decimal.RequireFromString("0.5"),
			expected: 0,
		},
		{
			name:     "ceiling",
			detail:   "an enormous stake is clamped to the maximum discount",
			staked:   decimal.RequireFromString("1e20"),
			expected: 0.99,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := DiscountAmount(test.staked, logAccuracy, slope)
			require.NoError(t, err)
			require.InDelta(t, test.expected, got.InexactFloat64(), 1e-9)
		})
	}
}

func TestMul(t *testing.T) {
	got := Mul(decimal.RequireFromString("0.666666666666666666666666666667"), decimal.NewFromInt(3))
	require.Equal(t, "2.000000000000000000000000000001", got.String())
}
