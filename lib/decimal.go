package lib

import (
	"github.com/shopspring/decimal"
)

/*
	This file is the single home of every rounding decision in the engine.
	Products and quotients are rounded half-away-from-zero to Precision decimal places,
	so chained swap math stays bounded in size and reproducible across nodes.
*/

// Precision is the number of decimal places kept after a multiplication or a division
const Precision int32 = 30

var (
	Zero        = decimal.Zero
	One         = decimal.NewFromInt(1)
	Hundred     = decimal.NewFromInt(100)
	MaxDiscount = decimal.RequireFromString("0.99") // the largest fraction of the fee a stake may waive
)

// Mul() multiplies two decimals rounded to Precision
func Mul(a, b decimal.Decimal) decimal.Decimal { return a.Mul(b).Round(Precision) }

// Quo() divides a by b rounded to Precision; a zero divisor is an error rather than a panic
func Quo(a, b decimal.Decimal) (decimal.Decimal, ErrorI) {
	if b.IsZero() {
		return Zero, ErrDivideByZero()
	}
	return a.DivRound(b, Precision), nil
}

// ParseDecimal() converts a user supplied string into a decimal
func ParseDecimal(s string) (decimal.Decimal, ErrorI) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, ErrInvalidDecimal(s)
	}
	return d, nil
}

// DiscountAmount() evaluates the staking discount curve:
//
//	discount = logAccuracy * (staked^(1/logAccuracy) - 1) * slope
//
// the result is clamped to [0, MaxDiscount]; a zero stake yields no discount
func DiscountAmount(staked, logAccuracy, slope decimal.Decimal) (decimal.Decimal, ErrorI) {
	if !staked.IsPositive() || !slope.IsPositive() {
		return Zero, nil
	}
	if !logAccuracy.IsPositive() {
		return Zero, ErrInvalidArgument()
	}
	// staked^(1/L) is evaluated as exp(ln(staked)/L)
	ln, err := staked.Ln(Precision)
	if err != nil {
		return Zero, ErrMathDomain(err)
	}
	exponent, e := Quo(ln, logAccuracy)
	if e != nil {
		return Zero, e
	}
	root, err := exponent.ExpTaylor(Precision)
	if err != nil {
		return Zero, ErrMathDomain(err)
	}
	discount := Mul(Mul(logAccuracy, root.Sub(One)), slope)
	switch {
	case discount.IsNegative():
		return Zero, nil
	case discount.GreaterThan(MaxDiscount):
		return MaxDiscount, nil
	}
	return discount, nil
}
