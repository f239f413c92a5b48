// Package money holds the rounding rules shared by every withholding calculation.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DivisionScale is the number of fractional digits kept by intermediate divisions
// (per-month averages, effective-rate ratios) before any cent rounding happens.
const DivisionScale int32 = 10

var hundred = decimal.NewFromInt(100)

// Cents rounds an amount to two decimal places, half away from zero.
func Cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Div divides a by b keeping DivisionScale fractional digits.
// b must not be zero.
func Div(a, b decimal.Decimal) decimal.Decimal {
	return a.DivRound(b, DivisionScale)
}

// DivInt divides a by an integer count keeping DivisionScale fractional digits.
func DivInt(a decimal.Decimal, n int) decimal.Decimal {
	return Div(a, decimal.NewFromInt(int64(n)))
}

// Percent returns part/whole*100 rounded to cents. It is zero when whole is zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return Cents(Div(part, whole).Mul(hundred))
}

// RateToPercent converts a fractional rate (0.048) to its percentage form (4.80).
func RateToPercent(rate decimal.Decimal) decimal.Decimal {
	return Cents(rate.Mul(hundred))
}

// ClampZero returns d, or zero when d is negative.
func ClampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Parse reads a decimal amount. A comma is accepted as the decimal separator
// when no dot is present ("1234,56").
func Parse(value string) (decimal.Decimal, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	return d, nil
}

// Sum adds all amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
