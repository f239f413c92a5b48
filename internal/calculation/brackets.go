package calculation

import (
	"fmt"

	"github.com/rpgo/withholding-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// BracketRow is one row of the progressive monthly schedule.
// UpperBound is inclusive; it is ignored on the last (open-ended) row.
type BracketRow struct {
	UpperBound decimal.Decimal
	Rate       decimal.Decimal
	Deduction  decimal.Decimal
}

// BracketTable is an immutable progressive schedule ordered by UpperBound.
type BracketTable struct {
	rows []BracketRow
}

// defaultTable is the monthly schedule shared by every calculator. Built once, never mutated.
var defaultTable = mustBracketTable(
	BracketRow{UpperBound: decimal.RequireFromString("2259.20"), Rate: decimal.Zero, Deduction: decimal.Zero},
	BracketRow{UpperBound: decimal.RequireFromString("2826.65"), Rate: decimal.RequireFromString("0.075"), Deduction: decimal.RequireFromString("169.44")},
	BracketRow{UpperBound: decimal.RequireFromString("3751.05"), Rate: decimal.RequireFromString("0.15"), Deduction: decimal.RequireFromString("381.44")},
	BracketRow{UpperBound: decimal.RequireFromString("4664.68"), Rate: decimal.RequireFromString("0.225"), Deduction: decimal.RequireFromString("662.77")},
	BracketRow{Rate: decimal.RequireFromString("0.275"), Deduction: decimal.RequireFromString("896")},
)

// DefaultBracketTable returns the shared monthly schedule.
func DefaultBracketTable() *BracketTable {
	return defaultTable
}

func newBracketTable(rows ...BracketRow) (*BracketTable, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("bracket table needs at least one row")
	}
	for i := 1; i < len(rows)-1; i++ {
		if !rows[i].UpperBound.GreaterThan(rows[i-1].UpperBound) {
			return nil, fmt.Errorf("bracket %d upper bound %s is not above %s", i, rows[i].UpperBound, rows[i-1].UpperBound)
		}
	}
	return &BracketTable{rows: append([]BracketRow(nil), rows...)}, nil
}

func mustBracketTable(rows ...BracketRow) *BracketTable {
	t, err := newBracketTable(rows...)
	if err != nil {
		panic(err)
	}
	return t
}

// Rows returns a copy of the schedule.
func (t *BracketTable) Rows() []BracketRow {
	return append([]BracketRow(nil), t.rows...)
}

// Thresholds returns the inclusive upper bounds of every bounded row.
func (t *BracketTable) Thresholds() []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(t.rows)-1)
	for _, r := range t.rows[:len(t.rows)-1] {
		out = append(out, r.UpperBound)
	}
	return out
}

// Select returns the first row whose upper bound is at least base, or the top row.
// A base exactly on a threshold belongs to the lower row.
func (t *BracketTable) Select(base decimal.Decimal) BracketRow {
	last := len(t.rows) - 1
	for _, r := range t.rows[:last] {
		if base.LessThanOrEqual(r.UpperBound) {
			return r
		}
	}
	return t.rows[last]
}

// ProgressiveTax returns the monthly tax on base (cents) and the effective rate in percent.
func (t *BracketTable) ProgressiveTax(base decimal.Decimal) (tax, effectiveRate decimal.Decimal) {
	row := t.Select(base)
	// the lower edge of a bracket can come out slightly negative
	tax = money.Cents(money.ClampZero(base.Mul(row.Rate).Sub(row.Deduction)))
	return tax, EffectiveRate(tax, base)
}

// EffectiveRate is tax/base*100 rounded to cents, zero for a zero base.
func EffectiveRate(tax, base decimal.Decimal) decimal.Decimal {
	return money.Percent(tax, base)
}
