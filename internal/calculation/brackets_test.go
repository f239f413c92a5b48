package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// TestProgressiveTax tests the monthly schedule across every bracket
func TestProgressiveTax(t *testing.T) {
	table := DefaultBracketTable()

	tests := []struct {
		name         string
		base         string
		expectedTax  string
		expectedRate string
		description  string
	}{
		{
			name:         "Zero base",
			base:         "0",
			expectedTax:  "0.00",
			expectedRate: "0.00",
			description:  "Effective rate is defined as zero for a zero base",
		},
		{
			name:         "Exempt bracket",
			base:         "1500.00",
			expectedTax:  "0.00",
			expectedRate: "0.00",
			description:  "Below the first threshold nothing is due",
		},
		{
			name:         "Just above first threshold",
			base:         "2259.21",
			expectedTax:  "0.00",
			expectedRate: "0.00",
			description:  "2259.21*0.075-169.44 rounds to zero",
		},
		{
			name:         "Second bracket",
			base:         "2550.00",
			expectedTax:  "21.81",
			expectedRate: "0.86",
			description:  "2550*0.075-169.44",
		},
		{
			name:         "Third bracket",
			base:         "3333.3333333333",
			expectedTax:  "118.56",
			expectedRate: "3.56",
			description:  "3333.33..*0.15-381.44",
		},
		{
			name:         "Fourth bracket",
			base:         "4000.00",
			expectedTax:  "237.23",
			expectedRate: "5.93",
			description:  "4000*0.225-662.77",
		},
		{
			name:         "Top bracket",
			base:         "10000.00",
			expectedTax:  "1854.00",
			expectedRate: "18.54",
			description:  "10000*0.275-896",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, rate := table.ProgressiveTax(dec(tt.base))
			assert.Equal(t, tt.expectedTax, tax.StringFixed(2), tt.description)
			assert.Equal(t, tt.expectedRate, rate.StringFixed(2), tt.description)
		})
	}
}

func TestProgressiveTaxZeroAtOrBelowFirstThreshold(t *testing.T) {
	table := DefaultBracketTable()
	for _, base := range []string{"0", "0.01", "100", "1000.50", "2000", "2259.19", "2259.20"} {
		tax, rate := table.ProgressiveTax(dec(base))
		assert.True(t, tax.IsZero(), "tax on %s should be zero, got %s", base, tax)
		assert.True(t, rate.IsZero(), "rate on %s should be zero, got %s", base, rate)
	}
}

func TestProgressiveTaxAboveTopThreshold(t *testing.T) {
	table := DefaultBracketTable()
	for _, base := range []string{"4664.69", "5000", "7500.55", "12345.67", "1000000"} {
		b := dec(base)
		expected := b.Mul(dec("0.275")).Sub(dec("896")).Round(2)
		tax, _ := table.ProgressiveTax(b)
		assert.True(t, expected.Equal(tax), "base %s: expected %s got %s", base, expected, tax)
	}
}

// TestSelectBoundaries tests that a base on a threshold stays in the lower bracket
func TestSelectBoundaries(t *testing.T) {
	table := DefaultBracketTable()
	rows := table.Rows()
	thresholds := table.Thresholds()
	require.Len(t, thresholds, 4)

	for i, threshold := range thresholds {
		row := table.Select(threshold)
		assert.True(t, rows[i].Rate.Equal(row.Rate), "threshold %s should use rate %s, got %s", threshold, rows[i].Rate, row.Rate)
		assert.True(t, rows[i].Deduction.Equal(row.Deduction))

		above := table.Select(threshold.Add(dec("0.01")))
		assert.True(t, rows[i+1].Rate.Equal(above.Rate), "just above %s should use rate %s", threshold, rows[i+1].Rate)
	}

	// the two formulas differ in cents only at the top threshold
	tax, _ := table.ProgressiveTax(dec("4664.68"))
	assert.Equal(t, "386.78", tax.StringFixed(2))
}

func TestProgressiveTaxClampsNegative(t *testing.T) {
	table, err := newBracketTable(
		BracketRow{UpperBound: dec("1000"), Rate: dec("0"), Deduction: dec("0")},
		BracketRow{Rate: dec("0.10"), Deduction: dec("150")},
	)
	require.NoError(t, err)

	tax, rate := table.ProgressiveTax(dec("1200"))
	assert.True(t, tax.IsZero(), "1200*0.10-150 is negative and must clamp to zero")
	assert.True(t, rate.IsZero())
}

func TestNewBracketTableValidation(t *testing.T) {
	_, err := newBracketTable()
	assert.Error(t, err)

	_, err = newBracketTable(
		BracketRow{UpperBound: dec("2000")},
		BracketRow{UpperBound: dec("1000"), Rate: dec("0.1")},
		BracketRow{Rate: dec("0.2")},
	)
	assert.Error(t, err)
}

func TestRowsReturnsCopy(t *testing.T) {
	table := DefaultBracketTable()
	rows := table.Rows()
	rows[0].Rate = dec("0.99")
	assert.True(t, table.Rows()[0].Rate.IsZero(), "mutating a copy must not change the shared table")
}
