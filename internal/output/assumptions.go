package output

import (
	"fmt"

	"github.com/rpgo/withholding-calculator/internal/calculation"
	"github.com/rpgo/withholding-calculator/internal/domain"
)

// DefaultAssumptions lists the rules applied by the calculators, rendered in detailed outputs.
var DefaultAssumptions = GenerateAssumptions(calculation.DefaultBracketTable())

// GenerateAssumptions describes the monthly schedule and the fixed rates.
func GenerateAssumptions(table *calculation.BracketTable) []string {
	var lines []string
	lower := "0.00"
	rows := table.Rows()
	for i, row := range rows {
		if i == len(rows)-1 {
			lines = append(lines, fmt.Sprintf("Above %s: %s, deduction %s", lower, FormatPercentage(row.Rate.Shift(2)), FormatCurrency(row.Deduction)))
			break
		}
		lines = append(lines, fmt.Sprintf("Up to %s: %s, deduction %s", FormatCurrency(row.UpperBound), FormatPercentage(row.Rate.Shift(2)), FormatCurrency(row.Deduction)))
		lower = FormatCurrency(row.UpperBound)
	}

	lines = append(lines,
		fmt.Sprintf("Period payments: monthly share corrected by %s", calculation.CorrectionFactor.String()),
		"Period contribution: 11% up to 02/2020, 7.5% from 03/2020",
	)
	for _, code := range domain.BranchCodes() {
		if _, desc, err := calculation.BranchRate(code); err == nil {
			lines = append(lines, fmt.Sprintf("Corporate branch %s: %s", code, desc))
		}
	}
	lines = append(lines, "Amounts rounded to cents, half away from zero")
	return lines
}
