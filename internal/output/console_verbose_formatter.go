package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/withholding-calculator/internal/domain"
)

// ConsoleVerboseFormatter renders every figure of every calculation,
// including the monthly breakdown of period payments.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console-verbose" }

func (c ConsoleVerboseFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "DETAILED WITHHOLDING CALCULATION REPORT")
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "Generated: %s\n", report.GeneratedAt.Format("02/01/2006 15:04:05"))
	}

	for i, e := range report.Entries {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "%d. %s\n", i+1, e.Scenario.Description())
		fmt.Fprintln(&buf, strings.Repeat("-", 60))
		writeCase(&buf, e.Case)
		if e.Outcome == nil {
			fmt.Fprintf(&buf, "  Error:               %s\n", e.Error)
			continue
		}
		writeOutcome(&buf, e.Outcome)
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "RULES APPLIED")
	fmt.Fprintln(&buf, strings.Repeat("-", 60))
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "  • %s\n", a)
	}
	return buf.Bytes(), nil
}

func writeCase(buf *bytes.Buffer, c domain.CaseInfo) {
	if c.CaseNumber != "" {
		fmt.Fprintf(buf, "  Case:                %s\n", FormatCaseNumber(c.CaseNumber))
	}
	if c.Claimant != "" {
		fmt.Fprintf(buf, "  Claimant:            %s\n", c.Claimant)
	}
	if c.Respondent != "" {
		fmt.Fprintf(buf, "  Respondent:          %s\n", c.Respondent)
	}
}

func writeOutcome(buf *bytes.Buffer, o *domain.CalculationOutcome) {
	row := func(label, value string) { fmt.Fprintf(buf, "  %-21s%s\n", label+":", value) }

	switch {
	case o.Fees != nil:
		r := o.Fees
		row("Gross", FormatCurrency(r.Gross))
		row("Income tax", FormatCurrency(r.Tax))
		row("Effective rate", FormatPercentage(r.EffectiveRate))
		row("Net", FormatCurrency(r.Net))
	case o.Amortized != nil:
		r := o.Amortized
		row("Months", intToString(r.Months))
		row("Gross", FormatCurrency(r.Gross))
		row("Tax base", FormatCurrency(r.Base))
		row("Monthly average", FormatCurrency(r.MonthlyAverage))
		row("Monthly tax", FormatCurrency(r.MonthlyTax))
		row("Total tax", FormatCurrency(r.TotalTax))
		row("Effective rate", FormatPercentage(r.EffectiveRate))
		row("Net", FormatCurrency(r.Net))
	case o.Period != nil:
		r := o.Period
		row("Period", fmt.Sprintf("%s to %s (%d months)", r.Start, r.End, r.Months))
		row("Gross", FormatCurrency(r.Gross))
		row("Corrected total", FormatCurrency(r.CorrectedTotal))
		row("Contribution", FormatCurrency(r.ContributionTotal))
		row("Monthly average", FormatCurrency(r.MonthlyAverage))
		row("Income tax", FormatCurrency(r.Tax))
		row("Effective rate", FormatPercentage(r.EffectiveRate))
		row("Net", FormatCurrency(r.Net))
		fmt.Fprintf(buf, "  %-9s %12s %8s %12s\n", "Month", "Corrected", "Rate", "Contrib.")
		for _, m := range r.Breakdown {
			fmt.Fprintf(buf, "  %-9s %12s %8s %12s\n", m.Month, FormatCurrency(m.CorrectedShare), FormatPercentage(m.Rate.Shift(2)), FormatCurrency(m.Contribution))
		}
	case o.FlatRate != nil:
		r := o.FlatRate
		row("Gross", FormatCurrency(r.Gross))
		row("Corrected", FormatCurrency(r.Corrected))
		row("Branch", r.BranchDescription)
		row("Rate", FormatPercentage(r.RatePercent))
		row("Withholding", FormatCurrency(r.Tax))
		row("Net", FormatCurrency(r.Net))
	}
}
