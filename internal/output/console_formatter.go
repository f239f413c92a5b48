package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/withholding-calculator/internal/domain"
)

// ConsoleFormatter provides a concise one-line-per-calculation summary.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "WITHHOLDING SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for i, e := range report.Entries {
		label := caseLabel(e.Case, i)
		if e.Outcome == nil {
			fmt.Fprintf(&buf, "%s [%s]: ERROR %s\n", label, e.Scenario, e.Error)
			continue
		}
		gross, withheld, net, rate := e.Outcome.Totals()
		fmt.Fprintf(&buf, "%s [%s]: Gross=%s Withheld=%s Net=%s Rate=%s\n",
			label, e.Scenario,
			FormatCurrency(gross),
			FormatCurrency(withheld),
			FormatCurrency(net),
			FormatPercentage(rate),
		)
	}
	if len(report.Entries) > 1 {
		s := Summarize(report)
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Total (%d ok, %d failed): Gross=%s Withheld=%s Net=%s\n",
			s.Count-s.Failed, s.Failed, FormatCurrency(s.Gross), FormatCurrency(s.Withheld), FormatCurrency(s.Net))
	}
	return buf.Bytes(), nil
}

func caseLabel(c domain.CaseInfo, idx int) string {
	if c.CaseNumber == "" {
		return fmt.Sprintf("#%d", idx+1)
	}
	return FormatCaseNumber(c.CaseNumber)
}
