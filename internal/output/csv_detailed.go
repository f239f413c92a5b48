package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/withholding-calculator/internal/domain"
)

// CSVDetailedExporter writes one row per figure: name/value pairs per calculation,
// and one row per month for period payments.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Entry", "Scenario", "CaseNumber", "Field", "Month", "Value"}); err != nil {
		return nil, err
	}
	for i, e := range report.Entries {
		prefix := []string{intToString(i + 1), string(e.Scenario), e.Case.CaseNumber}
		write := func(field, month, value string) error {
			return w.Write(append(append([]string(nil), prefix...), field, month, value))
		}
		if e.Outcome == nil {
			if err := write("error", "", e.Error); err != nil {
				return nil, err
			}
			continue
		}
		for _, f := range outcomeFields(e.Outcome) {
			if err := write(f[0], "", f[1]); err != nil {
				return nil, err
			}
		}
		if p := e.Outcome.Period; p != nil {
			for _, m := range p.Breakdown {
				if err := write("corrected_share", m.Month, m.CorrectedShare.StringFixed(2)); err != nil {
					return nil, err
				}
				if err := write("contribution", m.Month, m.Contribution.StringFixed(2)); err != nil {
					return nil, err
				}
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// outcomeFields lists the scalar figures of an outcome as name/value pairs.
func outcomeFields(o *domain.CalculationOutcome) [][2]string {
	switch {
	case o.Fees != nil:
		r := o.Fees
		return [][2]string{
			{"gross", r.Gross.StringFixed(2)},
			{"tax", r.Tax.StringFixed(2)},
			{"effective_rate", r.EffectiveRate.StringFixed(2)},
			{"net", r.Net.StringFixed(2)},
		}
	case o.Amortized != nil:
		r := o.Amortized
		return [][2]string{
			{"months", intToString(r.Months)},
			{"gross", r.Gross.StringFixed(2)},
			{"base", r.Base.StringFixed(2)},
			{"monthly_average", r.MonthlyAverage.StringFixed(2)},
			{"monthly_tax", r.MonthlyTax.StringFixed(2)},
			{"total_tax", r.TotalTax.StringFixed(2)},
			{"effective_rate", r.EffectiveRate.StringFixed(2)},
			{"net", r.Net.StringFixed(2)},
		}
	case o.Period != nil:
		r := o.Period
		return [][2]string{
			{"start", r.Start},
			{"end", r.End},
			{"months", intToString(r.Months)},
			{"gross", r.Gross.StringFixed(2)},
			{"corrected_total", r.CorrectedTotal.StringFixed(2)},
			{"contribution_total", r.ContributionTotal.StringFixed(2)},
			{"monthly_average", r.MonthlyAverage.StringFixed(2)},
			{"tax", r.Tax.StringFixed(2)},
			{"effective_rate", r.EffectiveRate.StringFixed(2)},
			{"net", r.Net.StringFixed(2)},
		}
	case o.FlatRate != nil:
		r := o.FlatRate
		return [][2]string{
			{"gross", r.Gross.StringFixed(2)},
			{"corrected", r.Corrected.StringFixed(2)},
			{"simplified", boolToString(r.Simplified)},
			{"branch", string(r.Branch)},
			{"rate", r.RatePercent.StringFixed(2)},
			{"tax", r.Tax.StringFixed(2)},
			{"net", r.Net.StringFixed(2)},
		}
	}
	return nil
}
