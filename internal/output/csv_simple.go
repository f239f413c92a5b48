package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/withholding-calculator/internal/domain"
	"github.com/samber/lo"
)

// CSVSummarizer implements the simple summary CSV output (one row per calculation).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "CaseNumber", "Claimant", "Respondent", "Gross", "Withheld", "Net", "EffectiveRate", "Error"}
	rows := lo.Map(report.Entries, func(e domain.ReportEntry, _ int) []string {
		row := []string{string(e.Scenario), e.Case.CaseNumber, e.Case.Claimant, e.Case.Respondent, "", "", "", "", e.Error}
		if e.Outcome != nil {
			gross, withheld, net, rate := e.Outcome.Totals()
			row[4], row[5], row[6], row[7] = gross.StringFixed(2), withheld.StringFixed(2), net.StringFixed(2), rate.StringFixed(2)
		}
		return row
	})
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
