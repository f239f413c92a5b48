package output

import (
	"fmt"
	"io"
	"time"

	"github.com/rpgo/withholding-calculator/internal/calculation"
	"github.com/rpgo/withholding-calculator/internal/domain"
	"github.com/samber/lo"
)

// BuildReport turns engine batch items into a report, keeping their order.
func BuildReport(items []calculation.BatchItem, generatedAt time.Time) *domain.Report {
	return &domain.Report{
		GeneratedAt: generatedAt,
		Entries: lo.Map(items, func(item calculation.BatchItem, _ int) domain.ReportEntry {
			entry := domain.ReportEntry{Scenario: item.Request.Scenario, Case: item.Request.CaseInfo, Outcome: item.Outcome}
			if item.Err != nil {
				entry.Error = item.Err.Error()
			}
			return entry
		}),
	}
}

// SingleReport wraps one outcome into a report.
func SingleReport(outcome *domain.CalculationOutcome, generatedAt time.Time) *domain.Report {
	return &domain.Report{
		GeneratedAt: generatedAt,
		Entries:     []domain.ReportEntry{{Scenario: outcome.Scenario, Case: outcome.Case, Outcome: outcome}},
	}
}

// Render formats the report with the named formatter and writes it to w.
func Render(w io.Writer, report *domain.Report, format string) error {
	f, err := LookupFormatter(format)
	if err != nil {
		return err
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// GenerateReport writes the report to a timestamped file in dir and returns its path.
func GenerateReport(report *domain.Report, format, dir string) (string, error) {
	f, err := LookupFormatter(format)
	if err != nil {
		return "", err
	}
	return WriteFormatted(f, report, dir, FileExtension(f.Name()))
}
