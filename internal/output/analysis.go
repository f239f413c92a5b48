package output

import (
	"github.com/rpgo/withholding-calculator/internal/domain"
	"github.com/rpgo/withholding-calculator/pkg/money"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Summary aggregates the headline figures of a group of report entries.
// For period entries, Withheld includes the secondary contribution.
type Summary struct {
	Scenario domain.ScenarioKind
	Count    int
	Failed   int
	Gross    decimal.Decimal
	Withheld decimal.Decimal
	Net      decimal.Decimal
}

// Summarize totals every successful entry of the report.
func Summarize(report *domain.Report) Summary {
	return summarize("", report.Entries)
}

// SummarizeByScenario returns one summary per scenario present in the report,
// in the canonical scenario order.
func SummarizeByScenario(report *domain.Report) []Summary {
	groups := lo.GroupBy(report.Entries, func(e domain.ReportEntry) domain.ScenarioKind { return e.Scenario })
	present := lo.Filter(domain.ScenarioKinds(), func(k domain.ScenarioKind, _ int) bool { return len(groups[k]) > 0 })
	return lo.Map(present, func(k domain.ScenarioKind, _ int) Summary { return summarize(k, groups[k]) })
}

func summarize(kind domain.ScenarioKind, entries []domain.ReportEntry) Summary {
	outcomes := lo.FilterMap(entries, func(e domain.ReportEntry, _ int) (*domain.CalculationOutcome, bool) {
		return e.Outcome, e.Outcome != nil
	})
	type totals struct{ gross, withheld, net decimal.Decimal }
	figures := lo.Map(outcomes, func(o *domain.CalculationOutcome, _ int) totals {
		gross, withheld, net, _ := o.Totals()
		return totals{gross, withheld, net}
	})
	return Summary{
		Scenario: kind,
		Count:    len(entries),
		Failed:   len(entries) - len(outcomes),
		Gross:    money.Sum(lo.Map(figures, func(t totals, _ int) decimal.Decimal { return t.gross })...),
		Withheld: money.Sum(lo.Map(figures, func(t totals, _ int) decimal.Decimal { return t.withheld })...),
		Net:      money.Sum(lo.Map(figures, func(t totals, _ int) decimal.Decimal { return t.net })...),
	}
}
