package calculation

import (
	"time"

	"github.com/rpgo/withholding-calculator/internal/domain"
	"github.com/rpgo/withholding-calculator/pkg/dateutil"
	"github.com/rpgo/withholding-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

var (
	// CorrectionFactor converts a nominal monthly share into the corrected basis.
	CorrectionFactor = decimal.RequireFromString("0.85")

	contributionRateLegacy  = decimal.RequireFromString("0.11")
	contributionRateCurrent = decimal.RequireFromString("0.075")

	// contributionCutover is the last month charged at the legacy rate.
	contributionCutover = dateutil.YearMonth{Year: 2020, Month: time.February}
)

// ContributionRate returns the secondary contribution rate for a competence month:
// 11% up to and including 02/2020, 7.5% afterwards.
func ContributionRate(month dateutil.YearMonth) decimal.Decimal {
	if month.After(contributionCutover) {
		return contributionRateCurrent
	}
	return contributionRateLegacy
}

// PeriodCalculator spreads a gross amount over a competence period, charges the
// secondary contribution month by month and taxes the corrected total as an
// amortized payment.
type PeriodCalculator struct {
	Table *BracketTable
}

// NewPeriodCalculator creates a period calculator over the given schedule (the default when nil).
func NewPeriodCalculator(table *BracketTable) *PeriodCalculator {
	if table == nil {
		table = DefaultBracketTable()
	}
	return &PeriodCalculator{Table: table}
}

// Calculate computes contribution, tax and net for the period. The endpoints
// may be given in either order.
func (pc *PeriodCalculator) Calculate(req domain.PeriodRequest) (domain.PeriodResult, error) {
	start, err := dateutil.ParseMonthYear(req.Start)
	if err != nil {
		return domain.PeriodResult{}, newError(ErrMalformedDate, domain.ScenarioPeriod, "start", "%v", err)
	}
	end, err := dateutil.ParseMonthYear(req.End)
	if err != nil {
		return domain.PeriodResult{}, newError(ErrMalformedDate, domain.ScenarioPeriod, "end", "%v", err)
	}
	start, end = dateutil.Ordered(start, end)

	months := dateutil.MonthRange(start, end)
	if len(months) == 0 {
		return domain.PeriodResult{}, newError(ErrInvalidPeriod, domain.ScenarioPeriod, "", "no months between %s and %s", start, end)
	}

	share := money.DivInt(req.Gross, len(months))
	// each month is rounded on its own before summing
	corrected := money.Cents(share.Mul(CorrectionFactor))

	breakdown := make([]domain.MonthlyContribution, 0, len(months))
	correctedTotal := decimal.Zero
	contributionTotal := decimal.Zero
	for _, m := range months {
		rate := ContributionRate(m)
		contribution := money.Cents(corrected.Mul(rate))
		correctedTotal = correctedTotal.Add(corrected)
		contributionTotal = contributionTotal.Add(contribution)
		breakdown = append(breakdown, domain.MonthlyContribution{
			Month:          m.String(),
			CorrectedShare: corrected,
			Rate:           rate,
			Contribution:   contribution,
		})
	}
	correctedTotal = money.Cents(correctedTotal)
	contributionTotal = money.Cents(contributionTotal)

	amortized := pc.Table.Amortize(correctedTotal, len(months))

	return domain.PeriodResult{
		CaseInfo:          req.CaseInfo,
		Start:             start.String(),
		End:               end.String(),
		Months:            len(months),
		Gross:             money.Cents(req.Gross),
		CorrectedTotal:    correctedTotal,
		ContributionTotal: contributionTotal,
		MonthlyAverage:    money.Cents(amortized.MonthlyAverage),
		Tax:               amortized.TotalTax,
		EffectiveRate:     amortized.EffectiveRate,
		Net:               money.Cents(req.Gross.Sub(contributionTotal).Sub(amortized.TotalTax)),
		Breakdown:         breakdown,
	}, nil
}
