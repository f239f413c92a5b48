package calculation

import (
	"github.com/rpgo/withholding-calculator/internal/domain"
	"github.com/rpgo/withholding-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// AmortizedTax is the tax on a lump sum spread over months.
type AmortizedTax struct {
	MonthlyAverage decimal.Decimal // full DivisionScale precision
	MonthlyTax     decimal.Decimal
	TotalTax       decimal.Decimal
	EffectiveRate  decimal.Decimal
}

// AmortizedCalculator taxes a lump sum at the rate of its monthly average.
type AmortizedCalculator struct {
	Table *BracketTable
}

// NewAmortizedCalculator creates an amortized calculator over the given schedule (the default when nil).
func NewAmortizedCalculator(table *BracketTable) *AmortizedCalculator {
	if table == nil {
		table = DefaultBracketTable()
	}
	return &AmortizedCalculator{Table: table}
}

// Calculate computes the amortized withholding. Base is averaged over the
// months; Gross is the payout the tax is subtracted from.
func (ac *AmortizedCalculator) Calculate(req domain.AmortizedRequest) (domain.AmortizedResult, error) {
	if req.Months < 1 {
		return domain.AmortizedResult{}, newError(ErrInvalidPeriod, domain.ScenarioAmortized, "months", "must be at least 1, got %d", req.Months)
	}
	if !req.Base.IsPositive() {
		return domain.AmortizedResult{}, newError(ErrInvalidInput, domain.ScenarioAmortized, "base", "must be positive, got %s", req.Base)
	}

	gross := money.Cents(req.Gross)
	base := money.Cents(req.Base)
	amortized := ac.Table.Amortize(base, req.Months)

	return domain.AmortizedResult{
		CaseInfo:       req.CaseInfo,
		Months:         req.Months,
		Gross:          gross,
		Base:           base,
		MonthlyAverage: money.Cents(amortized.MonthlyAverage),
		MonthlyTax:     amortized.MonthlyTax,
		TotalTax:       amortized.TotalTax,
		EffectiveRate:  amortized.EffectiveRate,
		Net:            money.Cents(gross.Sub(amortized.TotalTax)),
	}, nil
}

// Amortize averages base over months, taxes the average and scales the tax back up.
// Only the final total is rounded to cents. months must be at least 1.
func (t *BracketTable) Amortize(base decimal.Decimal, months int) AmortizedTax {
	n := decimal.NewFromInt(int64(months))
	average := money.DivInt(base, months)
	monthlyTax, _ := t.ProgressiveTax(average)
	total := money.Cents(monthlyTax.Mul(n))
	return AmortizedTax{
		MonthlyAverage: average,
		MonthlyTax:     monthlyTax,
		TotalTax:       total,
		EffectiveRate:  EffectiveRate(total, base),
	}
}
