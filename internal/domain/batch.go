package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculationRequest is one entry of a batch file. Only the fields relevant
// to Scenario are read; the rest are ignored.
type CalculationRequest struct {
	Scenario   ScenarioKind     `yaml:"scenario" json:"scenario"`
	CaseInfo   `yaml:",inline"`
	Gross      *decimal.Decimal `yaml:"gross,omitempty" json:"gross,omitempty"`
	Base       *decimal.Decimal `yaml:"base,omitempty" json:"base,omitempty"`
	Months     int              `yaml:"months,omitempty" json:"months,omitempty"`
	Start      string           `yaml:"start,omitempty" json:"start,omitempty"`
	End        string           `yaml:"end,omitempty" json:"end,omitempty"`
	Corrected  *decimal.Decimal `yaml:"corrected,omitempty" json:"corrected,omitempty"`
	Simplified bool             `yaml:"simplified,omitempty" json:"simplified,omitempty"`
	Branch     BranchCode       `yaml:"branch,omitempty" json:"branch,omitempty"`
}

// Batch is the top-level document of a batch input file.
type Batch struct {
	Calculations []CalculationRequest `yaml:"calculations" json:"calculations"`
}

// CalculationOutcome holds exactly one populated result, selected by Scenario.
type CalculationOutcome struct {
	Scenario  ScenarioKind     `json:"scenario"`
	Case      CaseInfo         `json:"case"`
	Fees      *FeeResult       `json:"honorarios,omitempty"`
	Amortized *AmortizedResult `json:"rra,omitempty"`
	Period    *PeriodResult    `json:"fepa,omitempty"`
	FlatRate  *FlatRateResult  `json:"pj,omitempty"`
}

// Result returns the populated scenario result, or nil.
func (o CalculationOutcome) Result() any {
	switch o.Scenario {
	case ScenarioFees:
		return o.Fees
	case ScenarioAmortized:
		return o.Amortized
	case ScenarioPeriod:
		return o.Period
	case ScenarioFlatRate:
		return o.FlatRate
	}
	return nil
}

// Totals returns the headline figures of the outcome. For period outcomes,
// withheld combines the contribution and the income tax.
func (o CalculationOutcome) Totals() (gross, withheld, net, rate decimal.Decimal) {
	switch {
	case o.Fees != nil:
		return o.Fees.Gross, o.Fees.Tax, o.Fees.Net, o.Fees.EffectiveRate
	case o.Amortized != nil:
		return o.Amortized.Gross, o.Amortized.TotalTax, o.Amortized.Net, o.Amortized.EffectiveRate
	case o.Period != nil:
		return o.Period.Gross, o.Period.ContributionTotal.Add(o.Period.Tax), o.Period.Net, o.Period.EffectiveRate
	case o.FlatRate != nil:
		return o.FlatRate.Gross, o.FlatRate.Tax, o.FlatRate.Net, o.FlatRate.RatePercent
	}
	return decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
}

// ReportEntry pairs a request's identity with its outcome or failure.
type ReportEntry struct {
	Scenario ScenarioKind        `json:"scenario"`
	Case     CaseInfo            `json:"case"`
	Outcome  *CalculationOutcome `json:"outcome,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// Report is what renderers receive.
type Report struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Entries     []ReportEntry `json:"entries"`
}
