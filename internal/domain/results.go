package domain

import (
	"github.com/shopspring/decimal"
)

// FeeResult is the outcome of a single-period fee calculation.
type FeeResult struct {
	CaseInfo
	Gross         decimal.Decimal `json:"gross"`
	Tax           decimal.Decimal `json:"tax"`
	Net           decimal.Decimal `json:"net"`
	EffectiveRate decimal.Decimal `json:"effective_rate"` // percent
}

// AmortizedResult is the outcome of an amortized calculation.
type AmortizedResult struct {
	CaseInfo
	Months         int             `json:"months"`
	Gross          decimal.Decimal `json:"gross"`
	Base           decimal.Decimal `json:"base"`
	MonthlyAverage decimal.Decimal `json:"monthly_average"` // rounded for display only
	MonthlyTax     decimal.Decimal `json:"monthly_tax"`
	TotalTax       decimal.Decimal `json:"total_tax"`
	EffectiveRate  decimal.Decimal `json:"effective_rate"`
	Net            decimal.Decimal `json:"net"`
}

// MonthlyContribution is one month of a period calculation.
type MonthlyContribution struct {
	Month          string          `json:"month"`
	CorrectedShare decimal.Decimal `json:"corrected_share"`
	Rate           decimal.Decimal `json:"rate"`
	Contribution   decimal.Decimal `json:"contribution"`
}

// PeriodResult is the outcome of a period contribution calculation.
// Start and End are the normalized (chronological) endpoints.
type PeriodResult struct {
	CaseInfo
	Start             string                `json:"start"`
	End               string                `json:"end"`
	Months            int                   `json:"months"`
	Gross             decimal.Decimal       `json:"gross"`
	CorrectedTotal    decimal.Decimal       `json:"corrected_total"`
	ContributionTotal decimal.Decimal       `json:"contribution_total"`
	MonthlyAverage    decimal.Decimal       `json:"monthly_average"`
	Tax               decimal.Decimal       `json:"tax"`
	EffectiveRate     decimal.Decimal       `json:"effective_rate"`
	Net               decimal.Decimal       `json:"net"`
	Breakdown         []MonthlyContribution `json:"breakdown"`
}

// FlatRateResult is the outcome of a corporate withholding calculation.
type FlatRateResult struct {
	CaseInfo
	Gross             decimal.Decimal `json:"gross"`
	Corrected         decimal.Decimal `json:"corrected"`
	Simplified        bool            `json:"simplified"`
	Branch            BranchCode      `json:"branch,omitempty"`
	BranchDescription string          `json:"branch_description"`
	RatePercent       decimal.Decimal `json:"rate_percent"`
	Tax               decimal.Decimal `json:"tax"`
	Net               decimal.Decimal `json:"net"`
}
