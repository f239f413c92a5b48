package domain

import (
	"github.com/shopspring/decimal"
)

// FeeRequest asks for withholding on a single-period fee payment.
// Gross must be non-negative; callers validate that.
type FeeRequest struct {
	CaseInfo `yaml:",inline"`
	Gross    decimal.Decimal `yaml:"gross" json:"gross"`
}

// AmortizedRequest asks for withholding on a lump sum averaged over Months.
// Gross is the payout; Base is the (possibly different) taxable amount.
type AmortizedRequest struct {
	CaseInfo `yaml:",inline"`
	Months   int             `yaml:"months" json:"months"`
	Gross    decimal.Decimal `yaml:"gross" json:"gross"`
	Base     decimal.Decimal `yaml:"base" json:"base"`
}

// PeriodRequest asks for contribution and withholding over an inclusive
// competence period given as "MM/YYYY" endpoints in either order.
type PeriodRequest struct {
	CaseInfo `yaml:",inline"`
	Start    string          `yaml:"start" json:"start"`
	End      string          `yaml:"end" json:"end"`
	Gross    decimal.Decimal `yaml:"gross" json:"gross"`
}

// FlatRateRequest asks for corporate flat-rate withholding.
// Branch is only consulted when Simplified is false.
type FlatRateRequest struct {
	CaseInfo   `yaml:",inline"`
	Gross      *decimal.Decimal `yaml:"gross" json:"gross"`
	Corrected  *decimal.Decimal `yaml:"corrected" json:"corrected"`
	Simplified bool             `yaml:"simplified" json:"simplified"`
	Branch     BranchCode       `yaml:"branch,omitempty" json:"branch,omitempty"`
}
