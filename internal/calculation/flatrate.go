package calculation

import (
	"github.com/rpgo/withholding-calculator/internal/domain"
	"github.com/rpgo/withholding-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

const simplifiedDescription = "Simplified regime (exempt)"

// BranchRate returns the flat withholding rate and description for an activity branch.
func BranchRate(code domain.BranchCode) (decimal.Decimal, string, error) {
	switch code {
	case domain.BranchGeneral:
		return decimal.RequireFromString("0.048"), "General activity (4.8%)", nil
	case domain.BranchLiberalProfession:
		return decimal.RequireFromString("0.015"), "Liberal profession (1.5%)", nil
	case domain.BranchLaborAssignment:
		return decimal.RequireFromString("0.01"), "Labor assignment (1.0%)", nil
	}
	return decimal.Zero, "", newError(ErrInvalidBranchCode, domain.ScenarioFlatRate, "branch", "unknown code %q", string(code))
}

// FlatRateCalculator applies corporate flat-rate withholding.
type FlatRateCalculator struct{}

// NewFlatRateCalculator creates a flat-rate calculator.
func NewFlatRateCalculator() *FlatRateCalculator {
	return &FlatRateCalculator{}
}

// Calculate computes withholding on the corrected amount. Payees under the
// simplified regime are exempt and receive the corrected amount in full.
func (fc *FlatRateCalculator) Calculate(req domain.FlatRateRequest) (domain.FlatRateResult, error) {
	if req.Gross == nil {
		return domain.FlatRateResult{}, newError(ErrInvalidInput, domain.ScenarioFlatRate, "gross", "is required")
	}
	if req.Corrected == nil || !req.Corrected.IsPositive() {
		return domain.FlatRateResult{}, newError(ErrInvalidInput, domain.ScenarioFlatRate, "corrected", "must be positive")
	}

	gross := money.Cents(*req.Gross)
	corrected := money.Cents(*req.Corrected)

	if req.Simplified {
		return domain.FlatRateResult{
			CaseInfo:          req.CaseInfo,
			Gross:             gross,
			Corrected:         corrected,
			Simplified:        true,
			BranchDescription: simplifiedDescription,
			RatePercent:       decimal.Zero,
			Tax:               decimal.Zero,
			Net:               corrected,
		}, nil
	}

	rate, description, err := BranchRate(req.Branch)
	if err != nil {
		return domain.FlatRateResult{}, err
	}
	tax := money.Cents(corrected.Mul(rate))

	return domain.FlatRateResult{
		CaseInfo:          req.CaseInfo,
		Gross:             gross,
		Corrected:         corrected,
		Branch:            req.Branch,
		BranchDescription: description,
		RatePercent:       money.RateToPercent(rate),
		Tax:               tax,
		Net:               money.Cents(gross.Sub(tax)),
	}, nil
}
