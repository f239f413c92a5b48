package calculation

import (
	"github.com/rpgo/withholding-calculator/internal/domain"
	"github.com/rpgo/withholding-calculator/pkg/money"
)

// FeeCalculator applies the progressive schedule directly to a single-period fee.
type FeeCalculator struct {
	Table *BracketTable
}

// NewFeeCalculator creates a fee calculator over the given schedule (the default when nil).
func NewFeeCalculator(table *BracketTable) *FeeCalculator {
	if table == nil {
		table = DefaultBracketTable()
	}
	return &FeeCalculator{Table: table}
}

// Calculate computes tax and net for a fee payment. Gross is expected to be
// non-negative; that precondition is checked by the caller.
func (fc *FeeCalculator) Calculate(req domain.FeeRequest) (domain.FeeResult, error) {
	tax, rate := fc.Table.ProgressiveTax(req.Gross)
	return domain.FeeResult{
		CaseInfo:      req.CaseInfo,
		Gross:         req.Gross,
		Tax:           tax,
		Net:           money.Cents(req.Gross.Sub(tax)),
		EffectiveRate: rate,
	}, nil
}
