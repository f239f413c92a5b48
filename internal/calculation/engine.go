package calculation

import (
	"context"
	"sync"

	"github.com/rpgo/withholding-calculator/internal/domain"
)

// maxConcurrentCalculations bounds RunBatch fan-out.
const maxConcurrentCalculations = 8

// CalculationEngine dispatches requests to the four scenario calculators.
// All calculators share one read-only bracket table, so the engine is safe
// for concurrent use.
type CalculationEngine struct {
	Table     *BracketTable
	Fees      *FeeCalculator
	Amortized *AmortizedCalculator
	Period    *PeriodCalculator
	FlatRate  *FlatRateCalculator
	Logger    Logger
}

// NewCalculationEngine creates an engine over the default schedule.
func NewCalculationEngine() *CalculationEngine {
	table := DefaultBracketTable()
	return &CalculationEngine{
		Table:     table,
		Fees:      NewFeeCalculator(table),
		Amortized: NewAmortizedCalculator(table),
		Period:    NewPeriodCalculator(table),
		FlatRate:  NewFlatRateCalculator(),
		Logger:    NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// BatchItem is the result of one batch entry. Exactly one of Outcome and Err is set.
type BatchItem struct {
	Request domain.CalculationRequest
	Outcome *domain.CalculationOutcome
	Err     error
}

// Run evaluates a single tagged request.
func (ce *CalculationEngine) Run(ctx context.Context, req domain.CalculationRequest) (*domain.CalculationOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outcome := &domain.CalculationOutcome{Scenario: req.Scenario, Case: req.CaseInfo}
	var err error
	switch req.Scenario {
	case domain.ScenarioFees:
		if req.Gross == nil {
			return nil, newError(ErrInvalidInput, req.Scenario, "gross", "is required")
		}
		var r domain.FeeResult
		r, err = ce.Fees.Calculate(domain.FeeRequest{CaseInfo: req.CaseInfo, Gross: *req.Gross})
		outcome.Fees = &r
	case domain.ScenarioAmortized:
		if req.Gross == nil || req.Base == nil {
			return nil, newError(ErrInvalidInput, req.Scenario, "gross/base", "are required")
		}
		var r domain.AmortizedResult
		r, err = ce.Amortized.Calculate(domain.AmortizedRequest{CaseInfo: req.CaseInfo, Months: req.Months, Gross: *req.Gross, Base: *req.Base})
		outcome.Amortized = &r
	case domain.ScenarioPeriod:
		if req.Gross == nil {
			return nil, newError(ErrInvalidInput, req.Scenario, "gross", "is required")
		}
		var r domain.PeriodResult
		r, err = ce.Period.Calculate(domain.PeriodRequest{CaseInfo: req.CaseInfo, Start: req.Start, End: req.End, Gross: *req.Gross})
		outcome.Period = &r
	case domain.ScenarioFlatRate:
		var r domain.FlatRateResult
		r, err = ce.FlatRate.Calculate(domain.FlatRateRequest{CaseInfo: req.CaseInfo, Gross: req.Gross, Corrected: req.Corrected, Simplified: req.Simplified, Branch: req.Branch})
		outcome.FlatRate = &r
	default:
		return nil, newError(ErrInvalidInput, req.Scenario, "scenario", "unknown scenario %q", string(req.Scenario))
	}
	if err != nil {
		ce.Logger.Warnf("calculation rejected: case=%s %v", req.CaseNumber, err)
		return nil, err
	}

	gross, withheld, net, _ := outcome.Totals()
	ce.Logger.Debugf("calculated %s case=%s gross=%s withheld=%s net=%s", req.Scenario, req.CaseNumber, gross.StringFixed(2), withheld.StringFixed(2), net.StringFixed(2))
	return outcome, nil
}

// RunBatch evaluates every request concurrently and returns the items in input order.
// A failing entry does not affect the others.
func (ce *CalculationEngine) RunBatch(ctx context.Context, requests []domain.CalculationRequest) []BatchItem {
	items := make([]BatchItem, len(requests))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrentCalculations)

	for i, req := range requests {
		wg.Add(1)
		go func(idx int, req domain.CalculationRequest) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			outcome, err := ce.Run(ctx, req)
			items[idx] = BatchItem{Request: req, Outcome: outcome, Err: err}
		}(i, req)
	}

	wg.Wait()
	ce.Logger.Infof("batch finished: %d calculations", len(requests))
	return items
}
