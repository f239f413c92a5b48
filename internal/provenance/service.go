package provenance

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rpgo/withholding-calculator/internal/calculation"
	"github.com/rpgo/withholding-calculator/internal/domain"
	"github.com/samber/lo"
)

// Receipt is the result of a recorded calculation. RecordErr is set when the
// calculation succeeded but could not be persisted; Outcome is unaffected.
type Receipt struct {
	Outcome   *domain.CalculationOutcome
	RecordID  string
	RecordErr error
}

// Service computes calculations and records them.
type Service struct {
	engine   *calculation.CalculationEngine
	recorder Recorder
	actors   ActorSource
	newID    func() string
}

// NewService creates a service. A nil recorder disables persistence; a nil
// actor source attributes records to "anonymous".
func NewService(engine *calculation.CalculationEngine, recorder Recorder, actors ActorSource) *Service {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	if actors == nil {
		actors = StaticActor("anonymous")
	}
	return &Service{
		engine:   engine,
		recorder: recorder,
		actors:   actors,
		newID:    newRecordID,
	}
}

// Calculate runs one request and records the outcome. Calculation errors are
// returned as err; persistence failures only populate Receipt.RecordErr.
func (s *Service) Calculate(ctx context.Context, req domain.CalculationRequest) (Receipt, error) {
	outcome, err := s.engine.Run(ctx, req)
	if err != nil {
		return Receipt{}, err
	}
	receipt := Receipt{Outcome: outcome}
	if s.recorder == nil {
		return receipt, nil
	}

	receipt.RecordID, receipt.RecordErr = s.record(ctx, outcome)
	if receipt.RecordErr != nil {
		s.engine.Logger.Errorf("failed to record %s calculation for case %s: %v", outcome.Scenario, outcome.Case.CaseNumber, receipt.RecordErr)
	}
	return receipt, nil
}

// CalculateBatch runs a batch through the engine and records every successful
// outcome. Items keep their input order.
func (s *Service) CalculateBatch(ctx context.Context, reqs []domain.CalculationRequest) ([]calculation.BatchItem, []Receipt) {
	items := s.engine.RunBatch(ctx, reqs)
	receipts := lo.Map(items, func(item calculation.BatchItem, _ int) Receipt {
		if item.Err != nil {
			return Receipt{}
		}
		r := Receipt{Outcome: item.Outcome}
		if s.recorder != nil {
			r.RecordID, r.RecordErr = s.record(ctx, item.Outcome)
			if r.RecordErr != nil {
				s.engine.Logger.Errorf("failed to record %s calculation for case %s: %v", item.Outcome.Scenario, item.Outcome.Case.CaseNumber, r.RecordErr)
			}
		}
		return r
	})
	return items, receipts
}

// History returns the recorded calculations for a case number fragment.
func (s *Service) History(ctx context.Context, fragment string) ([]Record, error) {
	if s.recorder == nil {
		return nil, fmt.Errorf("calculation history is not configured")
	}
	return s.recorder.FindByCaseNumber(ctx, fragment)
}

func (s *Service) record(ctx context.Context, outcome *domain.CalculationOutcome) (string, error) {
	actor, err := s.actors.Actor(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve actor: %w", err)
	}
	payload, err := json.Marshal(outcome.Result())
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	rec := Record{
		ID:         s.newID(),
		CaseNumber: outcome.Case.CaseNumber,
		Scenario:   outcome.Scenario,
		Actor:      actor,
		ResultJSON: string(payload),
	}
	if err := s.recorder.Save(ctx, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}
