package config

import (
	"fmt"
	"os"

	"github.com/rpgo/withholding-calculator/internal/domain"
	"github.com/rpgo/withholding-calculator/pkg/dateutil"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of batch input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a batch from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Batch, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a batch document
func (ip *InputParser) Parse(data []byte) (*domain.Batch, error) {
	var batch domain.Batch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateBatch(&batch); err != nil {
		return nil, fmt.Errorf("batch validation failed: %w", err)
	}

	return &batch, nil
}

// ValidateBatch checks the preconditions the calculators leave to the caller.
// Scenario tags are normalized in place.
func (ip *InputParser) ValidateBatch(batch *domain.Batch) error {
	if len(batch.Calculations) == 0 {
		return fmt.Errorf("no calculations provided")
	}

	for i := range batch.Calculations {
		req := &batch.Calculations[i]
		if err := ip.ValidateRequest(req); err != nil {
			label := req.CaseNumber
			if label == "" {
				label = string(req.Scenario)
			}
			return fmt.Errorf("calculation %d (%s) validation failed: %w", i, label, err)
		}
	}

	return nil
}

// ValidateRequest validates a single calculation request
func (ip *InputParser) ValidateRequest(req *domain.CalculationRequest) error {
	kind, err := domain.ParseScenarioKind(string(req.Scenario))
	if err != nil {
		return err
	}
	req.Scenario = kind

	if req.Gross == nil {
		return fmt.Errorf("gross is required")
	}
	if req.Gross.IsNegative() {
		return fmt.Errorf("gross cannot be negative")
	}

	switch kind {
	case domain.ScenarioFees:
		return nil
	case domain.ScenarioAmortized:
		return ip.validateAmortized(req)
	case domain.ScenarioPeriod:
		return ip.validatePeriod(req)
	case domain.ScenarioFlatRate:
		return ip.validateFlatRate(req)
	}
	return nil
}

func (ip *InputParser) validateAmortized(req *domain.CalculationRequest) error {
	if req.Months < 1 {
		return fmt.Errorf("months must be at least 1")
	}
	if req.Base == nil || req.Base.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("base must be positive")
	}
	return nil
}

func (ip *InputParser) validatePeriod(req *domain.CalculationRequest) error {
	if _, err := dateutil.ParseMonthYear(req.Start); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if _, err := dateutil.ParseMonthYear(req.End); err != nil {
		return fmt.Errorf("end: %w", err)
	}
	return nil
}

func (ip *InputParser) validateFlatRate(req *domain.CalculationRequest) error {
	if req.Corrected == nil || req.Corrected.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("corrected must be positive")
	}
	// the branch is irrelevant under the simplified regime
	if req.Simplified {
		return nil
	}
	if !lo.Contains(domain.BranchCodes(), req.Branch) {
		return fmt.Errorf("unknown branch code %q (expected one of %v)", req.Branch, domain.BranchCodes())
	}
	return nil
}
