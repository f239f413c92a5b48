package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rpgo/withholding-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBatch = `calculations:
  - scenario: honorarios
    case_number: "00012345620205040001"
    claimant: "Maria Silva"
    respondent: "ACME Ltda"
    gross: 10000.00
  - scenario: RRA
    case_number: "00012345620205040002"
    months: 12
    gross: 60000.00
    base: 60000.00
  - scenario: fepa
    start: "03/2020"
    end: "01/2020"
    gross: 9000.00
  - scenario: pj
    gross: 10000.00
    corrected: 12000.00
    branch: "2"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func dptr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	parser := NewInputParser()
	batch, err := parser.LoadFromFile(writeTemp(t, sampleBatch))
	require.NoError(t, err)
	require.Len(t, batch.Calculations, 4)

	fees := batch.Calculations[0]
	assert.Equal(t, domain.ScenarioFees, fees.Scenario)
	assert.Equal(t, "00012345620205040001", fees.CaseNumber)
	assert.Equal(t, "Maria Silva", fees.Claimant)
	assert.Equal(t, "ACME Ltda", fees.Respondent)
	require.NotNil(t, fees.Gross)
	assert.Equal(t, "10000.00", fees.Gross.StringFixed(2))

	rra := batch.Calculations[1]
	assert.Equal(t, domain.ScenarioAmortized, rra.Scenario, "tags are normalized")
	assert.Equal(t, 12, rra.Months)
	require.NotNil(t, rra.Base)

	fepa := batch.Calculations[2]
	assert.Equal(t, "03/2020", fepa.Start)
	assert.Equal(t, "01/2020", fepa.End)

	pj := batch.Calculations[3]
	assert.Equal(t, domain.BranchLiberalProfession, pj.Branch)
	assert.False(t, pj.Simplified)
	require.NotNil(t, pj.Corrected)
	assert.Equal(t, "12000.00", pj.Corrected.StringFixed(2))
}

func TestLoadFromFile_JSON(t *testing.T) {
	doc := `{"calculations": [{"scenario": "honorarios", "gross": "2500.50"}]}`
	batch, err := NewInputParser().LoadFromFile(writeTemp(t, doc))
	require.NoError(t, err)
	require.Len(t, batch.Calculations, 1)
	assert.Equal(t, "2500.50", batch.Calculations[0].Gross.StringFixed(2))
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	batch, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, batch)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	batch, err := NewInputParser().LoadFromFile(writeTemp(t, "calculations: [\n  - scenario: fees\n"))
	assert.Error(t, err)
	assert.Nil(t, batch)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidateBatch_Empty(t *testing.T) {
	err := NewInputParser().ValidateBatch(&domain.Batch{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no calculations provided")
}

func TestValidateRequest(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name        string
		request     domain.CalculationRequest
		expectError string
	}{
		{
			name:    "Valid fees",
			request: domain.CalculationRequest{Scenario: "honorarios", Gross: dptr("0")},
		},
		{
			name:        "Unknown scenario",
			request:     domain.CalculationRequest{Scenario: "irpf", Gross: dptr("1")},
			expectError: "unknown scenario",
		},
		{
			name:        "Missing gross",
			request:     domain.CalculationRequest{Scenario: domain.ScenarioFees},
			expectError: "gross is required",
		},
		{
			name:        "Negative gross",
			request:     domain.CalculationRequest{Scenario: domain.ScenarioFees, Gross: dptr("-0.01")},
			expectError: "gross cannot be negative",
		},
		{
			name:        "Amortized zero months",
			request:     domain.CalculationRequest{Scenario: domain.ScenarioAmortized, Gross: dptr("1"), Base: dptr("1")},
			expectError: "months must be at least 1",
		},
		{
			name:        "Amortized zero base",
			request:     domain.CalculationRequest{Scenario: domain.ScenarioAmortized, Months: 3, Gross: dptr("1"), Base: dptr("0")},
			expectError: "base must be positive",
		},
		{
			name:        "Period malformed start",
			request:     domain.CalculationRequest{Scenario: domain.ScenarioPeriod, Gross: dptr("1"), Start: "2020/01", End: "02/2020"},
			expectError: "start:",
		},
		{
			name:        "Period missing end",
			request:     domain.CalculationRequest{Scenario: domain.ScenarioPeriod, Gross: dptr("1"), Start: "01/2020"},
			expectError: "end:",
		},
		{
			name:        "Flat rate without corrected",
			request:     domain.CalculationRequest{Scenario: domain.ScenarioFlatRate, Gross: dptr("1"), Branch: domain.BranchGeneral},
			expectError: "corrected must be positive",
		},
		{
			name:        "Flat rate unknown branch",
			request:     domain.CalculationRequest{Scenario: domain.ScenarioFlatRate, Gross: dptr("1"), Corrected: dptr("1"), Branch: "7"},
			expectError: "unknown branch code",
		},
		{
			name:    "Flat rate simplified ignores branch",
			request: domain.CalculationRequest{Scenario: domain.ScenarioFlatRate, Gross: dptr("1"), Corrected: dptr("1"), Simplified: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.request
			err := parser.ValidateRequest(&req)
			if tt.expectError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestValidateBatch_ReportsPosition(t *testing.T) {
	batch := &domain.Batch{Calculations: []domain.CalculationRequest{
		{Scenario: domain.ScenarioFees, Gross: dptr("1")},
		{Scenario: domain.ScenarioFees, CaseInfo: domain.CaseInfo{CaseNumber: "777"}, Gross: dptr("-1")},
	}}
	err := NewInputParser().ValidateBatch(batch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calculation 1 (777)")
}
