package calculation

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rpgo/withholding-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLogger captures log lines for assertions.
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) add(level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Debugf(format string, args ...any) { l.add("DEBUG", format, args...) }
func (l *recordingLogger) Infof(format string, args ...any)  { l.add("INFO", format, args...) }
func (l *recordingLogger) Warnf(format string, args ...any)  { l.add("WARN", format, args...) }
func (l *recordingLogger) Errorf(format string, args ...any) { l.add("ERROR", format, args...) }

func TestEngineRunDispatchesByScenario(t *testing.T) {
	engine := NewCalculationEngine()
	ctx := context.Background()

	tests := []struct {
		name     string
		request  domain.CalculationRequest
		withheld string
		net      string
	}{
		{
			name:     "Fees",
			request:  domain.CalculationRequest{Scenario: domain.ScenarioFees, Gross: decPtr("10000.00")},
			withheld: "1854.00",
			net:      "8146.00",
		},
		{
			name:     "Amortized",
			request:  domain.CalculationRequest{Scenario: domain.ScenarioAmortized, Months: 12, Gross: decPtr("60000.00"), Base: decPtr("60000.00")},
			withheld: "5748.00",
			net:      "54252.00",
		},
		{
			name:     "Period",
			request:  domain.CalculationRequest{Scenario: domain.ScenarioPeriod, Start: "03/2020", End: "01/2020", Gross: decPtr("9000.00")},
			withheld: "817.68", // 752.25 contribution + 65.43 tax
			net:      "8182.32",
		},
		{
			name:     "Flat rate",
			request:  domain.CalculationRequest{Scenario: domain.ScenarioFlatRate, Gross: decPtr("10000.00"), Corrected: decPtr("12000.00"), Branch: domain.BranchGeneral},
			withheld: "576.00",
			net:      "9424.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.request.CaseInfo = domain.CaseInfo{CaseNumber: "0001234-56.2020.5.04.0001"}
			outcome, err := engine.Run(ctx, tt.request)
			require.NoError(t, err)
			require.NotNil(t, outcome)
			require.NotNil(t, outcome.Result())
			assert.Equal(t, tt.request.Scenario, outcome.Scenario)
			assert.Equal(t, "0001234-56.2020.5.04.0001", outcome.Case.CaseNumber)

			_, withheld, net, _ := outcome.Totals()
			assert.Equal(t, tt.withheld, withheld.StringFixed(2))
			assert.Equal(t, tt.net, net.StringFixed(2))
		})
	}
}

func TestEngineRunRejectsIncompleteRequests(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &recordingLogger{}
	engine.SetLogger(logger)

	tests := []struct {
		name    string
		request domain.CalculationRequest
		kind    error
	}{
		{name: "Fees without gross", request: domain.CalculationRequest{Scenario: domain.ScenarioFees}, kind: ErrInvalidInput},
		{name: "Amortized without base", request: domain.CalculationRequest{Scenario: domain.ScenarioAmortized, Months: 2, Gross: decPtr("1")}, kind: ErrInvalidInput},
		{name: "Amortized with zero months", request: domain.CalculationRequest{Scenario: domain.ScenarioAmortized, Gross: decPtr("1"), Base: decPtr("1")}, kind: ErrInvalidPeriod},
		{name: "Period without gross", request: domain.CalculationRequest{Scenario: domain.ScenarioPeriod, Start: "01/2020", End: "01/2020"}, kind: ErrInvalidInput},
		{name: "Period with bad date", request: domain.CalculationRequest{Scenario: domain.ScenarioPeriod, Start: "13/2020", End: "01/2020", Gross: decPtr("1")}, kind: ErrMalformedDate},
		{name: "Flat rate with bad branch", request: domain.CalculationRequest{Scenario: domain.ScenarioFlatRate, Gross: decPtr("1"), Corrected: decPtr("1"), Branch: "9"}, kind: ErrInvalidBranchCode},
		{name: "Unknown scenario", request: domain.CalculationRequest{Scenario: "irpf", Gross: decPtr("1")}, kind: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := engine.Run(context.Background(), tt.request)
			assert.Nil(t, outcome)
			assert.ErrorIs(t, err, tt.kind)
		})
	}

	assert.NotEmpty(t, logger.lines)
}

func TestEngineRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCalculationEngine().Run(ctx, domain.CalculationRequest{Scenario: domain.ScenarioFees, Gross: decPtr("100")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngineRunBatchKeepsOrderAndIsolatesFailures(t *testing.T) {
	engine := NewCalculationEngine()

	var requests []domain.CalculationRequest
	for i := 0; i < 40; i++ {
		gross := fmt.Sprintf("%d.00", 3000+i*100)
		req := domain.CalculationRequest{Scenario: domain.ScenarioFees, Gross: decPtr(gross)}
		req.CaseNumber = fmt.Sprintf("case-%02d", i)
		if i%10 == 7 {
			req.Scenario = domain.ScenarioFlatRate
			req.Branch = "0"
			req.Corrected = decPtr("100")
		}
		requests = append(requests, req)
	}

	items := engine.RunBatch(context.Background(), requests)
	require.Len(t, items, len(requests))

	for i, item := range items {
		assert.Equal(t, fmt.Sprintf("case-%02d", i), item.Request.CaseNumber)
		if i%10 == 7 {
			assert.ErrorIs(t, item.Err, ErrInvalidBranchCode)
			assert.Nil(t, item.Outcome)
			continue
		}
		require.NoError(t, item.Err)
		require.NotNil(t, item.Outcome.Fees)

		standalone, err := NewFeeCalculator(nil).Calculate(domain.FeeRequest{Gross: *requests[i].Gross})
		require.NoError(t, err)
		assert.True(t, standalone.Tax.Equal(item.Outcome.Fees.Tax), "entry %d", i)
	}
}

func TestEngineSetLoggerNil(t *testing.T) {
	engine := NewCalculationEngine()
	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
}
