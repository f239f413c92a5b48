package output

import (
	"testing"

	"github.com/rpgo/withholding-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	s := Summarize(buildTestReport(t))
	assert.Equal(t, 5, s.Count)
	assert.Equal(t, 1, s.Failed)
	// 10000 + 60000 + 9000 + 10000
	assert.Equal(t, "89000.00", s.Gross.StringFixed(2))
	// 1854 + 5748 + 817.68 + 576
	assert.Equal(t, "8995.68", s.Withheld.StringFixed(2))
	assert.Equal(t, "80004.32", s.Net.StringFixed(2))
}

func TestSummarizeByScenario(t *testing.T) {
	summaries := SummarizeByScenario(buildTestReport(t))
	require.Len(t, summaries, 4)
	assert.Equal(t, domain.ScenarioFees, summaries[0].Scenario)
	assert.Equal(t, domain.ScenarioFlatRate, summaries[3].Scenario)
	assert.Equal(t, 2, summaries[3].Count)
	assert.Equal(t, 1, summaries[3].Failed)
	assert.Equal(t, "576.00", summaries[3].Withheld.StringFixed(2))
}

func TestSummarizeEmptyReport(t *testing.T) {
	assert.Empty(t, SummarizeByScenario(&domain.Report{}))
	s := Summarize(&domain.Report{})
	assert.True(t, s.Gross.IsZero())
}

func TestGenerateAssumptions(t *testing.T) {
	require.NotEmpty(t, DefaultAssumptions)
	assert.Equal(t, "Up to 2259.20: 0.00%, deduction 0.00", DefaultAssumptions[0])
	assert.Contains(t, DefaultAssumptions, "Above 4664.68: 27.50%, deduction 896.00")
}
