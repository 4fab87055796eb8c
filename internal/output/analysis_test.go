package output

import (
	"testing"

	"github.com/ctcplan/ctc-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeRange(t *testing.T) {
	summary := AnalyzeRange(buildTestReport())

	require.NotNil(t, summary.BreakEven)
	assert.True(t, summary.BreakEven.AnnualCTC.Equal(decimal.NewFromInt(900000)))
	require.NotNil(t, summary.FirstReachable)
	assert.True(t, summary.FirstReachable.AnnualCTC.Equal(decimal.NewFromInt(900000)))
	require.NotNil(t, summary.Fastest)
	assert.True(t, summary.Fastest.AnnualCTC.Equal(decimal.NewFromInt(1200000)))
	assert.Empty(t, summary.CliffRows)
}

func TestAnalyzeRange_NoTarget(t *testing.T) {
	report := buildTestReport()
	for i := range report.Rows {
		report.Rows[i].TimeToTarget = nil
	}
	summary := AnalyzeRange(report)
	assert.Nil(t, summary.FirstReachable)
	assert.Nil(t, summary.Fastest)
}

func TestAnalyzeRange_AlreadyMetCountsAsFastest(t *testing.T) {
	report := buildTestReport()
	report.Rows[1].TimeToTarget = ttt(domain.AlreadyMet())
	summary := AnalyzeRange(report)
	require.NotNil(t, summary.Fastest)
	assert.True(t, summary.Fastest.AnnualCTC.Equal(decimal.NewFromInt(900000)))
}
