package calculation

import (
	"testing"

	"github.com/ctcplan/ctc-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRebateCliff_ReferencePolicy(t *testing.T) {
	cliff, ok := NewCalculationEngine().FindRebateCliff()
	require.True(t, ok)

	assert.True(t, cliff.CliffCTC.Equal(decimal.NewFromInt(1200000)))
	assert.True(t, cliff.TakeHomeAtCliff.Equal(decimal.NewFromInt(1200000)))
	// One paisa above the threshold the full 55,000 of slab tax is due
	assert.InDelta(t, 54999.99, cliff.DropJustAbove.InexactFloat64(), 0.001)
	// 0.85 * taxable + 170,000 = 1,200,000 in the 15% slab
	assert.InDelta(t, 1261764.71, cliff.RecoveryCTC.InexactFloat64(), 0.02)

	calc := NewTaxCalculator()
	assert.True(t, calc.ComputeTakeHome(cliff.RecoveryCTC).YearlyTakeHome.GreaterThanOrEqual(cliff.TakeHomeAtCliff))
	assert.True(t, calc.ComputeTakeHome(cliff.RecoveryCTC.Sub(decimal.NewFromInt(1))).YearlyTakeHome.LessThan(cliff.TakeHomeAtCliff))
}

func TestFindRebateCliff_NoRebate(t *testing.T) {
	policy := domain.DefaultTaxPolicy()
	policy.RebateLimit = decimal.Zero

	_, ok := NewCalculationEngineWithPolicy(policy).FindRebateCliff()
	assert.False(t, ok)
}

func TestFindRebateCliff_ThresholdInZeroSlab(t *testing.T) {
	policy := domain.DefaultTaxPolicy()
	policy.RebateTaxableIncomeThreshold = decimal.NewFromInt(300000)

	_, ok := NewCalculationEngineWithPolicy(policy).FindRebateCliff()
	assert.False(t, ok, "no slab tax at the threshold means no drop")
}
