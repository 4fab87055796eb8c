package calculation

import (
	"testing"

	"github.com/ctcplan/ctc-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func targetParams(monthlyExpense, target int64) domain.TimeToTargetParams {
	return domain.TimeToTargetParams{
		MonthlyExpense: decimal.NewFromInt(monthlyExpense),
		TargetAmount:   decimal.NewFromInt(target),
	}
}

// TestSimulateTimeToTarget covers each branch of the months-to-target policy
func TestSimulateTimeToTarget(t *testing.T) {
	sim := NewTargetSimulator(NewTaxCalculator(), nil)

	tests := []struct {
		name     string
		ctc      int64
		params   func() domain.TimeToTargetParams
		expected domain.TimeToTarget
	}{
		{
			name: "Target already met",
			ctc:  1000000,
			params: func() domain.TimeToTargetParams {
				p := targetParams(20000, 500000)
				p.CurrentInvestments = decimal.NewFromInt(600000)
				return p
			},
			expected: domain.AlreadyMet(),
		},
		{
			name:     "Basic accumulation",
			ctc:      1200000,
			params:   func() domain.TimeToTargetParams { return targetParams(30000, 1000000) },
			expected: domain.ReachedIn(15), // 1,000,000 / 70,000 = 14.3
		},
		{
			name: "With current investments",
			ctc:  1200000,
			params: func() domain.TimeToTargetParams {
				p := targetParams(30000, 1000000)
				p.CurrentInvestments = decimal.NewFromInt(200000)
				return p
			},
			expected: domain.ReachedIn(12),
		},
		{
			name: "Lumpsum expense reduces starting net worth",
			ctc:  1200000,
			params: func() domain.TimeToTargetParams {
				p := targetParams(30000, 1000000)
				p.CurrentInvestments = decimal.NewFromInt(200000)
				p.LumpsumExpenses = decimal.NewFromInt(50000)
				return p
			},
			expected: domain.ReachedIn(13),
		},
		{
			name: "SIP without growth",
			ctc:  1200000,
			params: func() domain.TimeToTargetParams {
				p := targetParams(30000, 1000000)
				p.MonthlySIPAmount = decimal.NewFromInt(10000)
				return p
			},
			expected: domain.ReachedIn(13),
		},
		{
			name: "SIP with growth",
			ctc:  1200000,
			params: func() domain.TimeToTargetParams {
				p := targetParams(50000, 500000)
				p.CurrentInvestments = decimal.NewFromInt(50000)
				p.MonthlySIPAmount = decimal.NewFromInt(10000)
				p.AnnualSIPGrowthRate = decimal.NewFromFloat(0.12)
				return p
			},
			expected: domain.ReachedIn(8),
		},
		{
			name:     "Expenses exceed income",
			ctc:      1000000,
			params:   func() domain.TimeToTargetParams { return targetParams(90000, 1000000) },
			expected: domain.Unreachable(domain.ReasonOutflowsExceedIncome),
		},
		{
			name: "SIP plus expenses exceed income",
			ctc:  1000000,
			params: func() domain.TimeToTargetParams {
				p := targetParams(70000, 1000000)
				p.MonthlySIPAmount = decimal.NewFromInt(15000)
				return p
			},
			expected: domain.Unreachable(domain.ReasonOutflowsExceedIncome),
		},
		{
			name: "Net savings strictly zero without growth",
			ctc:  1200000,
			params: func() domain.TimeToTargetParams {
				p := targetParams(100000, 1000000)
				p.CurrentInvestments = decimal.NewFromInt(100000)
				return p
			},
			expected: domain.Unreachable(domain.ReasonNoGrowth),
		},
		{
			name: "Net savings a fraction of a rupee hits the horizon",
			ctc:  1000000,
			params: func() domain.TimeToTargetParams {
				p := targetParams(83333, 1000000)
				p.CurrentInvestments = decimal.NewFromInt(100000)
				return p
			},
			expected: domain.Unreachable(domain.ReasonHorizonExceeded),
		},
		{
			name: "Growth on a negative balance stagnates",
			ctc:  1200000,
			params: func() domain.TimeToTargetParams {
				p := targetParams(100000, 1000)
				p.LumpsumExpenses = decimal.NewFromInt(100000)
				p.AnnualSIPGrowthRate = decimal.NewFromFloat(0.12)
				return p
			},
			expected: domain.Unreachable(domain.ReasonStagnated),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sim.Simulate(decimal.NewFromInt(tt.ctc), tt.params())
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSimulateTimeToTarget_GrowthOnlyReachesTarget(t *testing.T) {
	sim := NewTargetSimulator(NewTaxCalculator(), nil)
	p := targetParams(100000, 110000) // zero net savings
	p.CurrentInvestments = decimal.NewFromInt(100000)
	p.AnnualSIPGrowthRate = decimal.NewFromFloat(0.12)

	got := sim.Simulate(decimal.NewFromInt(1200000), p)
	// 100000 * 1.01^n >= 110000 first holds at n = 10
	assert.Equal(t, domain.ReachedIn(10), got)
}

func TestSimulateTimeToTarget_OutflowCheckIgnoresCapital(t *testing.T) {
	sim := NewTargetSimulator(NewTaxCalculator(), nil)
	p := targetParams(90000, 1000)
	p.CurrentInvestments = decimal.NewFromInt(1000000000)

	got := sim.Simulate(decimal.NewFromInt(1000000), p)
	assert.True(t, got.IsUnreachable())
	_, ok := got.MonthCount()
	assert.False(t, ok)
}

func TestTimeToTargetForRange(t *testing.T) {
	engine := NewCalculationEngine()

	t.Run("single point already met", func(t *testing.T) {
		p := targetParams(20000, 500000)
		p.CurrentInvestments = decimal.NewFromInt(600000)
		spec := domain.RangeSpec{Min: decimal.NewFromInt(1000000), Max: decimal.NewFromInt(1000000), Step: decimal.NewFromInt(100000)}

		points := engine.TimeToTargetForRange(spec, p)
		require.Len(t, points, 1)
		n, ok := points[0].Metric.MonthCount()
		assert.True(t, ok)
		assert.Equal(t, 0, n)
		assert.Equal(t, domain.OutcomeAlreadyMet, points[0].Metric.Kind)
	})

	t.Run("default increment applied", func(t *testing.T) {
		spec := domain.RangeSpec{Min: decimal.NewFromInt(1000000), Max: decimal.NewFromInt(2000000)}
		points := engine.TimeToTargetForRange(spec, targetParams(30000, 1000000))
		require.Len(t, points, 3)
		for i := 1; i < len(points); i++ {
			prev, _ := points[i-1].Metric.MonthCount()
			cur, _ := points[i].Metric.MonthCount()
			assert.LessOrEqual(t, cur, prev, "a higher CTC should not take longer")
		}
	})

	t.Run("non-positive target is empty", func(t *testing.T) {
		spec := domain.RangeSpec{Min: decimal.NewFromInt(1000000), Max: decimal.NewFromInt(2000000)}
		assert.Empty(t, engine.TimeToTargetForRange(spec, targetParams(30000, 0)))
	})

	t.Run("negative expense is empty", func(t *testing.T) {
		spec := domain.RangeSpec{Min: decimal.NewFromInt(1000000), Max: decimal.NewFromInt(2000000)}
		assert.Empty(t, engine.TimeToTargetForRange(spec, targetParams(-1, 1000000)))
	})

	t.Run("min above max is empty", func(t *testing.T) {
		spec := domain.RangeSpec{Min: decimal.NewFromInt(2000000), Max: decimal.NewFromInt(1000000)}
		assert.Empty(t, engine.TimeToTargetForRange(spec, targetParams(30000, 1000000)))
	})
}
