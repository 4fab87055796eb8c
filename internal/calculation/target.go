package calculation

import (
	"github.com/ctcplan/ctc-planner/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// MaxSimulationMonths caps the month-by-month simulation at 1000 years.
	MaxSimulationMonths = 12000

	// netWorthPlaces bounds the decimal representation of net worth while compounding.
	netWorthPlaces = 8
)

// SimulationState is the running balance for one CTC point
type SimulationState struct {
	NetWorth      decimal.Decimal
	MonthsElapsed int
}

// TargetSimulator answers "how many months until savings reach the target" for one CTC
type TargetSimulator struct {
	TaxCalc *TaxCalculator
	Logger  Logger
}

// NewTargetSimulator creates a simulator backed by the given tax calculator
func NewTargetSimulator(taxCalc *TaxCalculator, logger Logger) *TargetSimulator {
	if logger == nil {
		logger = NopLogger{}
	}
	return &TargetSimulator{TaxCalc: taxCalc, Logger: logger}
}

// Simulate runs the time-to-target policy for a single annual CTC.
//
// Order of checks:
//  1. expense + SIP above monthly take-home: unreachable
//  2. current investments less lumpsum already at target: already met
//  3. no inflow and no growth: unreachable
//  4. monthly loop (growth, then SIP, then net savings) until the target is crossed,
//     stopping as unreachable on stagnation or after MaxSimulationMonths.
func (ts *TargetSimulator) Simulate(annualCTC decimal.Decimal, params domain.TimeToTargetParams) domain.TimeToTarget {
	takeHome := ts.TaxCalc.ComputeTakeHome(annualCTC)
	monthlyNetSavings := takeHome.MonthlyTakeHome.Sub(params.MonthlyExpense)

	if params.MonthlyExpense.Add(params.MonthlySIPAmount).GreaterThan(takeHome.MonthlyTakeHome) {
		ts.Logger.Debugf("ctc %s: expense %s + sip %s exceeds monthly take-home %s",
			annualCTC.StringFixed(2), params.MonthlyExpense.StringFixed(2), params.MonthlySIPAmount.StringFixed(2), takeHome.MonthlyTakeHome.StringFixed(2))
		return domain.Unreachable(domain.ReasonOutflowsExceedIncome)
	}

	state := SimulationState{NetWorth: params.CurrentInvestments.Sub(params.LumpsumExpenses)}
	if state.NetWorth.GreaterThanOrEqual(params.TargetAmount) {
		return domain.AlreadyMet()
	}

	monthlyInflow := monthlyNetSavings.Add(params.MonthlySIPAmount)
	growing := params.AnnualSIPGrowthRate.GreaterThan(decimal.Zero)
	if monthlyInflow.LessThanOrEqual(decimal.Zero) && !growing {
		ts.Logger.Debugf("ctc %s: no monthly inflow and no growth", annualCTC.StringFixed(2))
		return domain.Unreachable(domain.ReasonNoGrowth)
	}

	growthFactor := decimal.NewFromInt(1)
	if growing {
		growthFactor = growthFactor.Add(params.AnnualSIPGrowthRate.Div(monthsPerYear))
	}

	for state.MonthsElapsed < MaxSimulationMonths {
		previous := state.NetWorth

		if growing {
			state.NetWorth = state.NetWorth.Mul(growthFactor)
		}
		state.NetWorth = state.NetWorth.
			Add(params.MonthlySIPAmount).
			Add(monthlyNetSavings).
			Round(netWorthPlaces)
		state.MonthsElapsed++

		if state.NetWorth.GreaterThanOrEqual(params.TargetAmount) {
			return domain.ReachedIn(state.MonthsElapsed)
		}
		if state.NetWorth.LessThanOrEqual(previous) {
			ts.Logger.Debugf("ctc %s: net worth stagnated at %s after %d months",
				annualCTC.StringFixed(2), state.NetWorth.StringFixed(2), state.MonthsElapsed)
			return domain.Unreachable(domain.ReasonStagnated)
		}
	}

	ts.Logger.Debugf("ctc %s: target not reached within %d months", annualCTC.StringFixed(2), MaxSimulationMonths)
	return domain.Unreachable(domain.ReasonHorizonExceeded)
}
