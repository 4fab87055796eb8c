package calculation

import (
	"github.com/ctcplan/ctc-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates the take-home, savings, time-to-target and CTC inversion calculations.
// It holds no per-request state and is safe for concurrent use once constructed.
type CalculationEngine struct {
	TaxCalc   *TaxCalculator
	TargetSim *TargetSimulator
	Logger    Logger
}

// NewCalculationEngine creates a calculation engine for the reference policy
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithPolicy(domain.DefaultTaxPolicy())
}

// NewCalculationEngineWithPolicy creates a calculation engine for a loaded policy
func NewCalculationEngineWithPolicy(policy domain.TaxPolicy) *CalculationEngine {
	taxCalc := NewTaxCalculatorWithPolicy(policy)
	logger := NopLogger{}
	return &CalculationEngine{
		TaxCalc:   taxCalc,
		TargetSim: NewTargetSimulator(taxCalc, logger),
		Logger:    logger,
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
	ce.TargetSim.Logger = l
}

// Policy returns the slab policy the engine evaluates.
func (ce *CalculationEngine) Policy() domain.TaxPolicy {
	return ce.TaxCalc.Policy
}

// ComputeTax calculates tax on taxable income (after the standard deduction)
func (ce *CalculationEngine) ComputeTax(taxableIncome decimal.Decimal) decimal.Decimal {
	return ce.TaxCalc.ComputeTax(taxableIncome)
}

// ComputeTakeHome calculates net pay for a gross annual CTC
func (ce *CalculationEngine) ComputeTakeHome(grossCTC decimal.Decimal) domain.TakeHomeResult {
	return ce.TaxCalc.ComputeTakeHome(grossCTC)
}

// ComputeSavings calculates savings for a CTC given an annual or monthly expense
func (ce *CalculationEngine) ComputeSavings(annualCTC decimal.Decimal, expense domain.Expense) domain.SavingsResult {
	return ce.TaxCalc.ComputeSavings(annualCTC, expense)
}

// SavingsForRange sweeps a CTC range and reports monthly savings at each point.
// A negative expense or an invalid range yields an empty result.
func (ce *CalculationEngine) SavingsForRange(spec domain.RangeSpec, monthlyExpense decimal.Decimal) []domain.ProjectionPoint[decimal.Decimal] {
	if monthlyExpense.IsNegative() {
		return []domain.ProjectionPoint[decimal.Decimal]{}
	}
	return SweepRange(spec.WithDefaultStep(), ce.TaxCalc.MonthlySavings(monthlyExpense))
}

// SimulateTimeToTarget computes months-to-target for a single CTC
func (ce *CalculationEngine) SimulateTimeToTarget(annualCTC decimal.Decimal, params domain.TimeToTargetParams) domain.TimeToTarget {
	return ce.TargetSim.Simulate(annualCTC, params)
}

// TimeToTargetForRange sweeps a CTC range and simulates months-to-target at each point.
// A negative expense, a non-positive target or an invalid range yields an empty result.
func (ce *CalculationEngine) TimeToTargetForRange(spec domain.RangeSpec, params domain.TimeToTargetParams) []domain.ProjectionPoint[domain.TimeToTarget] {
	if params.MonthlyExpense.IsNegative() || params.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return []domain.ProjectionPoint[domain.TimeToTarget]{}
	}
	return SweepRange(spec.WithDefaultStep(), func(ctc decimal.Decimal) domain.TimeToTarget {
		return ce.TargetSim.Simulate(ctc, params)
	})
}

// InvertTakeHome estimates the annual CTC required for a desired yearly take-home
func (ce *CalculationEngine) InvertTakeHome(desiredYearlyTakeHome decimal.Decimal) domain.CTCEstimate {
	est := ce.TaxCalc.InvertTakeHome(desiredYearlyTakeHome)
	if est.Message != "" {
		ce.Logger.Infof("ctc inversion for %s: %s (best %s after %d iterations)",
			desiredYearlyTakeHome.StringFixed(2), est.Message, est.RequiredAnnualCTC.StringFixed(2), est.Iterations)
	}
	return est
}

// BuildRangeReport combines take-home, savings and (optionally) time-to-target for every CTC in a range.
func (ce *CalculationEngine) BuildRangeReport(spec domain.RangeSpec, monthlyExpense decimal.Decimal, target *domain.TimeToTargetParams) *domain.RangeReport {
	spec = spec.WithDefaultStep()
	report := &domain.RangeReport{
		PolicyName:     ce.TaxCalc.Policy.Name,
		Range:          spec,
		MonthlyExpense: monthlyExpense,
		Target:         target,
		Assumptions:    PolicyAssumptions(ce.TaxCalc.Policy),
	}

	var params domain.TimeToTargetParams
	if target != nil {
		params = *target
		params.MonthlyExpense = monthlyExpense
	}
	points := SweepRange(spec, func(ctc decimal.Decimal) domain.RangeRow {
		th := ce.TaxCalc.ComputeTakeHome(ctc)
		row := domain.RangeRow{
			AnnualCTC:       ctc,
			YearlyTax:       th.YearlyTaxPayable,
			YearlyTakeHome:  th.YearlyTakeHome,
			MonthlyTakeHome: th.MonthlyTakeHome,
			MonthlySavings:  th.MonthlyTakeHome.Sub(monthlyExpense),
		}
		if target != nil && params.TargetAmount.IsPositive() {
			ttt := ce.TargetSim.Simulate(ctc, params)
			row.TimeToTarget = &ttt
		}
		return row
	})

	report.Rows = make([]domain.RangeRow, 0, len(points))
	for _, p := range points {
		report.Rows = append(report.Rows, p.Metric)
	}
	ce.Logger.Debugf("range report: %d rows for %s..%s step %s", len(report.Rows),
		spec.Min.StringFixed(0), spec.Max.StringFixed(0), spec.Step.StringFixed(0))
	return report
}

// FindRebateCliff locates the rebate cliff and the CTC where take-home recovers from it
func (ce *CalculationEngine) FindRebateCliff() (domain.RebateCliff, bool) {
	return ce.TaxCalc.FindRebateCliff()
}
