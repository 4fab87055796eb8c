package calculation

import (
	"github.com/ctcplan/ctc-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeSavings subtracts an annual or monthly expense from the take-home for a CTC
func (tc *TaxCalculator) ComputeSavings(annualCTC decimal.Decimal, expense domain.Expense) domain.SavingsResult {
	takeHome := tc.ComputeTakeHome(annualCTC)
	yearlySavings := takeHome.YearlyTakeHome.Sub(expense.Yearly())

	return domain.SavingsResult{
		YearlySavings:   yearlySavings,
		MonthlySavings:  yearlySavings.Div(monthsPerYear),
		YearlyTakeHome:  takeHome.YearlyTakeHome,
		MonthlyTakeHome: takeHome.MonthlyTakeHome,
	}
}

// MonthlySavings is the per-CTC evaluator used by savings range sweeps.
func (tc *TaxCalculator) MonthlySavings(monthlyExpense decimal.Decimal) func(decimal.Decimal) decimal.Decimal {
	return func(ctc decimal.Decimal) decimal.Decimal {
		return tc.ComputeTakeHome(ctc).MonthlyTakeHome.Sub(monthlyExpense)
	}
}
