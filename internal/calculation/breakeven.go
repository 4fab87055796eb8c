package calculation

import (
	"github.com/ctcplan/ctc-planner/internal/domain"
	"github.com/shopspring/decimal"
)

var paisa = decimal.New(1, -2)

// FindRebateCliff reports where the rebate cliff sits for the policy and the
// smallest CTC above it whose take-home is back to the take-home at the cliff.
// ok is false when the policy has no rebate or losing it costs nothing.
func (tc *TaxCalculator) FindRebateCliff() (cliff domain.RebateCliff, ok bool) {
	p := tc.Policy
	if !p.RebateLimit.IsPositive() || !p.RebateTaxableIncomeThreshold.IsPositive() {
		return domain.RebateCliff{}, false
	}

	cliffCTC := p.RebateTaxableIncomeThreshold.Add(p.StandardDeduction)
	atCliff := tc.ComputeTakeHome(cliffCTC).YearlyTakeHome
	justAbove := tc.ComputeTakeHome(cliffCTC.Add(paisa)).YearlyTakeHome
	drop := atCliff.Sub(justAbove)
	if !drop.IsPositive() {
		return domain.RebateCliff{}, false
	}

	// Binary search for the recovery point; take-home is increasing above the cliff
	two := decimal.NewFromInt(2)
	low := cliffCTC
	high := InverseSearchCeiling
	if tc.ComputeTakeHome(high).YearlyTakeHome.LessThan(atCliff) {
		return domain.RebateCliff{}, false
	}
	for i := 0; i < InverseMaxIterations && high.Sub(low).GreaterThan(paisa); i++ {
		mid := low.Add(high.Sub(low).Div(two))
		if tc.ComputeTakeHome(mid).YearlyTakeHome.GreaterThanOrEqual(atCliff) {
			high = mid
		} else {
			low = mid
		}
	}

	// Smallest whole-paisa CTC that recovers
	recovery := high.RoundCeil(2)
	for recovery.Sub(paisa).GreaterThan(cliffCTC) &&
		tc.ComputeTakeHome(recovery.Sub(paisa)).YearlyTakeHome.GreaterThanOrEqual(atCliff) {
		recovery = recovery.Sub(paisa)
	}

	return domain.RebateCliff{
		CliffCTC:        cliffCTC,
		TakeHomeAtCliff: atCliff,
		DropJustAbove:   drop.Round(2),
		RecoveryCTC:     recovery,
	}, true
}
