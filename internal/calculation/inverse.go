package calculation

import (
	"github.com/ctcplan/ctc-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// Bisection parameters for inverting the take-home function.
var (
	InverseSearchCeiling = decimal.NewFromInt(100000000) // 10 Cr
	InverseTolerance     = decimal.NewFromInt(1)         // within 1 rupee of the desired take-home
	InverseAdvisoryBand  = InverseTolerance.Mul(decimal.NewFromInt(10))
)

// InverseMaxIterations bounds the bisection loop.
const InverseMaxIterations = 100

const (
	msgNegativeTakeHome = "Desired take-home cannot be negative."
	msgClosestEstimate  = "Could not find an exact CTC match. This is the closest estimate."
)

// InvertTakeHome searches for the annual CTC whose yearly take-home matches the desired value.
//
// Take-home is non-decreasing in CTC everywhere except at the rebate cliff, so
// bisection over [0, InverseSearchCeiling] lands on one of the matching CTCs.
// The midpoint with the smallest discrepancy seen so far is returned when the
// iteration budget runs out.
func (tc *TaxCalculator) InvertTakeHome(desiredYearlyTakeHome decimal.Decimal) domain.CTCEstimate {
	if desiredYearlyTakeHome.IsNegative() {
		return domain.CTCEstimate{RequiredAnnualCTC: decimal.Zero, Message: msgNegativeTakeHome}
	}

	two := decimal.NewFromInt(2)
	lowCTC := decimal.Zero
	highCTC := InverseSearchCeiling

	var best domain.CTCEstimate
	bestDiff := decimal.Zero
	for i := 0; i < InverseMaxIterations; i++ {
		midCTC := lowCTC.Add(highCTC.Sub(lowCTC).Div(two))
		takeHome := tc.ComputeTakeHome(midCTC).YearlyTakeHome
		diff := takeHome.Sub(desiredYearlyTakeHome)

		if i == 0 || diff.Abs().LessThan(bestDiff) {
			best = domain.CTCEstimate{RequiredAnnualCTC: midCTC, AchievedTakeHome: takeHome, Iterations: i + 1}
			bestDiff = diff.Abs()
		}

		if diff.Abs().LessThanOrEqual(InverseTolerance) {
			best.Converged = true
			break
		}

		if diff.IsNegative() {
			// Need a higher CTC to get a higher take-home
			lowCTC = midCTC
		} else {
			highCTC = midCTC
		}
	}

	if bestDiff.GreaterThan(InverseAdvisoryBand) {
		best.Message = msgClosestEstimate
	}
	return best
}
