package output

import (
	"github.com/ctcplan/ctc-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// RangeSummary highlights the rows of a sweep a reader usually looks for first.
type RangeSummary struct {
	// BreakEven is the lowest CTC whose monthly savings are not negative.
	BreakEven *domain.RangeRow
	// FirstReachable is the lowest CTC at which the target can be reached.
	FirstReachable *domain.RangeRow
	// Fastest is the row with the fewest months to target (lowest CTC on ties).
	Fastest *domain.RangeRow
	// CliffRows are rows whose take-home is lower than at some smaller CTC in the sweep.
	CliffRows []domain.RangeRow
}

// AnalyzeRange scans a report's rows in CTC order.
// Extracted from the formatters for testability.
func AnalyzeRange(report *domain.RangeReport) RangeSummary {
	var summary RangeSummary
	bestTakeHome := decimal.Zero
	bestMonths := -1

	for i := range report.Rows {
		row := &report.Rows[i]
		if summary.BreakEven == nil && !row.MonthlySavings.IsNegative() {
			summary.BreakEven = row
		}
		if i > 0 && row.YearlyTakeHome.LessThan(bestTakeHome) {
			summary.CliffRows = append(summary.CliffRows, *row)
		}
		bestTakeHome = decimal.Max(bestTakeHome, row.YearlyTakeHome)

		if row.TimeToTarget == nil {
			continue
		}
		n, ok := row.TimeToTarget.MonthCount()
		if !ok {
			continue
		}
		if summary.FirstReachable == nil {
			summary.FirstReachable = row
		}
		if bestMonths < 0 || n < bestMonths {
			bestMonths = n
			summary.Fastest = row
		}
	}
	return summary
}
