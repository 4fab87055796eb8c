package calculation

import (
	"fmt"

	"github.com/ctcplan/ctc-planner/internal/domain"
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// PolicyAssumptions lists the modelling assumptions rendered alongside reports.
func PolicyAssumptions(p domain.TaxPolicy) []string {
	lines := []string{
		fmt.Sprintf("Standard deduction: %s", p.StandardDeduction.StringFixed(0)),
	}
	for _, b := range p.Brackets {
		rate := b.Rate.Mul(decimalHundred).StringFixed(0)
		if b.Unbounded() {
			lines = append(lines, fmt.Sprintf("Slab above %s: %s%%", b.Lower.StringFixed(0), rate))
			continue
		}
		lines = append(lines, fmt.Sprintf("Slab %s - %s: %s%%", b.Lower.StringFixed(0), b.Upper.StringFixed(0), rate))
	}
	return append(lines,
		fmt.Sprintf("Rebate up to %s when taxable income <= %s (no marginal relief)",
			p.RebateLimit.StringFixed(0), p.RebateTaxableIncomeThreshold.StringFixed(0)),
		"Investment growth compounds monthly at CAGR/12",
		fmt.Sprintf("Targets not reached within %d months are reported as unreachable", MaxSimulationMonths),
	)
}
