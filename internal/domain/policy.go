package domain

import (
	"github.com/shopspring/decimal"
)

// DefaultIncrement is the CTC step used by range sweeps when none (or a non-positive one) is supplied.
var DefaultIncrement = decimal.NewFromInt(500000)

// TaxBracket represents a single income slab taxed at one marginal rate.
// Upper is nil for the top slab, which is unbounded above.
type TaxBracket struct {
	Lower decimal.Decimal  `yaml:"lower" json:"lower"`
	Upper *decimal.Decimal `yaml:"upper,omitempty" json:"upper,omitempty"`
	Rate  decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Unbounded reports whether the bracket has no upper limit.
func (b TaxBracket) Unbounded() bool {
	return b.Upper == nil
}

// Contains reports whether income falls inside (Lower, Upper].
func (b TaxBracket) Contains(income decimal.Decimal) bool {
	if income.LessThanOrEqual(b.Lower) {
		return false
	}
	return b.Unbounded() || income.LessThanOrEqual(*b.Upper)
}

// TaxPolicy is the slab schedule plus the deduction and rebate parameters.
//
// RebateTaxableIncomeThreshold is expected to be consistent with the bracket
// table it was derived from. Nothing checks that; it is an assumption of the
// policy author.
type TaxPolicy struct {
	Name                         string          `yaml:"name,omitempty" json:"name,omitempty"`
	StandardDeduction            decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	RebateLimit                  decimal.Decimal `yaml:"rebate_limit" json:"rebate_limit"`
	RebateTaxableIncomeThreshold decimal.Decimal `yaml:"rebate_taxable_income_threshold" json:"rebate_taxable_income_threshold"`
	Brackets                     []TaxBracket    `yaml:"brackets" json:"brackets"`
}

// MarginalRate returns the rate of the bracket that taxes the last unit of income.
func (p TaxPolicy) MarginalRate(taxableIncome decimal.Decimal) decimal.Decimal {
	for _, b := range p.Brackets {
		if b.Contains(taxableIncome) {
			return b.Rate
		}
	}
	return decimal.Zero
}

func upper(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// DefaultTaxPolicy returns the reference slab schedule:
// nil up to 4L, then 5/10/15/20/25% per 4L slab and 30% above 24L,
// a 50,000 standard deduction and a rebate of up to 60,000 for
// taxable income up to 11.5L (12L gross less the deduction).
func DefaultTaxPolicy() TaxPolicy {
	return TaxPolicy{
		Name:                         "default",
		StandardDeduction:            decimal.NewFromInt(50000),
		RebateLimit:                  decimal.NewFromInt(60000),
		RebateTaxableIncomeThreshold: decimal.NewFromInt(1150000),
		Brackets: []TaxBracket{
			{Lower: decimal.Zero, Upper: upper(400000), Rate: decimal.Zero},
			{Lower: decimal.NewFromInt(400000), Upper: upper(800000), Rate: decimal.NewFromFloat(0.05)},
			{Lower: decimal.NewFromInt(800000), Upper: upper(1200000), Rate: decimal.NewFromFloat(0.10)},
			{Lower: decimal.NewFromInt(1200000), Upper: upper(1600000), Rate: decimal.NewFromFloat(0.15)},
			{Lower: decimal.NewFromInt(1600000), Upper: upper(2000000), Rate: decimal.NewFromFloat(0.20)},
			{Lower: decimal.NewFromInt(2000000), Upper: upper(2400000), Rate: decimal.NewFromFloat(0.25)},
			{Lower: decimal.NewFromInt(2400000), Rate: decimal.NewFromFloat(0.30)},
		},
	}
}
