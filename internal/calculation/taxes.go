package calculation

import (
	"github.com/ctcplan/ctc-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. A single slab table is modelled; there is no tax-year indexing.
//
// 2. Standard deduction is subtracted from gross CTC before the slabs apply,
//    and taxable income never goes below zero.
//
// 3. Rebate: when 0 < taxable income <= the rebate threshold, tax is reduced
//    by min(tax, rebate limit). This is a cliff. One unit above the threshold
//    the full slab tax is due. Marginal relief is not modelled.

var monthsPerYear = decimal.NewFromInt(12)

// TaxCalculator evaluates a slab policy
type TaxCalculator struct {
	Policy domain.TaxPolicy
}

// NewTaxCalculator creates a calculator for the reference policy
func NewTaxCalculator() *TaxCalculator {
	return &TaxCalculator{Policy: domain.DefaultTaxPolicy()}
}

// NewTaxCalculatorWithPolicy creates a calculator for a loaded policy
func NewTaxCalculatorWithPolicy(policy domain.TaxPolicy) *TaxCalculator {
	return &TaxCalculator{Policy: policy}
}

// SlabTax sums rate x slice for every bracket the income reaches, before any rebate.
func (tc *TaxCalculator) SlabTax(taxableIncome decimal.Decimal) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var totalTax decimal.Decimal
	for _, bracket := range tc.Policy.Brackets {
		if taxableIncome.LessThanOrEqual(bracket.Lower) {
			break
		}
		top := taxableIncome
		if !bracket.Unbounded() {
			top = decimal.Min(taxableIncome, *bracket.Upper)
		}
		incomeInBracket := top.Sub(bracket.Lower)
		if incomeInBracket.GreaterThan(decimal.Zero) {
			totalTax = totalTax.Add(incomeInBracket.Mul(bracket.Rate))
		}
	}
	return totalTax
}

// Rebate returns the credit applied against slabTax for the given taxable income.
func (tc *TaxCalculator) Rebate(taxableIncome, slabTax decimal.Decimal) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) || taxableIncome.GreaterThan(tc.Policy.RebateTaxableIncomeThreshold) {
		return decimal.Zero
	}
	return decimal.Min(slabTax, tc.Policy.RebateLimit)
}

// ComputeTax calculates the tax payable on already-reduced taxable income.
// Negative input is treated as zero.
func (tc *TaxCalculator) ComputeTax(taxableIncome decimal.Decimal) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	tax := tc.SlabTax(taxableIncome)
	tax = tax.Sub(tc.Rebate(taxableIncome, tax))
	return decimal.Max(tax, decimal.Zero)
}

// TaxableIncome applies the standard deduction to a gross CTC
func (tc *TaxCalculator) TaxableIncome(grossCTC decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, grossCTC.Sub(tc.Policy.StandardDeduction))
}

// ComputeTakeHome calculates yearly and monthly tax and net pay for a gross CTC
func (tc *TaxCalculator) ComputeTakeHome(grossCTC decimal.Decimal) domain.TakeHomeResult {
	annualTax := tc.ComputeTax(tc.TaxableIncome(grossCTC))
	yearlyTakeHome := grossCTC.Sub(annualTax)

	return domain.TakeHomeResult{
		YearlyTaxPayable:  annualTax,
		MonthlyTaxPayable: annualTax.Div(monthsPerYear),
		YearlyTakeHome:    yearlyTakeHome,
		MonthlyTakeHome:   yearlyTakeHome.Div(monthsPerYear),
	}
}
