package main

import (
	"fmt"
	"os"

	calc "github.com/ctcplan/ctc-planner/internal/calculation"
	"github.com/ctcplan/ctc-planner/internal/config"
	"github.com/ctcplan/ctc-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// Prints the tax breakdown around the rebate cliff as CSV.
// usage: debug_cliff [policy-file]
func main() {
	policy := domain.DefaultTaxPolicy()
	if len(os.Args) > 1 {
		p, err := config.NewPolicyLoader().LoadFromFile(os.Args[1])
		if err != nil {
			panic(err)
		}
		policy = *p
	}

	tc := calc.NewTaxCalculatorWithPolicy(policy)
	cliff, ok := tc.FindRebateCliff()
	if !ok {
		fmt.Println("policy has no rebate cliff")
		return
	}

	step := decimal.NewFromInt(10000)
	from := cliff.CliffCTC.Sub(step.Mul(decimal.NewFromInt(5)))
	to := cliff.RecoveryCTC.Add(step.Mul(decimal.NewFromInt(5)))

	fmt.Println("CTC,Taxable,SlabTax,Rebate,Tax,TakeHome,BelowCliffTakeHome")
	for ctc := from; ctc.LessThanOrEqual(to); ctc = ctc.Add(step) {
		taxable := tc.TaxableIncome(ctc)
		slab := tc.SlabTax(taxable)
		rebate := tc.Rebate(taxable, slab)
		th := tc.ComputeTakeHome(ctc)
		below := ctc.GreaterThan(cliff.CliffCTC) && th.YearlyTakeHome.LessThan(cliff.TakeHomeAtCliff)
		fmt.Printf("%s,%s,%s,%s,%s,%s,%t\n", ctc.StringFixed(0), taxable.StringFixed(0), slab.StringFixed(2),
			rebate.StringFixed(2), th.YearlyTaxPayable.StringFixed(2), th.YearlyTakeHome.StringFixed(2), below)
	}

	fmt.Printf("\ncliff at %s (take-home %s), drop %s, recovers at %s\n",
		cliff.CliffCTC.StringFixed(2), cliff.TakeHomeAtCliff.StringFixed(2),
		cliff.DropJustAbove.StringFixed(2), cliff.RecoveryCTC.StringFixed(2))
}
