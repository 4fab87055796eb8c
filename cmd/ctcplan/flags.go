package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ctcplan/ctc-planner/internal/domain"
)

// decimalValue is a pflag.Value holding a decimal amount.
type decimalValue struct {
	v   decimal.Decimal
	set bool
}

func (d *decimalValue) String() string {
	if !d.set {
		return ""
	}
	return d.v.String()
}

func (d *decimalValue) Set(s string) error {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	d.v, d.set = v, true
	return nil
}

func (d *decimalValue) Type() string { return "amount" }

func (d *decimalValue) orZero() decimal.Decimal {
	if !d.set {
		return decimal.Zero
	}
	return d.v
}

// rangeFlags are shared by the sweep commands.
type rangeFlags struct {
	min, max, step, monthlyExpense decimalValue
}

func (rf *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().Var(&rf.min, "min", "lowest annual CTC")
	cmd.Flags().Var(&rf.max, "max", "highest annual CTC")
	cmd.Flags().Var(&rf.step, "step", "CTC increment (default 500000)")
	cmd.Flags().Var(&rf.monthlyExpense, "monthly-expense", "monthly household expense")
	_ = cmd.MarkFlagRequired("min")
	_ = cmd.MarkFlagRequired("max")
}

// spec validates the range and applies the default increment.
func (rf *rangeFlags) spec() (domain.RangeSpec, error) {
	spec := domain.RangeSpec{Min: rf.min.v, Max: rf.max.v, Step: rf.step.orZero()}.WithDefaultStep()
	if spec.Min.IsNegative() || spec.Max.IsNegative() {
		return domain.RangeSpec{}, fmt.Errorf("--min and --max cannot be negative")
	}
	if spec.Min.GreaterThan(spec.Max) {
		return domain.RangeSpec{}, fmt.Errorf("--min cannot exceed --max")
	}
	if rf.monthlyExpense.orZero().IsNegative() {
		return domain.RangeSpec{}, fmt.Errorf("--monthly-expense cannot be negative")
	}
	return spec, nil
}

// targetFlags describe the savings goal for time-to-target calculations.
type targetFlags struct {
	target, invested, lumpsum, sip, cagr decimalValue
}

func (tf *targetFlags) register(cmd *cobra.Command) {
	cmd.Flags().Var(&tf.target, "target", "savings target amount")
	cmd.Flags().Var(&tf.invested, "invested", "current investments")
	cmd.Flags().Var(&tf.lumpsum, "lumpsum", "one-off expenses deducted up front")
	cmd.Flags().Var(&tf.sip, "sip", "monthly SIP amount invested on top of savings")
	cmd.Flags().Var(&tf.cagr, "cagr", "annual growth rate as a fraction, e.g. 0.12")
}

// params returns nil when no target was given.
func (tf *targetFlags) params(monthlyExpense decimal.Decimal) (*domain.TimeToTargetParams, error) {
	if !tf.target.set {
		return nil, nil
	}
	if !tf.target.v.IsPositive() {
		return nil, fmt.Errorf("--target must be positive")
	}
	p := &domain.TimeToTargetParams{
		MonthlyExpense:      monthlyExpense,
		TargetAmount:        tf.target.v,
		CurrentInvestments:  tf.invested.orZero(),
		LumpsumExpenses:     tf.lumpsum.orZero(),
		MonthlySIPAmount:    tf.sip.orZero(),
		AnnualSIPGrowthRate: tf.cagr.orZero(),
	}
	for _, f := range []struct {
		name string
		v    decimal.Decimal
	}{
		{"--invested", p.CurrentInvestments},
		{"--lumpsum", p.LumpsumExpenses},
		{"--sip", p.MonthlySIPAmount},
		{"--cagr", p.AnnualSIPGrowthRate},
	} {
		if f.v.IsNegative() {
			return nil, fmt.Errorf("%s cannot be negative", f.name)
		}
	}
	return p, nil
}
