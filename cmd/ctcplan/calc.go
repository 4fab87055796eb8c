package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ctcplan/ctc-planner/internal/domain"
	"github.com/ctcplan/ctc-planner/internal/output"
)

func newTakeHomeCmd(a *app) *cobra.Command {
	var ctc decimalValue
	cmd := &cobra.Command{
		Use:   "take-home",
		Short: "Tax and take-home pay for an annual CTC",
		Example: `  ctcplan take-home --ctc 1500000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ctc.v.IsNegative() {
				return fmt.Errorf("--ctc cannot be negative")
			}
			res := a.engine.ComputeTakeHome(ctc.v)
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintf(w, "Annual CTC:\t%s\n", output.FormatCurrency(ctc.v))
			fmt.Fprintf(w, "Yearly tax:\t%s\n", output.FormatCurrency(res.YearlyTaxPayable))
			fmt.Fprintf(w, "Monthly tax:\t%s\n", output.FormatCurrency(res.MonthlyTaxPayable))
			fmt.Fprintf(w, "Yearly take-home:\t%s\n", output.FormatCurrency(res.YearlyTakeHome))
			fmt.Fprintf(w, "Monthly take-home:\t%s\n", output.FormatCurrency(res.MonthlyTakeHome))
			return w.Flush()
		},
	}
	cmd.Flags().Var(&ctc, "ctc", "annual CTC")
	_ = cmd.MarkFlagRequired("ctc")
	return cmd
}

func newSavingsCmd(a *app) *cobra.Command {
	var ctc, annual, monthly decimalValue
	cmd := &cobra.Command{
		Use:   "savings",
		Short: "Savings left after expenses for an annual CTC",
		Example: `  ctcplan savings --ctc 1200000 --monthly-expense 30000
  ctcplan savings --ctc 1200000 --annual-expense 360000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ctc.v.IsNegative() {
				return fmt.Errorf("--ctc cannot be negative")
			}
			var expense domain.Expense
			switch {
			case annual.set:
				expense = domain.AnnualExpense(annual.v)
			case monthly.set:
				expense = domain.MonthlyExpense(monthly.v)
			}
			if expense.Yearly().IsNegative() {
				return fmt.Errorf("expenses cannot be negative")
			}
			res := a.engine.ComputeSavings(ctc.v, expense)
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintf(w, "Annual CTC:\t%s\n", output.FormatCurrency(ctc.v))
			fmt.Fprintf(w, "Yearly take-home:\t%s\n", output.FormatCurrency(res.YearlyTakeHome))
			fmt.Fprintf(w, "Monthly take-home:\t%s\n", output.FormatCurrency(res.MonthlyTakeHome))
			fmt.Fprintf(w, "Yearly savings:\t%s\n", output.FormatCurrency(res.YearlySavings))
			fmt.Fprintf(w, "Monthly savings:\t%s\n", output.FormatCurrency(res.MonthlySavings))
			return w.Flush()
		},
	}
	cmd.Flags().Var(&ctc, "ctc", "annual CTC")
	cmd.Flags().Var(&annual, "annual-expense", "yearly household expense")
	cmd.Flags().Var(&monthly, "monthly-expense", "monthly household expense")
	cmd.MarkFlagsMutuallyExclusive("annual-expense", "monthly-expense")
	_ = cmd.MarkFlagRequired("ctc")
	return cmd
}

func newCTCCmd(a *app) *cobra.Command {
	var takeHome decimalValue
	cmd := &cobra.Command{
		Use:   "ctc",
		Short: "Annual CTC needed for a desired yearly take-home",
		Example: `  ctcplan ctc --take-home 1800000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !takeHome.v.IsPositive() {
				return fmt.Errorf("desired yearly take-home must be positive")
			}
			est := a.engine.InvertTakeHome(takeHome.v)
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintf(w, "Desired take-home:\t%s\n", output.FormatCurrency(takeHome.v))
			fmt.Fprintf(w, "Required annual CTC:\t%s\n", output.FormatCurrency(est.RequiredAnnualCTC))
			fmt.Fprintf(w, "Achieved take-home:\t%s\n", output.FormatCurrency(est.AchievedTakeHome))
			if est.Message != "" {
				fmt.Fprintf(w, "Note:\t%s\n", est.Message)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Var(&takeHome, "take-home", "desired yearly take-home")
	_ = cmd.MarkFlagRequired("take-home")
	return cmd
}

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}
