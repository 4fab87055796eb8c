package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ctcplan/ctc-planner/internal/domain"
	"github.com/ctcplan/ctc-planner/internal/output"
	"github.com/ctcplan/ctc-planner/pkg/dateutil"
)

func newRangeCmd(a *app) *cobra.Command {
	var rf rangeFlags
	cmd := &cobra.Command{
		Use:   "range",
		Short: "Monthly savings across a CTC range",
		Example: `  ctcplan range --min 1000000 --max 2000000 --monthly-expense 30000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := rf.spec()
			if err != nil {
				return err
			}
			if err := a.checkPoints(spec.PointCount()); err != nil {
				return err
			}
			points := a.engine.SavingsForRange(spec, rf.monthlyExpense.orZero())
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "Annual CTC\tMonthly savings")
			for _, p := range points {
				fmt.Fprintf(w, "%s\t%s\n", output.FormatCurrency(p.AnnualCTC), output.FormatCurrency(p.Metric))
			}
			return w.Flush()
		},
	}
	rf.register(cmd)
	return cmd
}

func newTimeToTargetCmd(a *app) *cobra.Command {
	var (
		rf rangeFlags
		tf targetFlags
	)
	cmd := &cobra.Command{
		Use:   "time-to-target",
		Short: "Months to reach a savings target across a CTC range",
		Example: `  ctcplan time-to-target --min 1200000 --max 2400000 --monthly-expense 30000 \
      --target 5000000 --sip 10000 --cagr 0.12`,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := rf.spec()
			if err != nil {
				return err
			}
			if err := a.checkPoints(spec.PointCount()); err != nil {
				return err
			}
			params, err := tf.params(rf.monthlyExpense.orZero())
			if err != nil {
				return err
			}
			points := a.engine.TimeToTargetForRange(spec, *params)
			w := newTable(cmd.OutOrStdout())
			start := clock()
			fmt.Fprintln(w, "Annual CTC\tTime to target\tReached by")
			for _, p := range points {
				fmt.Fprintf(w, "%s\t%s\t%s\n", output.FormatCurrency(p.AnnualCTC),
					output.FormatTimeToTarget(&p.Metric), reachedBy(start, p.Metric))
			}
			return w.Flush()
		},
	}
	rf.register(cmd)
	tf.register(cmd)
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

// clock is replaced in tests.
var clock = time.Now

func reachedBy(start time.Time, t domain.TimeToTarget) string {
	switch n, ok := t.MonthCount(); {
	case t.Kind == domain.OutcomeAlreadyMet:
		return "now"
	case ok:
		return dateutil.FormatMonth(dateutil.ReachDate(start, n))
	default:
		return "-"
	}
}

// checkPoints enforces the sweep size limit shared with the HTTP API.
func (a *app) checkPoints(n int64) error {
	if limit := a.settings.API.MaxSweepPoints; n > limit {
		return fmt.Errorf("range produces %d points, more than the limit of %d; use a larger --step", n, limit)
	}
	return nil
}
