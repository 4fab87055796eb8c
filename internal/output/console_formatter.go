package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/ctcplan/ctc-planner/internal/domain"
)

// ConsoleFormatter renders the report as an aligned text table.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.RangeReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "CTC PLANNING REPORT")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Policy: %s\n", report.PolicyName)
	fmt.Fprintf(&buf, "Range: %s to %s in steps of %s\n",
		FormatCompact(report.Range.Min), FormatCompact(report.Range.Max), FormatCompact(report.Range.Step))
	fmt.Fprintf(&buf, "Monthly expense: %s\n", FormatCurrency(report.MonthlyExpense))
	if report.Target != nil {
		fmt.Fprintf(&buf, "Target: %s (invested %s, lumpsum %s, SIP %s/month at %s CAGR)\n",
			FormatCurrency(report.Target.TargetAmount),
			FormatCurrency(report.Target.CurrentInvestments),
			FormatCurrency(report.Target.LumpsumExpenses),
			FormatCurrency(report.Target.MonthlySIPAmount),
			FormatPercentage(report.Target.AnnualSIPGrowthRate.Mul(decimalHundred)))
	}
	fmt.Fprintln(&buf)

	if len(report.Rows) == 0 {
		fmt.Fprintln(&buf, "No rows: the range or inputs are invalid.")
		return buf.Bytes(), nil
	}

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Annual CTC\tTax / yr\tTake-home / yr\tTake-home / mo\tSavings / mo\tTime to target\t")
	for _, row := range report.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			FormatCurrency(row.AnnualCTC),
			FormatCurrency(row.YearlyTax),
			FormatCurrency(row.YearlyTakeHome),
			FormatCurrency(row.MonthlyTakeHome),
			FormatCurrency(row.MonthlySavings),
			FormatTimeToTarget(row.TimeToTarget),
		)
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}

	summary := AnalyzeRange(report)
	fmt.Fprintln(&buf)
	if summary.BreakEven != nil {
		fmt.Fprintf(&buf, "Expenses covered from: %s\n", FormatCompact(summary.BreakEven.AnnualCTC))
	} else {
		fmt.Fprintln(&buf, "Expenses are not covered anywhere in this range")
	}
	if report.Target != nil {
		if summary.FirstReachable != nil {
			fmt.Fprintf(&buf, "Target reachable from: %s (%s)\n",
				FormatCompact(summary.FirstReachable.AnnualCTC), FormatTimeToTarget(summary.FirstReachable.TimeToTarget))
		} else {
			fmt.Fprintln(&buf, "Target is unreachable across this range")
		}
	}
	for _, row := range summary.CliffRows {
		fmt.Fprintf(&buf, "Note: take-home at %s is lower than at a smaller CTC (rebate cliff)\n", FormatCompact(row.AnnualCTC))
	}

	if len(report.Assumptions) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "Assumptions:")
		for _, a := range report.Assumptions {
			fmt.Fprintf(&buf, "  - %s\n", a)
		}
	}
	return buf.Bytes(), nil
}
