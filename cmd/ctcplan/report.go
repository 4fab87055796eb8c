package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ctcplan/ctc-planner/internal/output"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		rf        rangeFlags
		tf        targetFlags
		format    string
		outputDir string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Combined take-home, savings and time-to-target report for a CTC range",
		Long: `report evaluates every CTC in the range and renders one row per CTC.
Without --output-dir the report is written to stdout. With --output-dir it is
saved as a timestamped file; --format all writes every format.`,
		Example: `  ctcplan report --min 1000000 --max 2500000 --step 250000 --monthly-expense 40000
  ctcplan report --min 1000000 --max 2500000 --monthly-expense 40000 --target 3000000 \
      --format html --output-dir reports`,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := rf.spec()
			if err != nil {
				return err
			}
			if err := a.checkPoints(spec.PointCount()); err != nil {
				return err
			}
			expense := rf.monthlyExpense.orZero()
			params, err := tf.params(expense)
			if err != nil {
				return err
			}
			report := a.engine.BuildRangeReport(spec, expense, params)

			if outputDir == "" {
				if format == "all" {
					return fmt.Errorf("--format all requires --output-dir")
				}
				data, err := output.Render(report, format)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			formats := []string{format}
			if format == "all" {
				formats = output.AvailableFormatterNames()
			}
			paths := make([]string, len(formats))
			g, _ := errgroup.WithContext(cmd.Context())
			for i, f := range formats {
				i, f := i, f
				g.Go(func() error {
					p, err := output.GenerateReport(report, f, outputDir)
					if err != nil {
						return fmt.Errorf("%s report: %w", f, err)
					}
					paths[i] = p
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			for _, p := range paths {
				a.logger.Info("report written", "path", p)
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	rf.register(cmd)
	tf.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, csv, html, json, all)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory for the saved report")
	return cmd
}
