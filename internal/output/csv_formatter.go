package output

import (
	"bytes"
	"encoding/csv"

	"github.com/ctcplan/ctc-planner/internal/domain"
)

// CSVFormatter implements the CSV export (one row per CTC point).
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.RangeReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"AnnualCTC", "YearlyTax", "YearlyTakeHome", "MonthlyTakeHome", "MonthlySavings", "TimeToTargetMonths", "TimeToTargetStatus"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range report.Rows {
		record := []string{
			row.AnnualCTC.StringFixed(2),
			row.YearlyTax.StringFixed(2),
			row.YearlyTakeHome.StringFixed(2),
			row.MonthlyTakeHome.StringFixed(2),
			row.MonthlySavings.StringFixed(2),
			timeToTargetMonths(row.TimeToTarget),
			timeToTargetStatus(row.TimeToTarget),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
