package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/ctcplan/ctc-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report with a savings chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"compact": FormatCompact,
	"pct": func(d decimal.Decimal) string {
		return FormatPercentage(d.Mul(decimalHundred))
	},
	"ttt": FormatTimeToTarget,
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

type chartPoint struct {
	CTC     float64 `json:"ctc"`
	Savings float64 `json:"savings"`
}

func (h HTMLFormatter) Format(report *domain.RangeReport) ([]byte, error) {
	var buf bytes.Buffer

	points := make([]chartPoint, 0, len(report.Rows))
	for _, row := range report.Rows {
		points = append(points, chartPoint{CTC: row.AnnualCTC.InexactFloat64(), Savings: row.MonthlySavings.InexactFloat64()})
	}

	data := struct {
		*domain.RangeReport
		Summary RangeSummary
		Chart   []chartPoint
	}{report, AnalyzeRange(report), points}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
