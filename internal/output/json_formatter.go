package output

import (
	"encoding/json"

	"github.com/ctcplan/ctc-planner/internal/domain"
)

// JSONFormatter serializes the range report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.RangeReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
