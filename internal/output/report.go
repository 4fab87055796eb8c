package output

import (
	"fmt"
	"strings"

	"github.com/ctcplan/ctc-planner/internal/domain"
)

// ExtensionFor maps a formatter name to the file extension used when saving.
func ExtensionFor(format string) string {
	switch n := NormalizeFormatName(format); n {
	case "console":
		return "txt"
	default:
		return n
	}
}

// Render formats a report with the named formatter.
func Render(report *domain.RangeReport, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
			strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	return f.Format(report)
}

// GenerateReport writes the report to a timestamped file in dir and returns its path.
func GenerateReport(report *domain.RangeReport, format, dir string) (string, error) {
	f := GetFormatterByName(format)
	if f == nil {
		_, err := Render(report, format)
		return "", err
	}
	return WriteFormattedTo(f, report, dir, ExtensionFor(format))
}
