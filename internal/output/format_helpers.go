package output

import (
	"fmt"

	"github.com/ctcplan/ctc-planner/internal/domain"
	money "github.com/ctcplan/ctc-planner/pkg/decimal"
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// FormatCurrency formats a decimal as rupees with Indian digit grouping and 2 decimals.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatCompact formats a decimal in lakh/crore notation.
func FormatCompact(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).FormatCompact()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatTimeToTarget renders an outcome for tables; nil means no target was requested.
func FormatTimeToTarget(t *domain.TimeToTarget) string {
	if t == nil {
		return "-"
	}
	n, ok := t.MonthCount()
	if !ok || t.Kind == domain.OutcomeAlreadyMet || n < 12 {
		return t.String()
	}
	return fmt.Sprintf("%d months (%dy %dm)", n, n/12, n%12)
}

// timeToTargetMonths returns the month count as a CSV cell, empty when unknown.
func timeToTargetMonths(t *domain.TimeToTarget) string {
	if t == nil {
		return ""
	}
	if n, ok := t.MonthCount(); ok {
		return fmt.Sprintf("%d", n)
	}
	return ""
}

func timeToTargetStatus(t *domain.TimeToTarget) string {
	if t == nil {
		return ""
	}
	return t.Kind.String()
}
