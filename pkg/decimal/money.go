package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	thousand = decimal.NewFromInt(1000)
	lakh     = decimal.NewFromInt(100000)
	crore    = decimal.NewFromInt(10000000)
)

// Money represents a rupee amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Format renders the amount with Indian digit grouping, e.g. ₹12,34,567.89
func (m Money) Format() string {
	s := m.Decimal.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	out := "₹" + groupIndian(intPart) + "." + frac
	if m.Decimal.Round(2).IsNegative() {
		return "-" + out
	}
	return out
}

// FormatCompact renders the amount in lakh/crore notation, e.g. ₹19.27 L or ₹2.5 Cr
func (m Money) FormatCompact() string {
	abs := m.Decimal.Abs()
	prefix := "₹"
	if m.Decimal.IsNegative() {
		prefix = "-₹"
	}

	switch {
	case abs.GreaterThanOrEqual(crore):
		return prefix + trimDecimals(abs.Div(crore)) + " Cr"
	case abs.GreaterThanOrEqual(lakh):
		return prefix + trimDecimals(abs.Div(lakh)) + " L"
	case abs.GreaterThanOrEqual(thousand):
		return prefix + trimDecimals(abs.Div(thousand)) + " K"
	default:
		return prefix + abs.StringFixed(2)
	}
}

// groupIndian groups an unsigned digit string as last three digits, then pairs.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var b strings.Builder
	lead := len(head) % 2
	if lead > 0 {
		b.WriteString(head[:lead])
	}
	for i := lead; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}

// trimDecimals formats with up to 2 decimal places, removing trailing zeros.
func trimDecimals(d decimal.Decimal) string {
	s := d.StringFixed(2)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
