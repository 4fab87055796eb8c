package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
)

func TestNewMoneyFromDecimal(t *testing.T) {
	d := stddec.NewFromFloat(10.125)
	m := NewMoneyFromDecimal(d)
	if !m.Decimal.Equal(d) {
		t.Fatalf("NewMoneyFromDecimal mismatch: got %s want %s", m.Decimal, d)
	}
	if got := m.Format(); got != "₹10.13" { // rounded for display
		t.Fatalf("display mismatch: got %s", got)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "₹0.00"},
		{"999", "₹999.00"},
		{"1000", "₹1,000.00"},
		{"12345", "₹12,345.00"},
		{"123456", "₹1,23,456.00"},
		{"1234567.891", "₹12,34,567.89"},
		{"100000000", "₹10,00,00,000.00"},
		{"-83333.333", "-₹83,333.33"},
		{"-0.001", "₹0.00"},
	}
	for _, c := range cases {
		m := NewMoneyFromDecimal(stddec.RequireFromString(c.in))
		if got := m.Format(); got != c.want {
			t.Fatalf("Format(%s) got %s want %s", c.in, got, c.want)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"500", "₹500.00"},
		{"45000", "₹45 K"},
		{"1927345", "₹19.27 L"},
		{"1200000", "₹12 L"},
		{"25000000", "₹2.5 Cr"},
		{"-150000", "-₹1.5 L"},
	}
	for _, c := range cases {
		m := NewMoneyFromDecimal(stddec.RequireFromString(c.in))
		if got := m.FormatCompact(); got != c.want {
			t.Fatalf("FormatCompact(%s) got %s want %s", c.in, got, c.want)
		}
	}
}
