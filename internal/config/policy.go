package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ctcplan/ctc-planner/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrInvalidPolicy is wrapped by every policy validation failure.
var ErrInvalidPolicy = errors.New("invalid tax policy")

// PolicyLoader handles parsing and validation of tax policy files
type PolicyLoader struct{}

// NewPolicyLoader creates a new policy loader
func NewPolicyLoader() *PolicyLoader {
	return &PolicyLoader{}
}

// LoadFromFile loads a tax policy from a YAML file
func (pl *PolicyLoader) LoadFromFile(filename string) (*domain.TaxPolicy, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	policy, err := pl.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return policy, nil
}

// Parse decodes and validates a policy document
func (pl *PolicyLoader) Parse(data []byte) (*domain.TaxPolicy, error) {
	var policy domain.TaxPolicy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := pl.ValidatePolicy(&policy); err != nil {
		return nil, fmt.Errorf("policy validation failed: %w", err)
	}

	return &policy, nil
}

// ValidatePolicy checks that the slab table is contiguous with strictly increasing rates
// and that the rebate parameters are sane
func (pl *PolicyLoader) ValidatePolicy(policy *domain.TaxPolicy) error {
	if policy.StandardDeduction.IsNegative() {
		return fmt.Errorf("%w: standard deduction cannot be negative", ErrInvalidPolicy)
	}
	if policy.RebateLimit.IsNegative() {
		return fmt.Errorf("%w: rebate limit cannot be negative", ErrInvalidPolicy)
	}
	if policy.RebateTaxableIncomeThreshold.IsNegative() {
		return fmt.Errorf("%w: rebate taxable income threshold cannot be negative", ErrInvalidPolicy)
	}

	if len(policy.Brackets) == 0 {
		return fmt.Errorf("%w: no brackets provided", ErrInvalidPolicy)
	}
	if !policy.Brackets[0].Lower.IsZero() {
		return fmt.Errorf("%w: first bracket must start at 0", ErrInvalidPolicy)
	}

	for i, b := range policy.Brackets {
		if err := validateBracket(i, b, len(policy.Brackets)); err != nil {
			return err
		}
		if i > 0 && !b.Lower.Equal(*policy.Brackets[i-1].Upper) {
			return fmt.Errorf("%w: bracket %d lower bound %s does not continue from %s",
				ErrInvalidPolicy, i, b.Lower, policy.Brackets[i-1].Upper)
		}
		if i > 0 && !b.Rate.GreaterThan(policy.Brackets[i-1].Rate) {
			return fmt.Errorf("%w: bracket %d rate %s must exceed the previous rate %s",
				ErrInvalidPolicy, i, b.Rate, policy.Brackets[i-1].Rate)
		}
	}

	return nil
}

// validateBracket validates a single slab
func validateBracket(i int, b domain.TaxBracket, count int) error {
	if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: bracket %d rate must be between 0 and 1", ErrInvalidPolicy, i)
	}
	last := i == count-1
	if b.Unbounded() && !last {
		return fmt.Errorf("%w: only the last bracket may be unbounded (bracket %d)", ErrInvalidPolicy, i)
	}
	if !b.Unbounded() && last {
		return fmt.Errorf("%w: last bracket must be unbounded", ErrInvalidPolicy)
	}
	if !b.Unbounded() && b.Upper.LessThanOrEqual(b.Lower) {
		return fmt.Errorf("%w: bracket %d upper bound must exceed lower bound", ErrInvalidPolicy, i)
	}
	return nil
}

// Marshal encodes a policy as YAML
func (pl *PolicyLoader) Marshal(policy *domain.TaxPolicy) ([]byte, error) {
	data, err := yaml.Marshal(policy)
	if err != nil {
		return nil, fmt.Errorf("failed to encode policy: %w", err)
	}
	return data, nil
}

// SaveToFile writes a policy as YAML
func (pl *PolicyLoader) SaveToFile(policy *domain.TaxPolicy, filename string) error {
	data, err := pl.Marshal(policy)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// ExamplePolicy returns the reference slab schedule as an editable starting point
func (pl *PolicyLoader) ExamplePolicy() *domain.TaxPolicy {
	policy := domain.DefaultTaxPolicy()
	policy.Name = "example"
	return &policy
}
