package domain

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// TakeHomeResult represents the net pay derived from a gross CTC
type TakeHomeResult struct {
	YearlyTaxPayable  decimal.Decimal `json:"yearly_tax_payable"`
	MonthlyTaxPayable decimal.Decimal `json:"monthly_tax_payable"`
	YearlyTakeHome    decimal.Decimal `json:"yearly_take_home"`
	MonthlyTakeHome   decimal.Decimal `json:"monthly_take_home"`
}

// SavingsResult represents take-home pay less expenses
type SavingsResult struct {
	YearlySavings   decimal.Decimal `json:"yearly_savings"`
	MonthlySavings  decimal.Decimal `json:"monthly_savings"`
	YearlyTakeHome  decimal.Decimal `json:"yearly_take_home"`
	MonthlyTakeHome decimal.Decimal `json:"monthly_take_home"`
}

// Expense is a household expense given either as an annual or a monthly figure.
// The zero value means no expense.
type Expense struct {
	Annual  *decimal.Decimal `json:"annual,omitempty"`
	Monthly *decimal.Decimal `json:"monthly,omitempty"`
}

// AnnualExpense returns an Expense given as a yearly amount.
func AnnualExpense(v decimal.Decimal) Expense { return Expense{Annual: &v} }

// MonthlyExpense returns an Expense given as a monthly amount.
func MonthlyExpense(v decimal.Decimal) Expense { return Expense{Monthly: &v} }

// Yearly returns the expense as an annual amount. Annual wins when both are set.
func (e Expense) Yearly() decimal.Decimal {
	switch {
	case e.Annual != nil:
		return *e.Annual
	case e.Monthly != nil:
		return e.Monthly.Mul(decimal.NewFromInt(12))
	default:
		return decimal.Zero
	}
}

// RangeSpec describes a CTC sweep from Min to Max in Step increments
type RangeSpec struct {
	Min  decimal.Decimal `json:"min"`
	Max  decimal.Decimal `json:"max"`
	Step decimal.Decimal `json:"step"`
}

// WithDefaultStep replaces a non-positive step with DefaultIncrement.
func (r RangeSpec) WithDefaultStep() RangeSpec {
	if r.Step.LessThanOrEqual(decimal.Zero) {
		r.Step = DefaultIncrement
	}
	return r
}

// Valid reports whether the sweep would produce any points.
func (r RangeSpec) Valid() bool {
	return !r.Min.IsNegative() && r.Min.LessThanOrEqual(r.Max) && r.Step.IsPositive()
}

// maxSteps is the largest step count PointCount reports exactly.
var maxSteps = decimal.NewFromInt(math.MaxInt64 - 1)

// PointCount returns the number of points a valid sweep evaluates, or 0.
// Counts that do not fit in an int64 saturate at math.MaxInt64.
func (r RangeSpec) PointCount() int64 {
	if !r.Valid() {
		return 0
	}
	steps := r.Max.Sub(r.Min).Div(r.Step).Ceil()
	if steps.GreaterThan(maxSteps) {
		return math.MaxInt64
	}
	return steps.IntPart() + 1
}

// ProjectionPoint is one evaluated CTC in a range sweep
type ProjectionPoint[T any] struct {
	AnnualCTC decimal.Decimal `json:"annual_ctc"`
	Metric    T               `json:"metric"`
}

// TimeToTargetParams holds the per-request inputs of the time-to-target simulation
type TimeToTargetParams struct {
	MonthlyExpense      decimal.Decimal `json:"monthly_expense"`
	TargetAmount        decimal.Decimal `json:"target_amount"`
	CurrentInvestments  decimal.Decimal `json:"current_investments"`
	LumpsumExpenses     decimal.Decimal `json:"lumpsum_expenses"`
	MonthlySIPAmount    decimal.Decimal `json:"monthly_sip_amount"`
	AnnualSIPGrowthRate decimal.Decimal `json:"annual_sip_growth_rate"` // CAGR, applied monthly as rate/12
}

// OutcomeKind tags a TimeToTarget result.
type OutcomeKind int

const (
	OutcomeReachable OutcomeKind = iota
	OutcomeAlreadyMet
	OutcomeUnreachable
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeReachable:
		return "reachable"
	case OutcomeAlreadyMet:
		return "already_met"
	case OutcomeUnreachable:
		return "unreachable"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// UnreachableReason records which guard declared a target unreachable.
type UnreachableReason string

const (
	ReasonNone                 UnreachableReason = ""
	ReasonOutflowsExceedIncome UnreachableReason = "outflows_exceed_income"
	ReasonNoGrowth             UnreachableReason = "no_growth"
	ReasonStagnated            UnreachableReason = "stagnated"
	ReasonHorizonExceeded      UnreachableReason = "horizon_exceeded"
)

// TimeToTarget is the months-to-target outcome for one CTC point.
// Months is only meaningful for OutcomeReachable.
type TimeToTarget struct {
	Kind   OutcomeKind
	Months int
	Reason UnreachableReason
}

// AlreadyMet is the outcome when starting net worth already covers the target.
func AlreadyMet() TimeToTarget { return TimeToTarget{Kind: OutcomeAlreadyMet} }

// ReachedIn is the outcome when the target is crossed in month n.
func ReachedIn(n int) TimeToTarget { return TimeToTarget{Kind: OutcomeReachable, Months: n} }

// Unreachable is the outcome when net worth can never reach the target.
func Unreachable(reason UnreachableReason) TimeToTarget {
	return TimeToTarget{Kind: OutcomeUnreachable, Reason: reason}
}

// IsUnreachable reports whether the target can never be met.
func (t TimeToTarget) IsUnreachable() bool { return t.Kind == OutcomeUnreachable }

// MonthCount returns the number of months until the target is met and false when unreachable.
func (t TimeToTarget) MonthCount() (int, bool) {
	switch t.Kind {
	case OutcomeAlreadyMet:
		return 0, true
	case OutcomeReachable:
		return t.Months, true
	default:
		return 0, false
	}
}

func (t TimeToTarget) String() string {
	switch t.Kind {
	case OutcomeAlreadyMet:
		return "already met"
	case OutcomeReachable:
		return fmt.Sprintf("%d months", t.Months)
	default:
		return "unreachable"
	}
}

type timeToTargetJSON struct {
	Status string            `json:"status"`
	Months *int              `json:"months"`
	Reason UnreachableReason `json:"reason,omitempty"`
}

// MarshalJSON renders unreachable outcomes with a null month count.
func (t TimeToTarget) MarshalJSON() ([]byte, error) {
	out := timeToTargetJSON{Status: t.Kind.String(), Reason: t.Reason}
	if n, ok := t.MonthCount(); ok {
		out.Months = &n
	}
	return json.Marshal(out)
}

// CTCEstimate is the result of inverting the take-home function
type CTCEstimate struct {
	RequiredAnnualCTC decimal.Decimal `json:"required_annual_ctc"`
	AchievedTakeHome  decimal.Decimal `json:"achieved_take_home"`
	Iterations        int             `json:"iterations"`
	Converged         bool            `json:"converged"`
	Message           string          `json:"message,omitempty"`
}

// RangeRow is one CTC point of a combined planning report
type RangeRow struct {
	AnnualCTC       decimal.Decimal `json:"annual_ctc"`
	YearlyTax       decimal.Decimal `json:"yearly_tax"`
	YearlyTakeHome  decimal.Decimal `json:"yearly_take_home"`
	MonthlyTakeHome decimal.Decimal `json:"monthly_take_home"`
	MonthlySavings  decimal.Decimal `json:"monthly_savings"`
	TimeToTarget    *TimeToTarget   `json:"time_to_target,omitempty"`
}

// RangeReport collects a full sweep for the output formatters
type RangeReport struct {
	PolicyName     string              `json:"policy_name"`
	Range          RangeSpec           `json:"range"`
	MonthlyExpense decimal.Decimal     `json:"monthly_expense"`
	Target         *TimeToTargetParams `json:"target,omitempty"`
	Rows           []RangeRow          `json:"rows"`
	Assumptions    []string            `json:"assumptions"`
}

// RebateCliff locates the take-home drop just above the rebate threshold
// and the CTC at which take-home climbs back to its value at the cliff.
type RebateCliff struct {
	CliffCTC        decimal.Decimal `json:"cliff_ctc"` // highest gross CTC that still receives the rebate
	TakeHomeAtCliff decimal.Decimal `json:"take_home_at_cliff"`
	DropJustAbove   decimal.Decimal `json:"drop_just_above"`
	RecoveryCTC     decimal.Decimal `json:"recovery_ctc"`
}
