package api

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ctcplan/ctc-planner/internal/domain"
)

// ============================================================
// Request / response bodies
// ============================================================

type takeHomeRequest struct {
	AnnualCTC *decimal.Decimal `json:"annualCtc"`
}

type takeHomeResponse struct {
	YearlyTakeHome    float64 `json:"yearlyTakeHome"`
	MonthlyTakeHome   float64 `json:"monthlyTakeHome"`
	YearlyTaxPayable  float64 `json:"yearlyTaxPayable"`
	MonthlyTaxPayable float64 `json:"monthlyTaxPayable"`
}

type savingsRequest struct {
	AnnualCTC      *decimal.Decimal `json:"annualCtc"`
	AnnualExpenses *decimal.Decimal `json:"annualExpenses"`
	MonthlyExpense *decimal.Decimal `json:"monthlyExpense"`
}

type savingsResponse struct {
	YearlySavings   float64 `json:"yearlySavings"`
	MonthlySavings  float64 `json:"monthlySavings"`
	YearlyTakeHome  float64 `json:"yearlyTakeHome"`
	MonthlyTakeHome float64 `json:"monthlyTakeHome"`
}

type savingsRangeRequest struct {
	MinCTC         *decimal.Decimal `json:"minCtc"`
	MaxCTC         *decimal.Decimal `json:"maxCtc"`
	MonthlyExpense *decimal.Decimal `json:"monthlyExpense"`
	Increment      *decimal.Decimal `json:"increment"`
}

type savingsRangeResult struct {
	AnnualCTC      float64 `json:"annualCtc"`
	MonthlySavings float64 `json:"monthlySavings"`
}

type savingsRangeResponse struct {
	Results []savingsRangeResult `json:"results"`
}

type timeToTargetRequest struct {
	savingsRangeRequest
	TargetAmount       *decimal.Decimal `json:"targetAmount"`
	CurrentInvestments *decimal.Decimal `json:"currentInvestments"`
	LumpsumExpenses    *decimal.Decimal `json:"lumpsumExpenses"`
	MonthlySIPAmount   *decimal.Decimal `json:"monthlySipAmount"`
	SIPCagr            *decimal.Decimal `json:"sipCagr"`
	InvestmentCagr     *decimal.Decimal `json:"investmentCagr"` // older clients
}

type timeToTargetResult struct {
	AnnualCTC          float64                  `json:"annualCtc"`
	TimeToTargetMonths *int                     `json:"timeToTargetMonths"`
	Status             string                   `json:"status"`
	Reason             domain.UnreachableReason `json:"reason,omitempty"`
}

type timeToTargetResponse struct {
	Results []timeToTargetResult `json:"results"`
}

type ctcRequest struct {
	DesiredYearlyTakeHome *decimal.Decimal `json:"desiredYearlyTakeHome"`
}

type ctcResponse struct {
	RequiredAnnualCTC float64 `json:"requiredAnnualCtc"`
	Message           string  `json:"message,omitempty"`
}

type rebateCliffResponse struct {
	HasCliff        bool    `json:"hasCliff"`
	CliffCtc        float64 `json:"cliffCtc,omitempty"`
	TakeHomeAtCliff float64 `json:"takeHomeAtCliff,omitempty"`
	DropJustAbove   float64 `json:"dropJustAbove,omitempty"`
	RecoveryCtc     float64 `json:"recoveryCtc,omitempty"`
}

type healthResponse struct {
	Status string `json:"status"`
	Policy string `json:"policy"`
}

// ============================================================
// Validation helpers
// ============================================================

func required(name string, v *decimal.Decimal) error {
	if v == nil {
		return fmt.Errorf("%s is required", name)
	}
	if v.IsNegative() {
		return fmt.Errorf("%s cannot be negative", name)
	}
	return nil
}

func optional(name string, v *decimal.Decimal) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, nil
	}
	if v.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s cannot be negative", name)
	}
	return *v, nil
}

// rangeSpec validates the shared range fields and applies the default increment and the point cap.
func (s *Server) rangeSpec(req savingsRangeRequest) (domain.RangeSpec, error) {
	for _, f := range []struct {
		name string
		v    *decimal.Decimal
	}{{"minCtc", req.MinCTC}, {"maxCtc", req.MaxCTC}, {"monthlyExpense", req.MonthlyExpense}} {
		if err := required(f.name, f.v); err != nil {
			return domain.RangeSpec{}, err
		}
	}
	if req.MinCTC.GreaterThan(*req.MaxCTC) {
		return domain.RangeSpec{}, fmt.Errorf("minCtc cannot exceed maxCtc")
	}

	spec := domain.RangeSpec{Min: *req.MinCTC, Max: *req.MaxCTC}
	if req.Increment != nil {
		spec.Step = *req.Increment
	}
	spec = spec.WithDefaultStep()

	if n, limit := spec.PointCount(), s.settings.API.MaxSweepPoints; n > limit {
		return domain.RangeSpec{}, fmt.Errorf("range produces %d points, more than the limit of %d; use a larger increment", n, limit)
	}
	return spec, nil
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Policy: s.engine.Policy().Name})
}

func (s *Server) handlePolicy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Policy())
}

func (s *Server) handleRebateCliff(w http.ResponseWriter, r *http.Request) {
	cliff, ok := s.engine.FindRebateCliff()
	if !ok {
		writeJSON(w, http.StatusOK, rebateCliffResponse{})
		return
	}
	writeJSON(w, http.StatusOK, rebateCliffResponse{
		HasCliff:        true,
		CliffCtc:        amount(cliff.CliffCTC),
		TakeHomeAtCliff: amount(cliff.TakeHomeAtCliff),
		DropJustAbove:   amount(cliff.DropJustAbove),
		RecoveryCtc:     amount(cliff.RecoveryCTC),
	})
}

func (s *Server) handleTakeHome(w http.ResponseWriter, r *http.Request) {
	var req takeHomeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := required("annualCtc", req.AnnualCTC); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := s.engine.ComputeTakeHome(*req.AnnualCTC)
	writeJSON(w, http.StatusOK, takeHomeResponse{
		YearlyTakeHome:    amount(res.YearlyTakeHome),
		MonthlyTakeHome:   amount(res.MonthlyTakeHome),
		YearlyTaxPayable:  amount(res.YearlyTaxPayable),
		MonthlyTaxPayable: amount(res.MonthlyTaxPayable),
	})
}

func (s *Server) handleSavings(w http.ResponseWriter, r *http.Request) {
	var req savingsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := required("annualCtc", req.AnnualCTC); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.AnnualExpenses != nil && req.MonthlyExpense != nil {
		writeError(w, http.StatusBadRequest, "provide either annualExpenses or monthlyExpense, not both")
		return
	}

	var expense domain.Expense
	switch {
	case req.AnnualExpenses != nil:
		if req.AnnualExpenses.IsNegative() {
			writeError(w, http.StatusBadRequest, "annualExpenses cannot be negative")
			return
		}
		expense = domain.AnnualExpense(*req.AnnualExpenses)
	case req.MonthlyExpense != nil:
		if req.MonthlyExpense.IsNegative() {
			writeError(w, http.StatusBadRequest, "monthlyExpense cannot be negative")
			return
		}
		expense = domain.MonthlyExpense(*req.MonthlyExpense)
	}

	res := s.engine.ComputeSavings(*req.AnnualCTC, expense)
	writeJSON(w, http.StatusOK, savingsResponse{
		YearlySavings:   amount(res.YearlySavings),
		MonthlySavings:  amount(res.MonthlySavings),
		YearlyTakeHome:  amount(res.YearlyTakeHome),
		MonthlyTakeHome: amount(res.MonthlyTakeHome),
	})
}

func (s *Server) handleSavingsRange(w http.ResponseWriter, r *http.Request) {
	var req savingsRangeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	spec, err := s.rangeSpec(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	points := s.engine.SavingsForRange(spec, *req.MonthlyExpense)
	resp := savingsRangeResponse{Results: make([]savingsRangeResult, 0, len(points))}
	for _, p := range points {
		resp.Results = append(resp.Results, savingsRangeResult{
			AnnualCTC:      amount(p.AnnualCTC),
			MonthlySavings: amount(p.Metric),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTimeToTarget(w http.ResponseWriter, r *http.Request) {
	var req timeToTargetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	spec, err := s.rangeSpec(req.savingsRangeRequest)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.TargetAmount == nil || !req.TargetAmount.IsPositive() {
		writeError(w, http.StatusBadRequest, "targetAmount must be positive")
		return
	}

	params := domain.TimeToTargetParams{
		MonthlyExpense: *req.MonthlyExpense,
		TargetAmount:   *req.TargetAmount,
	}
	cagr := req.SIPCagr
	if cagr == nil {
		cagr = req.InvestmentCagr
	}
	for _, f := range []struct {
		name string
		v    *decimal.Decimal
		dst  *decimal.Decimal
	}{
		{"currentInvestments", req.CurrentInvestments, &params.CurrentInvestments},
		{"lumpsumExpenses", req.LumpsumExpenses, &params.LumpsumExpenses},
		{"monthlySipAmount", req.MonthlySIPAmount, &params.MonthlySIPAmount},
		{"sipCagr", cagr, &params.AnnualSIPGrowthRate},
	} {
		v, err := optional(f.name, f.v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		*f.dst = v
	}

	points := s.engine.TimeToTargetForRange(spec, params)
	resp := timeToTargetResponse{Results: make([]timeToTargetResult, 0, len(points))}
	for _, p := range points {
		res := timeToTargetResult{
			AnnualCTC: amount(p.AnnualCTC),
			Status:    p.Metric.Kind.String(),
			Reason:    p.Metric.Reason,
		}
		if n, ok := p.Metric.MonthCount(); ok {
			res.TimeToTargetMonths = &n
		}
		resp.Results = append(resp.Results, res)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCTC(w http.ResponseWriter, r *http.Request) {
	var req ctcRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DesiredYearlyTakeHome == nil || !req.DesiredYearlyTakeHome.IsPositive() {
		writeJSON(w, http.StatusBadRequest, ctcResponse{Message: "Desired yearly take-home must be positive."})
		return
	}

	est := s.engine.InvertTakeHome(*req.DesiredYearlyTakeHome)
	writeJSON(w, http.StatusOK, ctcResponse{
		RequiredAnnualCTC: amount(est.RequiredAnnualCTC),
		Message:           est.Message,
	})
}
