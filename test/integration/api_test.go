package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctcplan/ctc-planner/internal/api"
	"github.com/ctcplan/ctc-planner/internal/config"
	"github.com/ctcplan/ctc-planner/internal/logging"
)

func newTestServer(t *testing.T, policyPath string) *httptest.Server {
	t.Helper()
	engine := loadEngine(t, policyPath)
	srv := api.NewServer(engine, config.DefaultSettings(), logging.NewNop())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string, out any) int {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/v1/tax"+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestAPIWithPolicyFile(t *testing.T) {
	ts := newTestServer(t, "../testdata/flat_policy.yaml")

	var th struct {
		YearlyTakeHome   float64 `json:"yearlyTakeHome"`
		YearlyTaxPayable float64 `json:"yearlyTaxPayable"`
	}
	require.Equal(t, http.StatusOK, post(t, ts, "/calculate-take-home", `{"annualCtc": 1000000}`, &th))
	assert.Equal(t, 900000.0, th.YearlyTakeHome)
	assert.Equal(t, 100000.0, th.YearlyTaxPayable)

	var pol struct {
		Name string `json:"name"`
	}
	resp, err := http.Get(ts.URL + "/api/v1/tax/policy")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pol))
	assert.Equal(t, "flat-ten", pol.Name)
}

func TestAPITimeToTargetFlow(t *testing.T) {
	ts := newTestServer(t, "../testdata/reference_policy.yaml")

	var out struct {
		Results []struct {
			AnnualCTC          float64 `json:"annualCtc"`
			TimeToTargetMonths *int    `json:"timeToTargetMonths"`
			Status             string  `json:"status"`
		} `json:"results"`
	}
	body := `{"minCtc": 1000000, "maxCtc": 1200000, "increment": 200000,
		"monthlyExpense": 90000, "targetAmount": 1000000}`
	require.Equal(t, http.StatusOK, post(t, ts, "/calculate-time-to-target", body, &out))
	require.Len(t, out.Results, 2)

	// 10L cannot cover 90k a month; 12L saves 10k a month.
	assert.Equal(t, "unreachable", out.Results[0].Status)
	assert.Nil(t, out.Results[0].TimeToTargetMonths)
	require.NotNil(t, out.Results[1].TimeToTargetMonths)
	assert.Equal(t, 100, *out.Results[1].TimeToTargetMonths)

	var ctc struct {
		RequiredAnnualCTC float64 `json:"requiredAnnualCtc"`
		Message           string  `json:"message"`
	}
	require.Equal(t, http.StatusBadRequest, post(t, ts, "/calculate-ctc", `{"desiredYearlyTakeHome": 0}`, &ctc))
	assert.Equal(t, "Desired yearly take-home must be positive.", ctc.Message)
}
