package api

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// a failed write means the client went away; nothing useful to send
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads a single JSON object of at most 1 MiB.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v)
}

// amount renders a decimal as a JSON number rounded to paise.
func amount(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
