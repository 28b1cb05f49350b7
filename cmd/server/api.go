package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Simplici0/recipecost/internal/costing"
)

type calculateRequest struct {
	Ingredients   []costing.Ingredient `json:"ingredients"`
	Portions      int                  `json:"portions"`
	MarginPercent float64              `json:"margin_percent"`
}

type formattedTotals struct {
	TotalCost string `json:"total_cost"`
	UnitCost  string `json:"unit_cost"`
	SalePrice string `json:"sale_price"`
}

type calculateResponse struct {
	costing.Result
	Formatted formattedTotals `json:"formatted"`
}

type apiError struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *server) handleAPICalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error(), Code: "invalid_json", Message: "JSON inválido"})
		return
	}

	res, err := costing.Compute(req.Ingredients, costing.Params{
		Portions:      req.Portions,
		MarginPercent: req.MarginPercent,
	})
	if err != nil {
		status, code := http.StatusBadRequest, "invalid_input"
		switch {
		case errors.Is(err, costing.ErrNoIngredients):
			status, code = http.StatusUnprocessableEntity, "empty_input"
		case errors.Is(err, costing.ErrMarginSaturated):
			code = "margin_saturated"
		case errors.Is(err, costing.ErrOverflow):
			code = "overflow"
		}
		s.writeJSON(w, status, apiError{Error: err.Error(), Code: code, Message: describeError(err)})
		return
	}

	s.writeJSON(w, http.StatusOK, calculateResponse{
		Result: res,
		Formatted: formattedTotals{
			TotalCost: s.money.Format(res.TotalCost),
			UnitCost:  s.money.Format(res.UnitCost),
			SalePrice: s.money.Format(res.SalePrice),
		},
	})
}

// writeJSON encodes before writing the header so an encode failure becomes a
// 500 instead of a truncated success.
func (s *server) writeJSON(w http.ResponseWriter, status int, body any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		s.log.Error("encode json response: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Error("write json response: %v", err)
	}
}
