package costing

import (
	"math"
)

// Ingredient is one editable line of a recipe.
type Ingredient struct {
	Name            string  `json:"name"`
	PackagePrice    float64 `json:"package_price"`
	PackageQuantity float64 `json:"package_quantity"`
	UsedQuantity    float64 `json:"used_quantity"`
}

// Params holds the recipe-wide inputs.
type Params struct {
	Portions      int     `json:"portions"`
	MarginPercent float64 `json:"margin_percent"`
}

// Line is an ingredient together with its derived cost.
// Skipped is set when the package quantity is zero; Cost is then 0.
type Line struct {
	Ingredient
	Cost    float64 `json:"line_cost"`
	Skipped bool    `json:"skipped,omitempty"`
}

// Warning describes a row that was accepted but did not contribute to the total.
type Warning struct {
	Row     int    `json:"row"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Result groups the per-line costs and the recipe totals.
type Result struct {
	Lines     []Line    `json:"lines"`
	TotalCost float64   `json:"total_cost"`
	UnitCost  float64   `json:"unit_cost"`
	SalePrice float64   `json:"sale_price"`
	Params    Params    `json:"params"`
	Warnings  []Warning `json:"warnings,omitempty"`
}

// LineCost returns the share of the package price attributable to the used quantity.
// It reports false when the package quantity is zero.
func LineCost(ing Ingredient) (float64, bool) {
	if ing.PackageQuantity == 0 {
		return 0, false
	}
	return ing.PackagePrice * (ing.UsedQuantity / ing.PackageQuantity), true
}

// SalePrice inflates the unit cost so that marginPercent of the sale price is profit.
func SalePrice(unitCost, marginPercent float64) (float64, error) {
	if err := validateMargin(marginPercent); err != nil {
		return 0, err
	}
	if marginPercent == 0 {
		return unitCost, nil
	}
	return unitCost / (1 - marginPercent/100), nil
}

// Compute calculates line costs and totals for rows.
//
// Parameters are validated first. An empty row set yields ErrNoIngredients.
// Negative or non-finite row values are rejected with a *RowError. Rows whose
// package quantity is zero contribute nothing and produce a Warning. Totals
// that overflow float64 yield ErrOverflow instead of an infinite price.
func Compute(rows []Ingredient, params Params) (Result, error) {
	if params.Portions < 1 {
		return Result{}, ErrInvalidPortions
	}
	if err := validateMargin(params.MarginPercent); err != nil {
		return Result{}, err
	}
	if len(rows) == 0 {
		return Result{}, ErrNoIngredients
	}

	res := Result{
		Lines:  make([]Line, 0, len(rows)),
		Params: params,
	}

	for i, row := range rows {
		if err := validateRow(i, row); err != nil {
			return Result{}, err
		}

		cost, ok := LineCost(row)
		line := Line{Ingredient: row, Cost: cost, Skipped: !ok}
		if !ok {
			res.Warnings = append(res.Warnings, Warning{
				Row:     i,
				Name:    row.Name,
				Message: "quantidade do pacote é zero; custo ignorado",
			})
		}

		res.Lines = append(res.Lines, line)
		res.TotalCost += cost
	}

	res.UnitCost = res.TotalCost / float64(params.Portions)
	if !finite(res.TotalCost) || !finite(res.UnitCost) {
		return Result{}, ErrOverflow
	}

	sale, err := SalePrice(res.UnitCost, params.MarginPercent)
	if err != nil {
		return Result{}, err
	}
	if !finite(sale) {
		return Result{}, ErrOverflow
	}
	res.SalePrice = sale

	return res, nil
}

// Shares returns each line's fraction of the total cost, in line order.
// All shares are zero when the total is zero.
func (r Result) Shares() []float64 {
	shares := make([]float64, len(r.Lines))
	if r.TotalCost <= 0 {
		return shares
	}
	for i, line := range r.Lines {
		shares[i] = line.Cost / r.TotalCost
	}
	return shares
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validateMargin(marginPercent float64) error {
	switch {
	case math.IsNaN(marginPercent) || math.IsInf(marginPercent, 0):
		return ErrNotFinite
	case marginPercent < 0:
		return ErrNegativeMargin
	case marginPercent >= 100:
		return ErrMarginSaturated
	}
	return nil
}

func validateRow(i int, row Ingredient) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"package_price", row.PackagePrice},
		{"package_quantity", row.PackageQuantity},
		{"used_quantity", row.UsedQuantity},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &RowError{Row: i, Name: row.Name, Field: f.name, Err: ErrNotFinite}
		}
		if f.value < 0 {
			return &RowError{Row: i, Name: row.Name, Field: f.name, Err: ErrNegativeValue}
		}
	}
	return nil
}
