package chart

import (
	"math"
	"testing"

	"github.com/Simplici0/recipecost/internal/costing"
)

func compute(t *testing.T, rows ...costing.Ingredient) costing.Result {
	t.Helper()
	res, err := costing.Compute(rows, costing.Params{Portions: 1})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return res
}

func TestNewDonut_SlicesCoverCircle(t *testing.T) {
	res := compute(t,
		costing.Ingredient{Name: "a", PackagePrice: 1, PackageQuantity: 1, UsedQuantity: 1},
		costing.Ingredient{Name: "zero", PackagePrice: 0, PackageQuantity: 1, UsedQuantity: 1},
		costing.Ingredient{Name: "b", PackagePrice: 3, PackageQuantity: 1, UsedQuantity: 1},
	)

	d := NewDonut(res, 100)

	if len(d.Slices) != 2 {
		t.Fatalf("expected zero-cost line to be omitted, got %+v", d.Slices)
	}
	if math.Abs(d.StrokeRadius-70) > 1e-9 || math.Abs(d.StrokeWidth-60) > 1e-9 {
		t.Fatalf("unexpected stroke geometry: %+v", d)
	}

	var dashes float64
	for _, s := range d.Slices {
		dashes += s.Dash
		if math.Abs(s.Dash+s.Gap-d.Circumference) > 1e-9 {
			t.Fatalf("slice %s dash+gap != circumference", s.Name)
		}
	}
	if math.Abs(dashes-d.Circumference) > 1e-9 {
		t.Fatalf("dashes %v, want %v", dashes, d.Circumference)
	}
	if d.Slices[1].Offset != -d.Slices[0].Dash {
		t.Fatalf("second slice should start where the first ends: %+v", d.Slices)
	}
	if d.Slices[1].Name != "b" || d.Slices[1].Color != Color(2) {
		t.Fatalf("slice keeps the line's color index: %+v", d.Slices[1])
	}
	shares := res.Shares()
	if d.Slices[0].Share != shares[0] || d.Slices[1].Share != shares[2] {
		t.Fatalf("slice shares %v/%v, want result shares %v", d.Slices[0].Share, d.Slices[1].Share, shares)
	}
}

func TestNewDonut_ZeroTotal(t *testing.T) {
	res := compute(t, costing.Ingredient{Name: "água", PackageQuantity: 1, UsedQuantity: 1})
	if d := NewDonut(res, 100); len(d.Slices) != 0 {
		t.Fatalf("expected no slices, got %+v", d.Slices)
	}
}

func TestBars_RelativeToLargest(t *testing.T) {
	res := compute(t,
		costing.Ingredient{Name: "a", PackagePrice: 1, PackageQuantity: 1, UsedQuantity: 1},
		costing.Ingredient{Name: "b", PackagePrice: 4, PackageQuantity: 1, UsedQuantity: 1},
		costing.Ingredient{Name: "c", PackagePrice: 9, PackageQuantity: 0, UsedQuantity: 1},
	)

	bars := Bars(res)
	if len(bars) != 3 {
		t.Fatalf("expected a bar per line, got %d", len(bars))
	}
	if bars[0].Percent != 25 || bars[1].Percent != 100 || bars[2].Percent != 0 {
		t.Fatalf("unexpected percents: %+v", bars)
	}
}
