// Package chart projects a costing result onto simple chart geometry.
//
// The donut is drawn as stacked SVG circles whose stroke-dasharray covers each
// slice, so no arc math is needed and a single 100% slice renders correctly.
package chart

import (
	"math"

	"github.com/Simplici0/recipecost/internal/costing"
)

// Hole is the inner radius of the donut as a fraction of the outer radius.
const Hole = 0.4

var palette = []string{
	"#636efa", "#ef553b", "#00cc96", "#ab63fa", "#ffa15a",
	"#19d3f3", "#ff6692", "#b6e880", "#ff97ff", "#fecb52",
}

// Color returns the palette entry for the i-th series.
func Color(i int) string {
	return palette[i%len(palette)]
}

// Slice is one donut segment.
type Slice struct {
	Name   string
	Value  float64
	Share  float64
	Dash   float64
	Gap    float64
	Offset float64
	Color  string
}

// Donut is the geometry of a donut of the given outer radius.
type Donut struct {
	Radius        float64
	StrokeRadius  float64
	StrokeWidth   float64
	Circumference float64
	Slices        []Slice
}

// NewDonut builds donut slices for lines with a positive cost.
// The result has no slices when the total cost is not positive.
func NewDonut(res costing.Result, radius float64) Donut {
	strokeRadius := radius * (1 + Hole) / 2
	d := Donut{
		Radius:        radius,
		StrokeRadius:  strokeRadius,
		StrokeWidth:   radius * (1 - Hole),
		Circumference: 2 * math.Pi * strokeRadius,
	}
	if res.TotalCost <= 0 {
		return d
	}

	shares := res.Shares()
	var drawn float64
	for i, line := range res.Lines {
		if line.Cost <= 0 {
			continue
		}
		share := shares[i]
		dash := share * d.Circumference
		d.Slices = append(d.Slices, Slice{
			Name:   line.Name,
			Value:  line.Cost,
			Share:  share,
			Dash:   dash,
			Gap:    d.Circumference - dash,
			Offset: -drawn,
			Color:  Color(i),
		})
		drawn += dash
	}
	return d
}

// Bar is one horizontal bar; Percent is relative to the largest line cost.
type Bar struct {
	Name    string
	Value   float64
	Percent float64
	Color   string
}

// Bars returns one bar per line, in line order.
func Bars(res costing.Result) []Bar {
	var largest float64
	for _, line := range res.Lines {
		largest = math.Max(largest, line.Cost)
	}

	bars := make([]Bar, 0, len(res.Lines))
	for i, line := range res.Lines {
		b := Bar{Name: line.Name, Value: line.Cost, Color: Color(i)}
		if largest > 0 {
			b.Percent = line.Cost / largest * 100
		}
		bars = append(bars, b)
	}
	return bars
}
