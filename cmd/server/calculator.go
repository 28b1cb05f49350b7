package main

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/Simplici0/recipecost/internal/chart"
	"github.com/Simplici0/recipecost/internal/costing"
	"github.com/Simplici0/recipecost/internal/export"
	"github.com/Simplici0/recipecost/internal/recipes"
)

const donutRadius = 130

type baseViewData struct {
	ErrorMessage string
	Advisory     string
}

type lineView struct {
	Name    string
	Cost    string
	Skipped bool
}

type sliceView struct {
	chart.Slice
	Label       string
	SwatchStyle template.CSS
}

type donutView struct {
	chart.Donut
	Size   float64
	Slices []sliceView
}

type barView struct {
	Name  string
	Value string
	Style template.CSS
}

type resultView struct {
	TotalCost string
	UnitCost  string
	SalePrice string
	SaleLabel string
	Lines     []lineView
	Donut     *donutView
	Bars      []barView
}

type calculatorViewData struct {
	baseViewData
	RecipeName string
	Portions   string
	Margin     string
	Rows       []formRow
	Warnings   []string
	Result     *resultView
}

func (s *server) handleCalculatorPage(w http.ResponseWriter, r *http.Request) {
	var (
		recipe recipes.Recipe
		err    error
	)
	if raw := r.URL.Query().Get("recipe"); raw != "" {
		id, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil || id <= 0 {
			http.Error(w, "invalid recipe id", http.StatusBadRequest)
			return
		}
		recipe, err = s.recipes.Get(r.Context(), id)
	} else {
		recipe, err = s.recipes.Default(r.Context())
	}

	switch {
	case errors.Is(err, recipes.ErrNotFound):
		if r.URL.Query().Has("recipe") {
			http.NotFound(w, r)
			return
		}
		s.log.Warn("no recipe template found, starting with an empty editor")
		recipe = recipes.Recipe{Params: costing.Params{Portions: 1}}
	case err != nil:
		s.log.Error("load recipe template: %v", err)
		http.Error(w, "failed to load recipe", http.StatusInternalServerError)
		return
	}

	form := formFromRecipe(recipe.Params, recipe.Ingredients)
	if len(form.Rows) == 0 {
		form.Rows = append(form.Rows, formRow{})
	}

	view, status := s.evaluate(form)
	view.RecipeName = recipe.Name
	s.render(w, status, "calculator.html", view)
}

func (s *server) handleCalculatorSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := readCalcForm(r)
	form.applyEditorActions(r)

	view, status := s.evaluate(form)
	s.render(w, status, "calculator.html", view)
}

func (s *server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	res, err := s.calculate(readCalcForm(r))
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, costing.ErrNoIngredients) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, describeError(err), status)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	if err := export.WriteCSV(w, res); err != nil {
		s.log.Error("write csv export: %v", err)
	}
}

// calculate parses the form and runs the cost computation.
func (s *server) calculate(form calcForm) (costing.Result, error) {
	params, err := form.params()
	if err != nil {
		return costing.Result{}, err
	}
	rows, err := form.ingredients()
	if err != nil {
		return costing.Result{}, err
	}
	return costing.Compute(rows, params)
}

// evaluate recomputes everything from the submitted form. It returns the page
// data and the HTTP status: 400 for invalid input, 200 otherwise, including
// the empty-list advisory.
func (s *server) evaluate(form calcForm) (calculatorViewData, int) {
	view := calculatorViewData{
		Portions: form.Portions,
		Margin:   form.Margin,
		Rows:     form.Rows,
	}

	res, err := s.calculate(form)
	switch {
	case errors.Is(err, costing.ErrNoIngredients):
		view.Advisory = describeError(err)
		return view, http.StatusOK
	case err != nil:
		view.ErrorMessage = describeError(err)
		return view, http.StatusBadRequest
	}

	for _, warning := range res.Warnings {
		view.Warnings = append(view.Warnings, fmt.Sprintf("Linha %d (%s): %s.", warning.Row+1, warning.Name, warning.Message))
	}
	view.Result = s.resultView(res)
	return view, http.StatusOK
}

func (s *server) resultView(res costing.Result) *resultView {
	rv := &resultView{
		TotalCost: s.money.Format(res.TotalCost),
		UnitCost:  s.money.Format(res.UnitCost),
		SalePrice: s.money.Format(res.SalePrice),
		SaleLabel: fmt.Sprintf("Preço de venda (lucro %s)", s.money.Percent(res.Params.MarginPercent)),
		Lines:     make([]lineView, 0, len(res.Lines)),
	}
	for _, line := range res.Lines {
		rv.Lines = append(rv.Lines, lineView{
			Name:    line.Name,
			Cost:    s.money.Format(line.Cost),
			Skipped: line.Skipped,
		})
	}

	if !s.charts {
		return rv
	}

	donut := chart.NewDonut(res, donutRadius)
	if len(donut.Slices) > 0 {
		dv := &donutView{Donut: donut, Size: 2 * donut.Radius}
		for _, slice := range donut.Slices {
			dv.Slices = append(dv.Slices, sliceView{
				Slice:       slice,
				Label:       fmt.Sprintf("%.1f%%", slice.Share*100),
				SwatchStyle: template.CSS("background: " + slice.Color),
			})
		}
		rv.Donut = dv
	}

	for _, bar := range chart.Bars(res) {
		rv.Bars = append(rv.Bars, barView{
			Name:  bar.Name,
			Value: s.money.Format(bar.Value),
			Style: template.CSS(fmt.Sprintf("width: %.2f%%; background: %s", bar.Percent, bar.Color)),
		})
	}

	return rv
}
