package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Simplici0/recipecost/internal/chart"
	"github.com/Simplici0/recipecost/internal/costing"
	"github.com/Simplici0/recipecost/internal/money"
)

const barWidth = 30

// report renders a costing result. Styles come from a renderer bound to the
// output so colors are dropped when it is not a terminal.
type report struct {
	out    io.Writer
	money  money.Formatter
	title  lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	muted  lipgloss.Style
	warn   lipgloss.Style
	render *lipgloss.Renderer
}

func newReport(out io.Writer, formatter money.Formatter) *report {
	r := lipgloss.NewRenderer(out)
	return &report{
		out:    out,
		money:  formatter,
		render: r,
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#bae6fd")),
		label:  r.NewStyle().Foreground(lipgloss.Color("#a1a1aa")).Width(30),
		value:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#bbf7d0")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("#71717a")).Italic(true),
		warn:   r.NewStyle().Foreground(lipgloss.Color("#fca5a5")),
	}
}

func (r *report) write(res costing.Result, bars bool) {
	fmt.Fprintln(r.out, r.title.Render("💰 Resultado"))
	r.metric("Custo total da receita", res.TotalCost)
	r.metric("Custo por fatia/unidade", res.UnitCost)
	r.metric(fmt.Sprintf("Preço de venda (lucro %s)", r.money.Percent(res.Params.MarginPercent)), res.SalePrice)
	fmt.Fprintln(r.out)

	fmt.Fprintln(r.out, r.title.Render("📊 Detalhamento dos custos por ingrediente"))
	fmt.Fprintln(r.out, r.breakdown(res))

	for _, w := range res.Warnings {
		fmt.Fprintln(r.out, r.warn.Render(fmt.Sprintf("Linha %d (%s): %s", w.Row+1, w.Name, w.Message)))
	}

	if bars {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, r.title.Render("Custo por ingrediente"))
		for _, line := range r.bars(res) {
			fmt.Fprintln(r.out, line)
		}
	}
}

func (r *report) metric(label string, v float64) {
	fmt.Fprintln(r.out, r.label.Render(label)+" "+r.value.Render(r.money.Format(v)))
}

func (r *report) breakdown(res costing.Result) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Ingrediente", "Custo (R$)")
	for _, line := range res.Lines {
		cost := r.money.Format(line.Cost)
		if line.Skipped {
			cost = r.muted.Render(cost + " (ignorado)")
		}
		t.Row(line.Name, cost)
	}
	return t.Render()
}

func (r *report) bars(res costing.Result) []string {
	projected := chart.Bars(res)

	nameWidth := 0
	for _, b := range projected {
		nameWidth = max(nameWidth, lipgloss.Width(b.Name))
	}

	lines := make([]string, 0, len(projected))
	for _, b := range projected {
		n := int(math.Round(b.Percent / 100 * barWidth))
		bar := r.render.NewStyle().Foreground(lipgloss.Color(b.Color)).Render(strings.Repeat("█", n))
		name := r.render.NewStyle().Width(nameWidth).Render(b.Name)
		lines = append(lines, fmt.Sprintf("%s %s %s", name, bar, r.money.Format(b.Value)))
	}
	return lines
}
