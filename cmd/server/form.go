package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Simplici0/recipecost/internal/costing"
	"github.com/Simplici0/recipecost/internal/money"
)

// formRow keeps the raw text of one editor row so invalid input is echoed back as typed.
type formRow struct {
	Name            string
	PackagePrice    string
	PackageQuantity string
	UsedQuantity    string
}

func (r formRow) blank() bool {
	return r.Name == "" && r.PackagePrice == "" && r.PackageQuantity == "" && r.UsedQuantity == ""
}

type calcForm struct {
	Portions string
	Margin   string
	Rows     []formRow
}

var fieldLabels = map[string]string{
	"package_price":    "Preço Pacote (R$)",
	"package_quantity": "Qtd. Pacote",
	"used_quantity":    "Qtd. Usada",
}

// readCalcForm collects the editor state from a parsed form. The repeated
// row fields are aligned by index; missing trailing cells read as empty.
func readCalcForm(r *http.Request) calcForm {
	names := r.Form["name"]
	prices := r.Form["package_price"]
	packages := r.Form["package_quantity"]
	used := r.Form["used_quantity"]

	n := max(len(names), len(prices), len(packages), len(used))
	at := func(values []string, i int) string {
		if i < len(values) {
			return strings.TrimSpace(values[i])
		}
		return ""
	}

	form := calcForm{
		Portions: strings.TrimSpace(r.FormValue("portions")),
		Margin:   strings.TrimSpace(r.FormValue("margin")),
		Rows:     make([]formRow, 0, n),
	}
	for i := 0; i < n; i++ {
		form.Rows = append(form.Rows, formRow{
			Name:            at(names, i),
			PackagePrice:    at(prices, i),
			PackageQuantity: at(packages, i),
			UsedQuantity:    at(used, i),
		})
	}
	return form
}

// applyEditorActions handles the add-row and remove-row buttons.
func (f *calcForm) applyEditorActions(r *http.Request) {
	if raw := r.FormValue("remove"); raw != "" {
		if i, err := strconv.Atoi(raw); err == nil && i >= 0 && i < len(f.Rows) {
			f.Rows = append(f.Rows[:i], f.Rows[i+1:]...)
		}
	}
	if r.FormValue("add") != "" {
		f.Rows = append(f.Rows, formRow{})
	}
}

func (f calcForm) params() (costing.Params, error) {
	var p costing.Params

	portions, err := strconv.Atoi(f.Portions)
	if err != nil {
		return p, errors.New("Número de porções deve ser um número inteiro")
	}
	p.Portions = portions

	if f.Margin != "" {
		margin, err := money.ParseNumber(f.Margin)
		if err != nil {
			return p, errors.New("Margem de lucro deve ser numérica")
		}
		p.MarginPercent = margin
	}

	return p, nil
}

// ingredients converts non-blank rows. Empty numeric cells count as zero.
func (f calcForm) ingredients() ([]costing.Ingredient, error) {
	rows := make([]costing.Ingredient, 0, len(f.Rows))
	for _, row := range f.Rows {
		if row.blank() {
			continue
		}
		line := len(rows) + 1

		ing := costing.Ingredient{Name: row.Name}
		var err error
		if ing.PackagePrice, err = parseCell(row.PackagePrice, "package_price", line); err != nil {
			return nil, err
		}
		if ing.PackageQuantity, err = parseCell(row.PackageQuantity, "package_quantity", line); err != nil {
			return nil, err
		}
		if ing.UsedQuantity, err = parseCell(row.UsedQuantity, "used_quantity", line); err != nil {
			return nil, err
		}
		rows = append(rows, ing)
	}
	return rows, nil
}

func parseCell(raw, field string, line int) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	value, err := money.ParseNumber(raw)
	if err != nil {
		return 0, fmt.Errorf("Linha %d: %s deve ser numérico", line, fieldLabels[field])
	}
	return value, nil
}

func formFromRecipe(params costing.Params, rows []costing.Ingredient) calcForm {
	form := calcForm{
		Portions: strconv.Itoa(params.Portions),
		Margin:   formatInput(params.MarginPercent),
		Rows:     make([]formRow, 0, len(rows)),
	}
	for _, ing := range rows {
		form.Rows = append(form.Rows, formRow{
			Name:            ing.Name,
			PackagePrice:    formatInput(ing.PackagePrice),
			PackageQuantity: formatInput(ing.PackageQuantity),
			UsedQuantity:    formatInput(ing.UsedQuantity),
		})
	}
	return form
}

func formatInput(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// describeError turns a calculation error into the inline message shown to the user.
func describeError(err error) string {
	var rowErr *costing.RowError
	switch {
	case errors.Is(err, costing.ErrNoIngredients):
		return "Adicione pelo menos um ingrediente para calcular o custo."
	case errors.Is(err, costing.ErrInvalidPortions):
		return "Número de porções deve ser pelo menos 1."
	case errors.Is(err, costing.ErrNegativeMargin):
		return "Margem de lucro não pode ser negativa."
	case errors.Is(err, costing.ErrMarginSaturated):
		return "Margem de lucro deve ser menor que 100%: com 100% ou mais o preço de venda não existe."
	case errors.Is(err, costing.ErrOverflow):
		return "Valores grandes demais: o custo calculado excede o limite numérico. Revise as quantidades e preços."
	case errors.As(err, &rowErr):
		label := fieldLabels[rowErr.Field]
		prefix := fmt.Sprintf("Linha %d", rowErr.Row+1)
		if rowErr.Name != "" {
			prefix += " (" + rowErr.Name + ")"
		}
		if errors.Is(rowErr, costing.ErrNegativeValue) {
			return fmt.Sprintf("%s: %s não pode ser negativo.", prefix, label)
		}
		return fmt.Sprintf("%s: %s deve ser um número finito.", prefix, label)
	case errors.Is(err, costing.ErrNotFinite):
		return "Margem de lucro deve ser um número finito."
	}
	return err.Error()
}
