package main

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Simplici0/recipecost/internal/costing"
)

func parsedRequestForm(t *testing.T, form url.Values) calcForm {
	t.Helper()

	req := httptest.NewRequest("POST", "/", nil)
	req.Form = form
	return readCalcForm(req)
}

func TestReadCalcForm_SkipsBlankRowsAndParsesCommaDecimals(t *testing.T) {
	form := url.Values{}
	form.Set("portions", " 4 ")
	form.Set("margin", "12,5")
	form["name"] = []string{"Ovo", "", "Leite"}
	form["package_price"] = []string{"7,00", "", "1.234,50"}
	form["package_quantity"] = []string{"12", "", "1000"}
	form["used_quantity"] = []string{"1", ""}

	cf := parsedRequestForm(t, form)
	if len(cf.Rows) != 3 {
		t.Fatalf("expected 3 raw rows, got %d", len(cf.Rows))
	}

	params, err := cf.params()
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	if params.Portions != 4 || params.MarginPercent != 12.5 {
		t.Fatalf("unexpected params: %+v", params)
	}

	rows, err := cf.ingredients()
	if err != nil {
		t.Fatalf("ingredients: %v", err)
	}
	want := []costing.Ingredient{
		{Name: "Ovo", PackagePrice: 7, PackageQuantity: 12, UsedQuantity: 1},
		{Name: "Leite", PackagePrice: 1234.5, PackageQuantity: 1000, UsedQuantity: 0},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %+v", len(want), rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestCalcForm_InvalidNumbers(t *testing.T) {
	form := url.Values{}
	form.Set("portions", "6")
	form["name"] = []string{"Ovo"}
	form["package_price"] = []string{"sete"}
	form["package_quantity"] = []string{"12"}
	form["used_quantity"] = []string{"1"}

	cf := parsedRequestForm(t, form)
	_, err := cf.ingredients()
	if err == nil || !strings.Contains(err.Error(), "Linha 1: Preço Pacote (R$) deve ser numérico") {
		t.Fatalf("expected numeric validation error, got %v", err)
	}

	for _, portions := range []string{"", "2.5", "seis"} {
		cf.Portions = portions
		if _, err := cf.params(); err == nil {
			t.Fatalf("portions %q: expected validation error", portions)
		}
	}
}

func TestDescribeError(t *testing.T) {
	rowErr := &costing.RowError{Row: 1, Name: "Leite", Field: "used_quantity", Err: costing.ErrNegativeValue}

	tests := []struct {
		err  error
		want string
	}{
		{costing.ErrNoIngredients, "Adicione pelo menos um ingrediente para calcular o custo."},
		{costing.ErrInvalidPortions, "Número de porções deve ser pelo menos 1."},
		{costing.ErrNegativeMargin, "Margem de lucro não pode ser negativa."},
		{rowErr, "Linha 2 (Leite): Qtd. Usada não pode ser negativo."},
	}
	for _, tc := range tests {
		if got := describeError(tc.err); got != tc.want {
			t.Fatalf("describeError(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
