package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Simplici0/recipecost/internal/costing"
)

const (
	// Filename is the suggested download name.
	Filename = "custo_receita.csv"
	// ContentType is sent with the download.
	ContentType = "text/csv; charset=utf-8"
)

// Header is the column order of the interactive table with the derived cost appended.
var Header = []string{"Ingrediente", "Preço Pacote (R$)", "Qtd. Pacote", "Qtd. Usada", "Custo (R$)"}

const (
	colName = iota
	colPrice
	colPackage
	colUsed
	colCost
)

var headerAliases = map[string]int{
	"ingrediente":       colName,
	"name":              colName,
	"preço pacote (r$)": colPrice,
	"preco pacote (r$)": colPrice,
	"package_price":     colPrice,
	"qtd. pacote":       colPackage,
	"package_quantity":  colPackage,
	"qtd. usada":        colUsed,
	"used_quantity":     colUsed,
	"custo (r$)":        colCost,
	"line_cost":         colCost,
}

var ErrMissingColumn = errors.New("missing column")

// Record is one parsed CSV line. Cost is only set when the file carries the cost column.
type Record struct {
	costing.Ingredient
	Cost    float64
	HasCost bool
}

// WriteCSV encodes every line of res, including skipped ones, with a header row.
// Numbers keep full precision.
func WriteCSV(w io.Writer, res costing.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i, line := range res.Lines {
		record := []string{
			line.Name,
			formatFloat(line.PackagePrice),
			formatFloat(line.PackageQuantity),
			formatFloat(line.UsedQuantity),
			formatFloat(line.Cost),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ReadCSV parses a file written by WriteCSV or a hand-made ingredient sheet.
// Columns are matched by header name; the cost column is optional.
// Blank lines are skipped by the csv reader.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index := map[int]int{}
	for i, name := range head {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if col, ok := headerAliases[key]; ok {
			index[col] = i
		}
	}
	for _, col := range []int{colName, colPrice, colPackage, colUsed} {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, Header[col])
		}
	}

	var records []Record
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		rec, err := parseRecord(fields, index)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// Ingredients strips the exported cost from records.
func Ingredients(records []Record) []costing.Ingredient {
	rows := make([]costing.Ingredient, len(records))
	for i, rec := range records {
		rows[i] = rec.Ingredient
	}
	return rows
}

func parseRecord(fields []string, index map[int]int) (Record, error) {
	field := func(col int) string {
		i, ok := index[col]
		if !ok || i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	var rec Record
	rec.Name = field(colName)

	var err error
	if rec.PackagePrice, err = parseFloat(field(colPrice), Header[colPrice]); err != nil {
		return rec, err
	}
	if rec.PackageQuantity, err = parseFloat(field(colPackage), Header[colPackage]); err != nil {
		return rec, err
	}
	if rec.UsedQuantity, err = parseFloat(field(colUsed), Header[colUsed]); err != nil {
		return rec, err
	}
	if raw := field(colCost); raw != "" {
		if rec.Cost, err = parseFloat(raw, Header[colCost]); err != nil {
			return rec, err
		}
		rec.HasCost = true
	}

	return rec, nil
}

func parseFloat(raw, column string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", column, raw)
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
