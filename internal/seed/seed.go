package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Simplici0/recipecost/internal/costing"
)

// SampleRecipe is the template shown when the calculator opens.
const SampleRecipe = "Bolo de fubá com goiabada"

const (
	samplePortions = 6
	sampleMargin   = 30
	sampleNotes    = "Exemplo inicial; edite os ingredientes à vontade."
)

// SampleIngredients is the example ingredient table of the calculator.
var SampleIngredients = []costing.Ingredient{
	{Name: "Ovo", PackagePrice: 7.00, PackageQuantity: 12, UsedQuantity: 1},
	{Name: "Leite", PackagePrice: 3.50, PackageQuantity: 1000, UsedQuantity: 190},
	{Name: "Fubá", PackagePrice: 2.00, PackageQuantity: 1000, UsedQuantity: 130},
	{Name: "Açúcar", PackagePrice: 2.50, PackageQuantity: 1000, UsedQuantity: 160},
	{Name: "Óleo", PackagePrice: 6.00, PackageQuantity: 900, UsedQuantity: 90},
	{Name: "Farinha de trigo", PackagePrice: 3.60, PackageQuantity: 1000, UsedQuantity: 96},
	{Name: "Fermento", PackagePrice: 4.00, PackageQuantity: 50, UsedQuantity: 15},
	{Name: "Goiabada", PackagePrice: 2.99, PackageQuantity: 300, UsedQuantity: 300},
	{Name: "Erva-doce", PackagePrice: 15.00, PackageQuantity: 1000, UsedQuantity: 10},
	{Name: "Embalagem", PackagePrice: 6.80, PackageQuantity: 3, UsedQuantity: 1},
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run inserts the sample recipe template in an idempotent way.
func Run(ctx context.Context, db *sql.DB) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	if err := ensureSampleRecipe(ctx, tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureSampleRecipe(ctx context.Context, tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM recipes WHERE name = ? LIMIT 1)`, SampleRecipe).Scan(&exists); err != nil {
		return fmt.Errorf("check sample recipe existence: %w", err)
	}
	if exists {
		return nil
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO recipes (name, notes, portions, margin_percent)
		VALUES (?, ?, ?, ?)
	`, SampleRecipe, sampleNotes, samplePortions, sampleMargin)
	if err != nil {
		return fmt.Errorf("insert sample recipe: %w", err)
	}
	stats.Inserts++

	recipeID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("read sample recipe id: %w", err)
	}

	for i, ing := range SampleIngredients {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO recipe_ingredients (recipe_id, position, name, package_price, package_quantity, used_quantity)
			VALUES (?, ?, ?, ?, ?, ?)
		`, recipeID, i, ing.Name, ing.PackagePrice, ing.PackageQuantity, ing.UsedQuantity); err != nil {
			return fmt.Errorf("insert sample ingredient %q: %w", ing.Name, err)
		}
		stats.Inserts++
	}

	return nil
}
