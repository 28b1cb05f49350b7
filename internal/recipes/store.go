// Package recipes reads the recipe templates used to pre-fill the calculator.
package recipes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Simplici0/recipecost/internal/costing"
)

var ErrNotFound = errors.New("recipe not found")

// Summary is a template as shown in the list page.
type Summary struct {
	ID              int64
	Name            string
	Notes           string
	CreatedAt       string
	IngredientCount int
}

// Recipe is a template with its ordered ingredient rows.
type Recipe struct {
	ID          int64
	Name        string
	Notes       string
	Params      costing.Params
	Ingredients []costing.Ingredient
}

// Store is backed by the recipes and recipe_ingredients tables.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// List returns templates newest first, optionally filtered by name or notes.
func (s *Store) List(ctx context.Context, query string) ([]Summary, error) {
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			r.id,
			r.name,
			COALESCE(r.notes, ''),
			r.created_at,
			(SELECT COUNT(*) FROM recipe_ingredients i WHERE i.recipe_id = r.id)
		FROM recipes r
		WHERE (? = '' OR r.name LIKE ? OR COALESCE(r.notes, '') LIKE ?)
		ORDER BY datetime(r.created_at) DESC, r.id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	summaries := make([]Summary, 0)
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Notes, &s.CreatedAt, &s.IngredientCount); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}

	return summaries, nil
}

// Get loads one template and its ingredients in position order.
func (s *Store) Get(ctx context.Context, id int64) (Recipe, error) {
	var r Recipe
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(notes, ''), portions, margin_percent
		FROM recipes
		WHERE id = ?
	`, id).Scan(&r.ID, &r.Name, &r.Notes, &r.Params.Portions, &r.Params.MarginPercent)
	if errors.Is(err, sql.ErrNoRows) {
		return Recipe{}, ErrNotFound
	}
	if err != nil {
		return Recipe{}, fmt.Errorf("query recipe %d: %w", id, err)
	}

	r.Ingredients, err = s.ingredients(ctx, id)
	if err != nil {
		return Recipe{}, err
	}
	return r, nil
}

// Default returns the oldest template, which is the seeded sample.
func (s *Store) Default(ctx context.Context) (Recipe, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM recipes ORDER BY datetime(created_at) ASC, id ASC LIMIT 1
	`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return Recipe{}, ErrNotFound
	}
	if err != nil {
		return Recipe{}, fmt.Errorf("query default recipe: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *Store) ingredients(ctx context.Context, recipeID int64) ([]costing.Ingredient, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, package_price, package_quantity, used_quantity
		FROM recipe_ingredients
		WHERE recipe_id = ?
		ORDER BY position ASC
	`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("query ingredients: %w", err)
	}
	defer rows.Close()

	ingredients := make([]costing.Ingredient, 0)
	for rows.Next() {
		var ing costing.Ingredient
		if err := rows.Scan(&ing.Name, &ing.PackagePrice, &ing.PackageQuantity, &ing.UsedQuantity); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		ingredients = append(ingredients, ing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ingredients: %w", err)
	}

	return ingredients, nil
}
