package main

import (
	"net/http"
	"strings"

	"github.com/Simplici0/recipecost/internal/costing"
)

type recipeListItem struct {
	ID              int64
	Name            string
	Notes           string
	CreatedAt       string
	IngredientCount int
	TotalCost       string
}

type recipesViewData struct {
	baseViewData
	Query   string
	Recipes []recipeListItem
}

func (s *server) handleRecipesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	items, err := s.listRecipes(r, query)
	if err != nil {
		s.log.Error("list recipes: %v", err)
		http.Error(w, "failed to load recipes", http.StatusInternalServerError)
		return
	}

	s.render(w, http.StatusOK, "recipes.html", recipesViewData{
		Query:   query,
		Recipes: items,
	})
}

// listRecipes loads the matching templates and prices each one.
// A template that cannot be priced is listed with a dash instead of a total.
func (s *server) listRecipes(r *http.Request, query string) ([]recipeListItem, error) {
	summaries, err := s.recipes.List(r.Context(), query)
	if err != nil {
		return nil, err
	}

	items := make([]recipeListItem, 0, len(summaries))
	for _, summary := range summaries {
		item := recipeListItem{
			ID:              summary.ID,
			Name:            summary.Name,
			Notes:           summary.Notes,
			CreatedAt:       summary.CreatedAt,
			IngredientCount: summary.IngredientCount,
			TotalCost:       "—",
		}

		recipe, err := s.recipes.Get(r.Context(), summary.ID)
		if err != nil {
			return nil, err
		}
		if res, err := costing.Compute(recipe.Ingredients, recipe.Params); err == nil {
			item.TotalCost = s.money.Format(res.TotalCost)
		} else {
			s.log.Debug("recipe %d not priced: %v", summary.ID, err)
		}

		items = append(items, item)
	}

	return items, nil
}
