package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"inventory/pkg/inventory/domain/model"
)

type recipeRepository struct {
	access access
}

func (r *recipeRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *recipeRepository) Create(_ context.Context, recipe *model.Recipe) error {
	return r.access.write(func(st *state) error {
		if _, ok := st.recipes[recipe.ID]; ok {
			return model.NewValidationError("id", "recipe already exists")
		}
		st.recipes[recipe.ID] = cloneRecipe(*recipe)
		return nil
	})
}

func (r *recipeRepository) Update(_ context.Context, recipe *model.Recipe) error {
	return r.access.write(func(st *state) error {
		if _, ok := st.recipes[recipe.ID]; !ok {
			return model.ErrRecipeNotFound
		}
		st.recipes[recipe.ID] = cloneRecipe(*recipe)
		return nil
	})
}

func (r *recipeRepository) Find(_ context.Context, id string) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.access.read(func(st *state) error {
		found, ok := st.recipes[id]
		if !ok {
			return model.ErrRecipeNotFound
		}
		recipe = cloneRecipe(found)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) List(_ context.Context) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := r.access.read(func(st *state) error {
		recipes = make([]model.Recipe, 0, len(st.recipes))
		for _, recipe := range st.recipes {
			recipes = append(recipes, cloneRecipe(recipe))
		}
		return nil
	})
	sort.Slice(recipes, func(i, j int) bool {
		if recipes[i].ProductName == recipes[j].ProductName {
			return recipes[i].ID < recipes[j].ID
		}
		return recipes[i].ProductName < recipes[j].ProductName
	})
	return recipes, err
}

func (r *recipeRepository) Delete(_ context.Context, id string) error {
	return r.access.write(func(st *state) error {
		if _, ok := st.recipes[id]; !ok {
			return model.ErrRecipeNotFound
		}
		delete(st.recipes, id)
		return nil
	})
}

func cloneRecipe(recipe model.Recipe) model.Recipe {
	recipe.Ingredients = append([]model.RecipeIngredient(nil), recipe.Ingredients...)
	return recipe
}
