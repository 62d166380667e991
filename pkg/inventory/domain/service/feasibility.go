package service

import (
	"github.com/shopspring/decimal"

	"inventory/pkg/inventory/domain/model"
)

// MaxServings returns how many whole servings of recipe the operational pool
// can cover. The scarcest ingredient bounds the result. An ingredient whose
// product is missing or whose required quantity is not positive blocks the
// recipe entirely, and a recipe without ingredients yields 0.
func MaxServings(recipe *model.Recipe, products map[string]*model.Product) int64 {
	if recipe == nil || len(recipe.Ingredients) == 0 {
		return 0
	}

	var result int64
	for i, ingredient := range recipe.Ingredients {
		servings := ingredientServings(ingredient, products[ingredient.ProductID])
		if i == 0 || servings < result {
			result = servings
		}
	}
	return result
}

func ingredientServings(ingredient model.RecipeIngredient, product *model.Product) int64 {
	if product == nil || !ingredient.QuantityNeeded.IsPositive() {
		return 0
	}
	servings := product.InventoryB.Div(ingredient.QuantityNeeded).Floor()
	if servings.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	return servings.IntPart()
}
