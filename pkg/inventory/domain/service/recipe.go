package service

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"inventory/pkg/inventory/domain/model"
)

type RecipeInput struct {
	ProductID     string
	ProductName   string
	ProductNumber int
	Ingredients   []IngredientInput
}

type IngredientInput struct {
	ProductID      string
	Name           string
	QuantityNeeded decimal.Decimal
	Unit           string
}

type RecipeService interface {
	CreateRecipe(ctx context.Context, input RecipeInput) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, recipeID string, input RecipeInput) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, recipeID string) error
}

func NewRecipeService(
	recipes model.RecipeRepository,
	products model.ProductRepository,
	dispatcher EventDispatcher,
) RecipeService {
	return &recipeService{recipes: recipes, products: products, dispatcher: dispatcher}
}

type recipeService struct {
	recipes    model.RecipeRepository
	products   model.ProductRepository
	dispatcher EventDispatcher
}

func (s *recipeService) CreateRecipe(ctx context.Context, input RecipeInput) (*model.Recipe, error) {
	if len(input.Ingredients) == 0 {
		return nil, model.NewValidationError("ingredients", "at least one ingredient is required")
	}

	recipeID, err := s.recipes.NextID()
	if err != nil {
		return nil, err
	}

	ingredients, err := s.buildIngredients(ctx, input)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	recipe := &model.Recipe{
		ID:            recipeID.String(),
		ProductID:     strings.TrimSpace(input.ProductID),
		ProductName:   strings.TrimSpace(input.ProductName),
		ProductNumber: input.ProductNumber,
		Ingredients:   ingredients,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.RecipeCreated{RecipeID: recipe.ID, ProductName: recipe.ProductName})
	return recipe, nil
}

// UpdateRecipe replaces the recipe header and its whole ingredient list.
func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, input RecipeInput) (*model.Recipe, error) {
	recipe, err := s.recipes.Find(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	ingredients, err := s.buildIngredients(ctx, input)
	if err != nil {
		return nil, err
	}

	recipe.ProductID = strings.TrimSpace(input.ProductID)
	recipe.ProductName = strings.TrimSpace(input.ProductName)
	recipe.ProductNumber = input.ProductNumber
	recipe.Ingredients = ingredients
	recipe.UpdatedAt = time.Now().UTC()

	if err := s.recipes.Update(ctx, recipe); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.RecipeUpdated{RecipeID: recipe.ID, ProductName: recipe.ProductName})
	return recipe, nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string) error {
	recipe, err := s.recipes.Find(ctx, recipeID)
	if err != nil {
		return err
	}

	if err := s.recipes.Delete(ctx, recipeID); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.RecipeDeleted{RecipeID: recipe.ID, ProductName: recipe.ProductName})
	return nil
}

// buildIngredients validates the input and resolves every ingredient against
// the catalog. A reference to a missing product fails with ErrProductNotFound.
func (s *recipeService) buildIngredients(ctx context.Context, input RecipeInput) ([]model.RecipeIngredient, error) {
	if err := requireText("product_id", input.ProductID); err != nil {
		return nil, err
	}
	if err := requireText("product_name", input.ProductName); err != nil {
		return nil, err
	}
	if input.ProductNumber < 0 {
		return nil, model.NewValidationError("product_number", "cannot be negative")
	}

	ids := make([]string, 0, len(input.Ingredients))
	for i, ingredient := range input.Ingredients {
		if err := requireText(fieldIndex("ingredients", i, "product_id"), ingredient.ProductID); err != nil {
			return nil, err
		}
		if err := requirePositive(fieldIndex("ingredients", i, "quantity_needed"), ingredient.QuantityNeeded); err != nil {
			return nil, err
		}
		ids = append(ids, strings.TrimSpace(ingredient.ProductID))
	}
	if len(ids) == 0 {
		return []model.RecipeIngredient{}, nil
	}

	products, err := s.products.FindMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	ingredients := make([]model.RecipeIngredient, 0, len(input.Ingredients))
	for i, ingredient := range input.Ingredients {
		product, ok := products[ids[i]]
		if !ok {
			return nil, errors.Wrapf(model.ErrProductNotFound, "ingredient %s", ids[i])
		}

		ingredientID, err := s.recipes.NextID()
		if err != nil {
			return nil, err
		}

		name := strings.TrimSpace(ingredient.Name)
		if name == "" {
			name = product.Name
		}
		unit := strings.TrimSpace(ingredient.Unit)
		if unit == "" {
			unit = model.DefaultIngredientUnit
		}

		ingredients = append(ingredients, model.RecipeIngredient{
			ID:             ingredientID.String(),
			ProductID:      product.ID,
			Name:           name,
			QuantityNeeded: ingredient.QuantityNeeded,
			Unit:           unit,
		})
	}
	return ingredients, nil
}
