package service

import (
	"context"

	"github.com/shopspring/decimal"

	"inventory/pkg/inventory/domain/model"
	domainservice "inventory/pkg/inventory/domain/service"
)

type IngredientStock struct {
	InventoryA decimal.Decimal
	InventoryB decimal.Decimal
	Total      decimal.Decimal
}

type IngredientView struct {
	model.RecipeIngredient
	// Stock is nil when the ingredient product no longer exists.
	Stock       *IngredientStock
	CostPerUnit decimal.Decimal
}

type RecipeView struct {
	model.Recipe
	IngredientViews []IngredientView
	IngredientCount int
	MaxServings     int64
}

type RecipeService interface {
	CreateRecipe(ctx context.Context, input domainservice.RecipeInput) (*RecipeView, error)
	UpdateRecipe(ctx context.Context, recipeID string, input domainservice.RecipeInput) (*RecipeView, error)
	DeleteRecipe(ctx context.Context, recipeID string) error
	GetRecipe(ctx context.Context, recipeID string) (*RecipeView, error)
	ListRecipes(ctx context.Context) ([]RecipeView, error)
	Ingredients(ctx context.Context, recipeID string) ([]IngredientView, error)
	MaxServings(ctx context.Context, recipeID string) (int64, error)
	ConsumeForRecipe(ctx context.Context, recipeID string, servings int64) ([]model.Product, error)
}

func NewRecipeService(storage Storage, recorder AuditRecorder) RecipeService {
	return &recipeService{executor{storage: storage, recorder: recorder}}
}

type recipeService struct {
	executor
}

func (s *recipeService) CreateRecipe(ctx context.Context, input domainservice.RecipeInput) (*RecipeView, error) {
	var recipe *model.Recipe
	err := s.executeOnRecipes(ctx, "recipe.create", func(ctx context.Context, recipes domainservice.RecipeService) error {
		var err error
		recipe, err = recipes.CreateRecipe(ctx, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, recipe)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, input domainservice.RecipeInput) (*RecipeView, error) {
	var recipe *model.Recipe
	err := s.executeOnRecipes(ctx, "recipe.update", func(ctx context.Context, recipes domainservice.RecipeService) error {
		var err error
		recipe, err = recipes.UpdateRecipe(ctx, recipeID, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, recipe)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string) error {
	return s.executeOnRecipes(ctx, "recipe.delete", func(ctx context.Context, recipes domainservice.RecipeService) error {
		return recipes.DeleteRecipe(ctx, recipeID)
	})
}

func (s *recipeService) GetRecipe(ctx context.Context, recipeID string) (*RecipeView, error) {
	recipe, err := s.storage.RecipeRepository().Find(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, recipe)
}

func (s *recipeService) ListRecipes(ctx context.Context) ([]RecipeView, error) {
	recipes, err := s.storage.RecipeRepository().List(ctx)
	if err != nil {
		return nil, err
	}

	var ids []string
	for i := range recipes {
		ids = append(ids, recipes[i].IngredientIDs()...)
	}
	products, err := s.storage.ProductRepository().FindMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]RecipeView, 0, len(recipes))
	for i := range recipes {
		views = append(views, buildRecipeView(&recipes[i], products))
	}
	return views, nil
}

func (s *recipeService) Ingredients(ctx context.Context, recipeID string) ([]IngredientView, error) {
	view, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return view.IngredientViews, nil
}

func (s *recipeService) MaxServings(ctx context.Context, recipeID string) (int64, error) {
	view, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return 0, err
	}
	return view.MaxServings, nil
}

func (s *recipeService) ConsumeForRecipe(ctx context.Context, recipeID string, servings int64) (products []model.Product, err error) {
	err = s.execute(ctx, "recipe.consume", func(ctx context.Context, provider RepositoryProvider, dispatcher domainservice.EventDispatcher) error {
		products, err = newInventoryService(provider, dispatcher).ConsumeForRecipe(ctx, recipeID, servings)
		return err
	})
	return products, err
}

func (s *recipeService) executeOnRecipes(
	ctx context.Context,
	operation string,
	action func(ctx context.Context, recipes domainservice.RecipeService) error,
) error {
	return s.execute(ctx, operation, func(ctx context.Context, provider RepositoryProvider, dispatcher domainservice.EventDispatcher) error {
		recipes := domainservice.NewRecipeService(provider.RecipeRepository(), provider.ProductRepository(), dispatcher)
		return action(ctx, recipes)
	})
}

func (s *recipeService) view(ctx context.Context, recipe *model.Recipe) (*RecipeView, error) {
	products, err := s.storage.ProductRepository().FindMany(ctx, recipe.IngredientIDs())
	if err != nil {
		return nil, err
	}
	view := buildRecipeView(recipe, products)
	return &view, nil
}

func buildRecipeView(recipe *model.Recipe, products map[string]*model.Product) RecipeView {
	ingredients := make([]IngredientView, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		view := IngredientView{RecipeIngredient: ingredient}
		if product, ok := products[ingredient.ProductID]; ok {
			view.Stock = &IngredientStock{
				InventoryA: product.InventoryA,
				InventoryB: product.InventoryB,
				Total:      product.Quantity,
			}
			view.CostPerUnit = product.CostPerUnit
		}
		ingredients = append(ingredients, view)
	}

	return RecipeView{
		Recipe:          *recipe,
		IngredientViews: ingredients,
		IngredientCount: len(recipe.Ingredients),
		MaxServings:     domainservice.MaxServings(recipe, products),
	}
}
