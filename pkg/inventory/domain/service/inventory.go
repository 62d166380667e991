package service

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"inventory/pkg/inventory/domain/model"
)

type ProductInput struct {
	ID          string
	Name        string
	Category    string
	Price       decimal.Decimal
	Unit        string
	Quantity    decimal.Decimal
	InventoryA  decimal.Decimal
	InventoryB  decimal.Decimal
	CostPerUnit decimal.Decimal
	ImageURI    string
}

// ProductPatch holds the fields of a partial product update; nil fields are left untouched.
type ProductPatch struct {
	Name        *string
	Category    *string
	Price       *decimal.Decimal
	Unit        *string
	Quantity    *decimal.Decimal
	InventoryA  *decimal.Decimal
	InventoryB  *decimal.Decimal
	CostPerUnit *decimal.Decimal
	ImageURI    *string
}

type InventoryService interface {
	CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, productID string, patch ProductPatch) (*model.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	Transfer(ctx context.Context, productID string, quantity decimal.Decimal) (*model.Product, error)
	AdjustInventory(ctx context.Context, productID string, inventoryA, inventoryB *decimal.Decimal) (*model.Product, error)
	ConsumeForRecipe(ctx context.Context, recipeID string, servings int64) ([]model.Product, error)
}

func NewInventoryService(
	products model.ProductRepository,
	recipes model.RecipeRepository,
	dispatcher EventDispatcher,
) InventoryService {
	return &inventoryService{products: products, recipes: recipes, dispatcher: dispatcher}
}

type inventoryService struct {
	products   model.ProductRepository
	recipes    model.RecipeRepository
	dispatcher EventDispatcher
}

func (s *inventoryService) CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error) {
	productID := strings.TrimSpace(input.ID)
	if productID == "" {
		id, err := s.products.NextID()
		if err != nil {
			return nil, err
		}
		productID = id.String()
	} else {
		_, err := s.products.Find(ctx, productID)
		if err == nil {
			return nil, model.NewValidationError("id", "product already exists")
		}
		if !errors.Is(err, model.ErrProductNotFound) {
			return nil, err
		}
	}

	unit := input.Unit
	if strings.TrimSpace(unit) == "" {
		unit = model.DefaultProductUnit
	}

	now := time.Now().UTC()
	product := &model.Product{
		ID:          productID,
		Name:        strings.TrimSpace(input.Name),
		Category:    strings.TrimSpace(input.Category),
		Price:       input.Price,
		Unit:        unit,
		Quantity:    input.Quantity,
		InventoryA:  input.InventoryA,
		InventoryB:  input.InventoryB,
		CostPerUnit: input.CostPerUnit,
		ImageURI:    input.ImageURI,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ProductCreated{ProductID: product.ID, Name: product.Name})
	return product, nil
}

func (s *inventoryService) UpdateProduct(ctx context.Context, productID string, patch ProductPatch) (*model.Product, error) {
	product, err := s.products.Find(ctx, productID)
	if err != nil {
		return nil, err
	}

	applyPatch(product, patch)
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.updateProduct(ctx, product); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ProductUpdated{ProductID: product.ID, Name: product.Name})
	return product, nil
}

// DeleteProduct does not look for recipes that still use the product as an ingredient.
func (s *inventoryService) DeleteProduct(ctx context.Context, productID string) error {
	product, err := s.products.Find(ctx, productID)
	if err != nil {
		return err
	}

	if err := s.products.Delete(ctx, productID); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.ProductDeleted{ProductID: product.ID, Name: product.Name})
	return nil
}

func (s *inventoryService) Transfer(ctx context.Context, productID string, quantity decimal.Decimal) (*model.Product, error) {
	if err := requirePositive("quantity", quantity); err != nil {
		return nil, err
	}

	product, err := s.products.Find(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.InventoryA.LessThan(quantity) {
		return nil, &model.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Pool:        model.PoolA,
			Available:   product.InventoryA,
			Requested:   quantity,
		}
	}

	product.InventoryA = product.InventoryA.Sub(quantity)
	product.InventoryB = product.InventoryB.Add(quantity)
	product.Quantity = product.InventoryB

	if err := s.updateProduct(ctx, product); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.InventoryTransferred{
		ProductID:     product.ID,
		Quantity:      quantity,
		NewInventoryA: product.InventoryA,
		NewInventoryB: product.InventoryB,
	})
	return product, nil
}

func (s *inventoryService) AdjustInventory(ctx context.Context, productID string, inventoryA, inventoryB *decimal.Decimal) (*model.Product, error) {
	if inventoryA == nil && inventoryB == nil {
		return nil, model.NewValidationError("inventory", "inventory_a or inventory_b is required")
	}
	if inventoryA != nil {
		if err := requireNonNegative("inventory_a", *inventoryA); err != nil {
			return nil, err
		}
	}
	if inventoryB != nil {
		if err := requireNonNegative("inventory_b", *inventoryB); err != nil {
			return nil, err
		}
	}

	product, err := s.products.Find(ctx, productID)
	if err != nil {
		return nil, err
	}
	if inventoryA != nil {
		product.InventoryA = *inventoryA
	}
	if inventoryB != nil {
		product.InventoryB = *inventoryB
		product.Quantity = *inventoryB
	}

	if err := s.updateProduct(ctx, product); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.InventoryAdjusted{
		ProductID:     product.ID,
		NewInventoryA: product.InventoryA,
		NewInventoryB: product.InventoryB,
	})
	return product, nil
}

// ConsumeForRecipe deducts the ingredients of servings portions from the
// operational pool. Every ingredient is checked before the first write, so a
// single short ingredient leaves all products untouched.
func (s *inventoryService) ConsumeForRecipe(ctx context.Context, recipeID string, servings int64) ([]model.Product, error) {
	if servings < 0 {
		return nil, model.NewValidationError("servings", "cannot be negative")
	}
	if servings == 0 {
		return nil, nil
	}

	recipe, err := s.recipes.Find(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if len(recipe.Ingredients) == 0 {
		return nil, model.NewValidationError("ingredients", "recipe has no ingredients")
	}

	products, err := s.products.FindMany(ctx, recipe.IngredientIDs())
	if err != nil {
		return nil, err
	}

	multiplier := decimal.NewFromInt(servings)
	required := make(map[string]decimal.Decimal, len(products))
	for i, ingredient := range recipe.Ingredients {
		if !ingredient.QuantityNeeded.IsPositive() {
			return nil, model.NewValidationError(
				fieldIndex("ingredients", i, "quantity_needed"), "must be greater than 0")
		}
		product, ok := products[ingredient.ProductID]
		if !ok {
			return nil, errors.Wrapf(model.ErrProductNotFound, "ingredient %s", ingredient.ProductID)
		}

		total := required[ingredient.ProductID].Add(ingredient.QuantityNeeded.Mul(multiplier))
		if product.InventoryB.LessThan(total) {
			return nil, &model.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Pool:        model.PoolB,
				Available:   product.InventoryB,
				Requested:   total,
			}
		}
		required[ingredient.ProductID] = total
	}

	updated := make([]model.Product, 0, len(required))
	for _, productID := range recipe.IngredientIDs() {
		product := products[productID]
		product.InventoryB = product.InventoryB.Sub(required[productID])
		product.Quantity = product.InventoryB
		if err := s.updateProduct(ctx, product); err != nil {
			return nil, err
		}
		updated = append(updated, *product)
	}

	_ = s.dispatcher.Dispatch(model.RecipeConsumed{
		RecipeID:    recipe.ID,
		ProductName: recipe.ProductName,
		Servings:    servings,
	})
	return updated, nil
}

func (s *inventoryService) updateProduct(ctx context.Context, product *model.Product) error {
	product.UpdatedAt = time.Now().UTC()
	return s.products.Update(ctx, product)
}

func applyPatch(product *model.Product, patch ProductPatch) {
	if patch.Name != nil {
		product.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Category != nil {
		product.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Unit != nil {
		product.Unit = *patch.Unit
	}
	if patch.Quantity != nil {
		product.Quantity = *patch.Quantity
	}
	if patch.InventoryA != nil {
		product.InventoryA = *patch.InventoryA
	}
	if patch.InventoryB != nil {
		product.InventoryB = *patch.InventoryB
	}
	if patch.CostPerUnit != nil {
		product.CostPerUnit = *patch.CostPerUnit
	}
	if patch.ImageURI != nil {
		product.ImageURI = *patch.ImageURI
	}
}

func validateProduct(product *model.Product) error {
	if err := requireText("name", product.Name); err != nil {
		return err
	}
	if err := requireText("category", product.Category); err != nil {
		return err
	}
	numbers := []struct {
		field string
		value decimal.Decimal
	}{
		{"price", product.Price},
		{"quantity", product.Quantity},
		{"inventory_a", product.InventoryA},
		{"inventory_b", product.InventoryB},
		{"cost_per_unit", product.CostPerUnit},
	}
	for _, number := range numbers {
		if err := requireNonNegative(number.field, number.value); err != nil {
			return err
		}
	}
	return nil
}
