package tests

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"inventory/pkg/inventory/domain/model"
	"inventory/pkg/inventory/domain/service"
)

type fixture struct {
	inventory   service.InventoryService
	recipes     service.RecipeService
	waste       service.WasteService
	productRepo *mockProductRepository
	recipeRepo  *mockRecipeRepository
	wasteRepo   *mockWasteLogRepository
	dispatcher  *mockEventDispatcher
}

func setup(t *testing.T) *fixture {
	t.Helper()
	productRepo := &mockProductRepository{store: make(map[string]*model.Product)}
	recipeRepo := &mockRecipeRepository{store: make(map[string]*model.Recipe)}
	wasteRepo := &mockWasteLogRepository{}
	dispatcher := &mockEventDispatcher{}
	return &fixture{
		inventory:   service.NewInventoryService(productRepo, recipeRepo, dispatcher),
		recipes:     service.NewRecipeService(recipeRepo, productRepo, dispatcher),
		waste:       service.NewWasteService(productRepo, wasteRepo, dispatcher),
		productRepo: productRepo,
		recipeRepo:  recipeRepo,
		wasteRepo:   wasteRepo,
		dispatcher:  dispatcher,
	}
}

func (f *fixture) addProduct(t *testing.T, name string, inventoryA, inventoryB, cost string) *model.Product {
	t.Helper()
	product, err := f.inventory.CreateProduct(context.Background(), service.ProductInput{
		Name:        name,
		Category:    "Ingredients",
		Price:       decimal.RequireFromString("1.50"),
		Quantity:    decimal.RequireFromString(inventoryB),
		InventoryA:  decimal.RequireFromString(inventoryA),
		InventoryB:  decimal.RequireFromString(inventoryB),
		CostPerUnit: decimal.RequireFromString(cost),
	})
	require.NoError(t, err)
	return product
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func requireDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	require.Truef(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual.String())
}
