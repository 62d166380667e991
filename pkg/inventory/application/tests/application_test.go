package tests

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"inventory/pkg/inventory/application/service"
	"inventory/pkg/inventory/domain/model"
	domainservice "inventory/pkg/inventory/domain/service"
	"inventory/pkg/inventory/infrastructure/memory"
)

type mockAuditRecorder struct {
	mu      sync.Mutex
	actions []string
	actors  []model.Actor
	err     error
}

func (m *mockAuditRecorder) Record(_ context.Context, action string, actor model.Actor, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = append(m.actions, action)
	m.actors = append(m.actors, actor)
	return m.err
}

type fixture struct {
	store    *memory.Store
	recorder *mockAuditRecorder
	products service.ProductService
	recipes  service.RecipeService
	waste    service.WasteService
}

func setup(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	recorder := &mockAuditRecorder{}
	return &fixture{
		store:    store,
		recorder: recorder,
		products: service.NewProductService(store, recorder),
		recipes:  service.NewRecipeService(store, recorder),
		waste:    service.NewWasteService(store, recorder),
	}
}

func (f *fixture) addProduct(t *testing.T, name string, inventoryA, inventoryB int64) *model.Product {
	t.Helper()
	product, err := f.products.CreateProduct(context.Background(), domainservice.ProductInput{
		Name:        name,
		Category:    "Ingredients",
		InventoryA:  decimal.NewFromInt(inventoryA),
		InventoryB:  decimal.NewFromInt(inventoryB),
		Quantity:    decimal.NewFromInt(inventoryB),
		CostPerUnit: decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	return product
}

func TestAuditIsRecordedAfterCommit(t *testing.T) {
	ctx := service.WithActor(context.Background(), model.Actor{ID: "u-1", Name: "alice"})

	t.Run("Success", func(t *testing.T) {
		f := setup(t)
		product := f.addProduct(t, "Flour", 10, 0)

		_, err := f.products.Transfer(ctx, product.ID, decimal.NewFromInt(3))

		require.NoError(t, err)
		require.Len(t, f.recorder.actions, 2)
		assert.Equal(t, "Inventory Transfer", f.recorder.actions[1])
		assert.Equal(t, "alice", f.recorder.actors[1].Name)
		assert.Equal(t, model.SystemActor, f.recorder.actors[0])
	})

	t.Run("Failed operation records nothing", func(t *testing.T) {
		f := setup(t)
		product := f.addProduct(t, "Flour", 1, 0)

		_, err := f.products.Transfer(ctx, product.ID, decimal.NewFromInt(3))

		require.ErrorIs(t, err, model.ErrInsufficientStock)
		assert.Len(t, f.recorder.actions, 1)
	})

	t.Run("Recorder failure does not fail the operation", func(t *testing.T) {
		f := setup(t)
		product := f.addProduct(t, "Flour", 10, 0)
		f.recorder.err = errors.New("audit store down")

		updated, err := f.products.Transfer(ctx, product.ID, decimal.NewFromInt(3))

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(3).Equal(updated.InventoryB))
		stored, err := f.products.GetProduct(ctx, product.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(7).Equal(stored.InventoryA))
	})
}

func TestActorFromContext(t *testing.T) {
	assert.Equal(t, model.SystemActor, service.ActorFromContext(context.Background()))
	assert.Equal(t, model.SystemActor, service.ActorFromContext(service.WithActor(context.Background(), model.Actor{})))

	actor := service.ActorFromContext(service.WithActor(context.Background(), model.Actor{Name: "bob"}))
	assert.Equal(t, model.Actor{ID: "bob", Name: "bob"}, actor)
}

func TestConcurrentTransfersConserveStock(t *testing.T) {
	f := setup(t)
	product := f.addProduct(t, "Rice", 100, 0)

	var group errgroup.Group
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 150; i++ {
		group.Go(func() error {
			_, err := f.products.Transfer(context.Background(), product.ID, decimal.NewFromInt(1))
			if errors.Is(err, model.ErrInsufficientStock) {
				return nil
			}
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
			return err
		})
	}
	require.NoError(t, group.Wait())

	stored, err := f.products.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, succeeded)
	assert.True(t, stored.InventoryA.IsZero())
	assert.True(t, decimal.NewFromInt(100).Equal(stored.InventoryB))
}

func TestConcurrentConsumptionNeverGoesNegative(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	cheese := f.addProduct(t, "Cheese", 0, 10)
	dough := f.addProduct(t, "Dough", 0, 100)
	recipe, err := f.recipes.CreateRecipe(ctx, domainservice.RecipeInput{
		ProductID:   "pizza",
		ProductName: "Pizza",
		Ingredients: []domainservice.IngredientInput{
			{ProductID: cheese.ID, QuantityNeeded: decimal.NewFromInt(3)},
			{ProductID: dough.ID, QuantityNeeded: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, int64(3), recipe.MaxServings)

	var group errgroup.Group
	for i := 0; i < 20; i++ {
		group.Go(func() error {
			_, err := f.recipes.ConsumeForRecipe(ctx, recipe.ID, 1)
			if errors.Is(err, model.ErrInsufficientStock) {
				return nil
			}
			return err
		})
	}
	require.NoError(t, group.Wait())

	storedCheese, _ := f.products.GetProduct(ctx, cheese.ID)
	storedDough, _ := f.products.GetProduct(ctx, dough.ID)
	assert.True(t, decimal.NewFromInt(1).Equal(storedCheese.InventoryB))
	assert.True(t, decimal.NewFromInt(97).Equal(storedDough.InventoryB))
}

func TestRecipeViews(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	flour := f.addProduct(t, "Flour", 0, 1000)
	eggs := f.addProduct(t, "Eggs", 0, 6)
	_, err := f.recipes.CreateRecipe(ctx, domainservice.RecipeInput{
		ProductID:   "pasta",
		ProductName: "Pasta",
		Ingredients: []domainservice.IngredientInput{
			{ProductID: flour.ID, QuantityNeeded: decimal.NewFromInt(200)},
			{ProductID: eggs.ID, QuantityNeeded: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)
	_, err = f.recipes.CreateRecipe(ctx, domainservice.RecipeInput{
		ProductID:   "bread",
		ProductName: "Bread",
		Ingredients: []domainservice.IngredientInput{{ProductID: flour.ID, QuantityNeeded: decimal.NewFromInt(300)}},
	})
	require.NoError(t, err)

	views, err := f.recipes.ListRecipes(ctx)

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Bread", views[0].ProductName)
	assert.Equal(t, int64(3), views[0].MaxServings)
	assert.Equal(t, int64(3), views[1].MaxServings)
	assert.Equal(t, 2, views[1].IngredientCount)
}

func TestWasteViews(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	milk := f.addProduct(t, "Milk", 0, 5)

	view, err := f.waste.RecordWaste(ctx, domainservice.WasteInput{
		ProductID: milk.ID,
		Quantity:  decimal.NewFromInt(2),
		Reason:    "expired",
	})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultRecorder, view.RecordedBy)
	assert.True(t, decimal.NewFromInt(2).Equal(view.Cost))

	t.Run("Cost follows the current product cost", func(t *testing.T) {
		cost := decimal.NewFromInt(4)
		_, err := f.products.UpdateProduct(ctx, milk.ID, domainservice.ProductPatch{CostPerUnit: &cost})
		require.NoError(t, err)

		views, err := f.waste.ListWaste(ctx, model.WasteFilter{})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.True(t, decimal.NewFromInt(8).Equal(views[0].Cost))
	})

	t.Run("Cost of a deleted product is zero", func(t *testing.T) {
		require.NoError(t, f.products.DeleteProduct(ctx, milk.ID))

		found, err := f.waste.GetWasteLog(ctx, view.ID)
		require.NoError(t, err)
		assert.True(t, found.Cost.IsZero())
	})
}

func TestSalesPeriod(t *testing.T) {
	now := mustParse(t, "2024-05-20T15:04:05Z")

	assert.Nil(t, service.PeriodAll.Since(now))
	assert.Nil(t, service.SalesPeriod("decade").Since(now))
	assert.Equal(t, mustParse(t, "2024-05-20T00:00:00Z"), *service.PeriodToday.Since(now))
	assert.Equal(t, mustParse(t, "2024-05-13T00:00:00Z"), *service.PeriodWeek.Since(now))
	assert.Equal(t, mustParse(t, "2024-04-20T00:00:00Z"), *service.PeriodMonth.Since(now))

	assert.Equal(t, mustParse(t, "2024-05-21T00:00:00Z"), *service.PeriodToday.Until(now))
	assert.Nil(t, service.PeriodWeek.Until(now))
	assert.Nil(t, service.PeriodAll.Until(now))
}
