package tests

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"inventory/pkg/inventory/domain/model"
	"inventory/pkg/inventory/domain/service"
)

type mockProductRepository struct {
	store    map[string]*model.Product
	failOnID string
}

func (m *mockProductRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }
func (m *mockProductRepository) Create(_ context.Context, p *model.Product) error {
	clone := *p
	m.store[p.ID] = &clone
	return nil
}
func (m *mockProductRepository) Update(_ context.Context, p *model.Product) error {
	if _, ok := m.store[p.ID]; !ok {
		return model.ErrProductNotFound
	}
	if p.ID == m.failOnID {
		return model.NewDependencyError("update product", context.DeadlineExceeded)
	}
	clone := *p
	m.store[p.ID] = &clone
	return nil
}
func (m *mockProductRepository) Find(_ context.Context, id string) (*model.Product, error) {
	if p, ok := m.store[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, model.ErrProductNotFound
}
func (m *mockProductRepository) FindMany(_ context.Context, ids []string) (map[string]*model.Product, error) {
	result := make(map[string]*model.Product, len(ids))
	for _, id := range ids {
		if p, ok := m.store[id]; ok {
			clone := *p
			result[id] = &clone
		}
	}
	return result, nil
}
func (m *mockProductRepository) List(_ context.Context) ([]model.Product, error) {
	products := make([]model.Product, 0, len(m.store))
	for _, p := range m.store {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}
func (m *mockProductRepository) Delete(_ context.Context, id string) error {
	if _, ok := m.store[id]; !ok {
		return model.ErrProductNotFound
	}
	delete(m.store, id)
	return nil
}

type mockRecipeRepository struct {
	store map[string]*model.Recipe
}

func (m *mockRecipeRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }
func (m *mockRecipeRepository) Create(_ context.Context, r *model.Recipe) error {
	m.store[r.ID] = cloneRecipe(r)
	return nil
}
func (m *mockRecipeRepository) Update(_ context.Context, r *model.Recipe) error {
	if _, ok := m.store[r.ID]; !ok {
		return model.ErrRecipeNotFound
	}
	m.store[r.ID] = cloneRecipe(r)
	return nil
}
func (m *mockRecipeRepository) Find(_ context.Context, id string) (*model.Recipe, error) {
	if r, ok := m.store[id]; ok {
		return cloneRecipe(r), nil
	}
	return nil, model.ErrRecipeNotFound
}
func (m *mockRecipeRepository) List(_ context.Context) ([]model.Recipe, error) {
	recipes := make([]model.Recipe, 0, len(m.store))
	for _, r := range m.store {
		recipes = append(recipes, *cloneRecipe(r))
	}
	return recipes, nil
}
func (m *mockRecipeRepository) Delete(_ context.Context, id string) error {
	if _, ok := m.store[id]; !ok {
		return model.ErrRecipeNotFound
	}
	delete(m.store, id)
	return nil
}

func cloneRecipe(r *model.Recipe) *model.Recipe {
	clone := *r
	clone.Ingredients = append([]model.RecipeIngredient(nil), r.Ingredients...)
	return &clone
}

type mockWasteLogRepository struct {
	store []model.WasteLog
}

func (m *mockWasteLogRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }
func (m *mockWasteLogRepository) Create(_ context.Context, l *model.WasteLog) error {
	m.store = append(m.store, *l)
	return nil
}
func (m *mockWasteLogRepository) Find(_ context.Context, id string) (*model.WasteLog, error) {
	for _, l := range m.store {
		if l.ID == id {
			clone := l
			return &clone, nil
		}
	}
	return nil, model.ErrWasteLogNotFound
}
func (m *mockWasteLogRepository) List(_ context.Context, _ model.WasteFilter) ([]model.WasteLog, error) {
	return append([]model.WasteLog(nil), m.store...), nil
}

type mockEventDispatcher struct {
	events []service.Event
}

func (m *mockEventDispatcher) Dispatch(event service.Event) error {
	m.events = append(m.events, event)
	return nil
}
func (m *mockEventDispatcher) Reset() {
	m.events = nil
}
