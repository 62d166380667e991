package memory

import (
	"context"
	"sync"

	"inventory/pkg/inventory/application/service"
	"inventory/pkg/inventory/domain/model"
)

type state struct {
	products  map[string]model.Product
	recipes   map[string]model.Recipe
	wasteLogs []model.WasteLog
	sales     []model.Sale
	audit     []model.AuditEvent
}

func newState() *state {
	return &state{
		products: make(map[string]model.Product),
		recipes:  make(map[string]model.Recipe),
	}
}

func (s *state) clone() *state {
	c := &state{
		products:  make(map[string]model.Product, len(s.products)),
		recipes:   make(map[string]model.Recipe, len(s.recipes)),
		wasteLogs: append([]model.WasteLog(nil), s.wasteLogs...),
		sales:     append([]model.Sale(nil), s.sales...),
		audit:     append([]model.AuditEvent(nil), s.audit...),
	}
	for id, product := range s.products {
		c.products[id] = product
	}
	for id, recipe := range s.recipes {
		c.recipes[id] = cloneRecipe(recipe)
	}
	return c
}

// Store keeps the catalog in process memory. A unit of work runs against a
// private copy of the state under the store's write lock and replaces the
// shared state only when it succeeds.
type Store struct {
	mu    sync.RWMutex
	state *state
}

func NewStore() *Store {
	return &Store{state: newState()}
}

func (s *Store) Execute(ctx context.Context, fn func(ctx context.Context, provider service.RepositoryProvider) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	if err := fn(ctx, &provider{access: &txAccess{state: working}}); err != nil {
		return err
	}
	s.state = working
	return nil
}

// AddSales loads point-of-sale records, which this service never writes itself.
func (s *Store) AddSales(sales ...model.Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.sales = append(s.state.sales, sales...)
}

func (s *Store) ProductRepository() model.ProductRepository {
	return &productRepository{access: &storeAccess{store: s}}
}

func (s *Store) RecipeRepository() model.RecipeRepository {
	return &recipeRepository{access: &storeAccess{store: s}}
}

func (s *Store) WasteLogRepository() model.WasteLogRepository {
	return &wasteLogRepository{access: &storeAccess{store: s}}
}

func (s *Store) SaleRepository() model.SaleRepository {
	return &saleRepository{access: &storeAccess{store: s}}
}

func (s *Store) AuditRepository() model.AuditRepository {
	return &auditRepository{access: &storeAccess{store: s}}
}

type access interface {
	read(fn func(st *state) error) error
	write(fn func(st *state) error) error
}

// storeAccess guards every call with the store lock and commits writes immediately.
type storeAccess struct {
	store *Store
}

func (a *storeAccess) read(fn func(st *state) error) error {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	return fn(a.store.state)
}

func (a *storeAccess) write(fn func(st *state) error) error {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	working := a.store.state.clone()
	if err := fn(working); err != nil {
		return err
	}
	a.store.state = working
	return nil
}

// txAccess works on the private state of a running unit of work.
type txAccess struct {
	state *state
}

func (a *txAccess) read(fn func(st *state) error) error  { return fn(a.state) }
func (a *txAccess) write(fn func(st *state) error) error { return fn(a.state) }

type provider struct {
	access access
}

func (p *provider) ProductRepository() model.ProductRepository {
	return &productRepository{access: p.access}
}

func (p *provider) RecipeRepository() model.RecipeRepository {
	return &recipeRepository{access: p.access}
}

func (p *provider) WasteLogRepository() model.WasteLogRepository {
	return &wasteLogRepository{access: p.access}
}

func (p *provider) SaleRepository() model.SaleRepository {
	return &saleRepository{access: p.access}
}

func (p *provider) AuditRepository() model.AuditRepository {
	return &auditRepository{access: p.access}
}
