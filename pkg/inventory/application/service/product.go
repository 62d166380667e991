package service

import (
	"context"

	"github.com/shopspring/decimal"

	"inventory/pkg/inventory/domain/model"
	domainservice "inventory/pkg/inventory/domain/service"
)

type ProductService interface {
	CreateProduct(ctx context.Context, input domainservice.ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, productID string, patch domainservice.ProductPatch) (*model.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	Transfer(ctx context.Context, productID string, quantity decimal.Decimal) (*model.Product, error)
	AdjustInventory(ctx context.Context, productID string, inventoryA, inventoryB *decimal.Decimal) (*model.Product, error)
}

func NewProductService(storage Storage, recorder AuditRecorder) ProductService {
	return &productService{executor{storage: storage, recorder: recorder}}
}

type productService struct {
	executor
}

func (s *productService) CreateProduct(ctx context.Context, input domainservice.ProductInput) (product *model.Product, err error) {
	err = s.executeOnInventory(ctx, "product.create", func(ctx context.Context, inventory domainservice.InventoryService) error {
		product, err = inventory.CreateProduct(ctx, input)
		return err
	})
	return product, err
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, patch domainservice.ProductPatch) (product *model.Product, err error) {
	err = s.executeOnInventory(ctx, "product.update", func(ctx context.Context, inventory domainservice.InventoryService) error {
		product, err = inventory.UpdateProduct(ctx, productID, patch)
		return err
	})
	return product, err
}

func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	return s.executeOnInventory(ctx, "product.delete", func(ctx context.Context, inventory domainservice.InventoryService) error {
		return inventory.DeleteProduct(ctx, productID)
	})
}

func (s *productService) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	return s.storage.ProductRepository().Find(ctx, productID)
}

func (s *productService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.storage.ProductRepository().List(ctx)
}

func (s *productService) Transfer(ctx context.Context, productID string, quantity decimal.Decimal) (product *model.Product, err error) {
	err = s.executeOnInventory(ctx, "inventory.transfer", func(ctx context.Context, inventory domainservice.InventoryService) error {
		product, err = inventory.Transfer(ctx, productID, quantity)
		return err
	})
	return product, err
}

func (s *productService) AdjustInventory(ctx context.Context, productID string, inventoryA, inventoryB *decimal.Decimal) (product *model.Product, err error) {
	err = s.executeOnInventory(ctx, "inventory.adjust", func(ctx context.Context, inventory domainservice.InventoryService) error {
		product, err = inventory.AdjustInventory(ctx, productID, inventoryA, inventoryB)
		return err
	})
	return product, err
}

func (s *productService) executeOnInventory(
	ctx context.Context,
	operation string,
	action func(ctx context.Context, inventory domainservice.InventoryService) error,
) error {
	return s.execute(ctx, operation, func(ctx context.Context, provider RepositoryProvider, dispatcher domainservice.EventDispatcher) error {
		return action(ctx, newInventoryService(provider, dispatcher))
	})
}

func newInventoryService(provider RepositoryProvider, dispatcher domainservice.EventDispatcher) domainservice.InventoryService {
	return domainservice.NewInventoryService(provider.ProductRepository(), provider.RecipeRepository(), dispatcher)
}
