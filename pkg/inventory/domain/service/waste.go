package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"inventory/pkg/inventory/domain/model"
)

type WasteInput struct {
	ProductID  string
	Quantity   decimal.Decimal
	Reason     string
	RecordedBy string
}

type WasteService interface {
	RecordWaste(ctx context.Context, input WasteInput) (*model.WasteLog, *model.Product, error)
}

func NewWasteService(
	products model.ProductRepository,
	wasteLogs model.WasteLogRepository,
	dispatcher EventDispatcher,
) WasteService {
	return &wasteService{products: products, wasteLogs: wasteLogs, dispatcher: dispatcher}
}

type wasteService struct {
	products   model.ProductRepository
	wasteLogs  model.WasteLogRepository
	dispatcher EventDispatcher
}

// RecordWaste removes quantity from the operational pool of the product and
// logs it. Waste can only be taken from stock that is actually in pool B.
func (s *wasteService) RecordWaste(ctx context.Context, input WasteInput) (*model.WasteLog, *model.Product, error) {
	if err := requirePositive("quantity", input.Quantity); err != nil {
		return nil, nil, err
	}
	reason := strings.TrimSpace(input.Reason)
	if err := requireText("reason", reason); err != nil {
		return nil, nil, err
	}

	product, err := s.products.Find(ctx, input.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product.InventoryB.LessThan(input.Quantity) {
		return nil, nil, &model.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Pool:        model.PoolB,
			Available:   product.InventoryB,
			Requested:   input.Quantity,
		}
	}

	logID, err := s.wasteLogs.NextID()
	if err != nil {
		return nil, nil, err
	}

	recordedBy := strings.TrimSpace(input.RecordedBy)
	if recordedBy == "" {
		recordedBy = model.DefaultRecorder
	}

	now := time.Now().UTC()
	product.InventoryB = product.InventoryB.Sub(input.Quantity)
	product.Quantity = product.InventoryB
	product.UpdatedAt = now
	if err := s.products.Update(ctx, product); err != nil {
		return nil, nil, err
	}

	entry := &model.WasteLog{
		ID:          logID.String(),
		ProductID:   product.ID,
		ProductName: product.Name,
		Category:    product.Category,
		Quantity:    input.Quantity,
		Reason:      reason,
		RecordedBy:  recordedBy,
		WasteDate:   now,
		CreatedAt:   now,
	}
	if err := s.wasteLogs.Create(ctx, entry); err != nil {
		return nil, nil, err
	}

	_ = s.dispatcher.Dispatch(model.WasteRecorded{
		WasteLogID:  entry.ID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    entry.Quantity,
		Reason:      entry.Reason,
	})
	return entry, product, nil
}

// WasteCost values a waste entry at the current cost of its product. The cost
// is not snapshotted, so it follows later price changes; a deleted product
// costs nothing.
func WasteCost(entry *model.WasteLog, product *model.Product) decimal.Decimal {
	if entry == nil || product == nil {
		return decimal.Zero
	}
	return entry.Quantity.Mul(product.CostPerUnit)
}
