package model

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultProductUnit = "pcs"

// QuantityScale is the number of decimal places kept for quantities, stock
// pools, prices and costs.
const QuantityScale int32 = 4

// Product is a catalog entry whose stock is split between the warehouse pool
// (InventoryA) and the operational pool (InventoryB). Quantity mirrors
// InventoryB and is informational only.
type Product struct {
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
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Pool returns the level of the given inventory pool.
func (p *Product) Pool(pool Pool) decimal.Decimal {
	if pool == PoolA {
		return p.InventoryA
	}
	return p.InventoryB
}

type ProductRepository interface {
	NextID() (uuid.UUID, error)
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Find(ctx context.Context, id string) (*Product, error)
	// FindMany returns the products that exist among ids, keyed by id.
	FindMany(ctx context.Context, ids []string) (map[string]*Product, error)
	List(ctx context.Context) ([]Product, error)
	Delete(ctx context.Context, id string) error
}
