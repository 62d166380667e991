package model

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Sale is written by the point-of-sale clients; this service only reads it.
type Sale struct {
	ID          string
	ProductID   string
	ProductName string
	Category    string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Total       decimal.Decimal
	OrderDate   time.Time
	CreatedAt   time.Time
}

type SaleFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
}

type SalesSummary struct {
	TotalOrders       int64
	TotalRevenue      decimal.Decimal
	TotalItemsSold    decimal.Decimal
	AverageOrderValue decimal.Decimal
}

type SaleRepository interface {
	List(ctx context.Context, filter SaleFilter) ([]Sale, error)
	// Summary aggregates sales ordered at or after since and before until; nil
	// leaves that side of the range open.
	Summary(ctx context.Context, since, until *time.Time) (SalesSummary, error)
}
