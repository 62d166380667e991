package mysql

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"inventory/pkg/inventory/domain/model"
)

const saleColumns = `id, product_id, product_name, category, quantity, price, total, order_date, created_at`

type sqlxSale struct {
	ID          string          `db:"id"`
	ProductID   string          `db:"product_id"`
	ProductName string          `db:"product_name"`
	Category    string          `db:"category"`
	Quantity    decimal.Decimal `db:"quantity"`
	Price       decimal.Decimal `db:"price"`
	Total       decimal.Decimal `db:"total"`
	OrderDate   time.Time       `db:"order_date"`
	CreatedAt   time.Time       `db:"created_at"`
}

type sqlxSalesSummary struct {
	TotalOrders    int64               `db:"total_orders"`
	TotalRevenue   decimal.NullDecimal `db:"total_revenue"`
	TotalItemsSold decimal.NullDecimal `db:"total_items_sold"`
}

type saleRepository struct {
	db sqlx.ExtContext
}

func (r *saleRepository) List(ctx context.Context, filter model.SaleFilter) ([]model.Sale, error) {
	builder := filterBuilder{}
	if filter.DateFrom != nil {
		builder.add("order_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		builder.add("order_date <= ?", *filter.DateTo)
	}
	query := `SELECT ` + saleColumns + ` FROM sale` + builder.where() +
		` ORDER BY order_date DESC` + builder.limit(filter.Limit)

	var rows []sqlxSale
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, builder.args...); err != nil {
		return nil, dependencyError("select sales", err)
	}
	sales := make([]model.Sale, 0, len(rows))
	for _, row := range rows {
		sales = append(sales, model.Sale{
			ID:          row.ID,
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Category:    row.Category,
			Quantity:    row.Quantity,
			Price:       row.Price,
			Total:       row.Total,
			OrderDate:   row.OrderDate,
			CreatedAt:   row.CreatedAt,
		})
	}
	return sales, nil
}

func (r *saleRepository) Summary(ctx context.Context, since, until *time.Time) (model.SalesSummary, error) {
	builder := filterBuilder{}
	if since != nil {
		builder.add("order_date >= ?", *since)
	}
	if until != nil {
		builder.add("order_date < ?", *until)
	}

	var row sqlxSalesSummary
	err := sqlx.GetContext(ctx, r.db, &row, `
		SELECT COUNT(*) AS total_orders, SUM(total) AS total_revenue, SUM(quantity) AS total_items_sold
		FROM sale`+builder.where(), builder.args...)
	if err != nil {
		return model.SalesSummary{}, dependencyError("summarize sales", err)
	}

	summary := model.SalesSummary{
		TotalOrders:    row.TotalOrders,
		TotalRevenue:   row.TotalRevenue.Decimal,
		TotalItemsSold: row.TotalItemsSold.Decimal,
	}
	if summary.TotalOrders > 0 {
		summary.AverageOrderValue = summary.TotalRevenue.DivRound(decimal.NewFromInt(summary.TotalOrders), 2)
	}
	return summary, nil
}
