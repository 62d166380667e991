package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"inventory/pkg/inventory/domain/model"
)

type saleRepository struct {
	access access
}

func (r *saleRepository) List(_ context.Context, filter model.SaleFilter) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.access.read(func(st *state) error {
		for _, sale := range st.sales {
			if inRange(sale.OrderDate, filter.DateFrom, filter.DateTo) {
				sales = append(sales, sale)
			}
		}
		return nil
	})
	sort.SliceStable(sales, func(i, j int) bool { return sales[i].OrderDate.After(sales[j].OrderDate) })
	return limit(sales, filter.Limit), err
}

func (r *saleRepository) Summary(_ context.Context, since, until *time.Time) (model.SalesSummary, error) {
	summary := model.SalesSummary{}
	err := r.access.read(func(st *state) error {
		for _, sale := range st.sales {
			if !inRange(sale.OrderDate, since, nil) {
				continue
			}
			if until != nil && !sale.OrderDate.Before(*until) {
				continue
			}
			summary.TotalOrders++
			summary.TotalRevenue = summary.TotalRevenue.Add(sale.Total)
			summary.TotalItemsSold = summary.TotalItemsSold.Add(sale.Quantity)
		}
		return nil
	})
	if summary.TotalOrders > 0 {
		summary.AverageOrderValue = summary.TotalRevenue.DivRound(decimal.NewFromInt(summary.TotalOrders), 2)
	}
	return summary, err
}
