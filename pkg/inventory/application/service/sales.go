package service

import (
	"context"
	"time"

	"inventory/pkg/inventory/domain/model"
)

type SalesPeriod string

const (
	PeriodToday SalesPeriod = "today"
	PeriodWeek  SalesPeriod = "week"
	PeriodMonth SalesPeriod = "month"
	PeriodAll   SalesPeriod = "all"
)

// Since returns the start of the period relative to now, or nil for an
// unbounded period. Unknown periods are unbounded.
func (p SalesPeriod) Since(now time.Time) *time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var since time.Time
	switch p {
	case PeriodToday:
		since = today
	case PeriodWeek:
		since = today.AddDate(0, 0, -7)
	case PeriodMonth:
		since = today.AddDate(0, 0, -30)
	default:
		return nil
	}
	return &since
}

// Until returns the exclusive end of the period, or nil when it is open.
// Only today is bounded so that sales dated tomorrow stay out of it.
func (p SalesPeriod) Until(now time.Time) *time.Time {
	if p != PeriodToday {
		return nil
	}
	until := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return &until
}

type SalesService interface {
	ListSales(ctx context.Context, filter model.SaleFilter) ([]model.Sale, error)
	Summary(ctx context.Context, period SalesPeriod) (model.SalesSummary, error)
}

func NewSalesService(sales model.SaleRepository) SalesService {
	return &salesService{sales: sales}
}

type salesService struct {
	sales model.SaleRepository
}

func (s *salesService) ListSales(ctx context.Context, filter model.SaleFilter) ([]model.Sale, error) {
	return s.sales.List(ctx, filter)
}

func (s *salesService) Summary(ctx context.Context, period SalesPeriod) (model.SalesSummary, error) {
	now := time.Now().UTC()
	return s.sales.Summary(ctx, period.Since(now), period.Until(now))
}
