package transport

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	appservice "inventory/pkg/inventory/application/service"
	"inventory/pkg/inventory/domain/model"
)

type saleResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
	OrderDate   time.Time       `json:"order_date"`
	CreatedAt   time.Time       `json:"created_at"`
}

type salesSummaryResponse struct {
	Period            string          `json:"period"`
	TotalOrders       int64           `json:"total_orders"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalItemsSold    decimal.Decimal `json:"total_items_sold"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

func (h *handler) listSales(w http.ResponseWriter, r *http.Request) {
	from, to, err := queryDateRange(r)
	if err != nil {
		writeError(w, err)
		return
	}
	limit, err := queryLimit(r)
	if err != nil {
		writeError(w, err)
		return
	}

	sales, err := h.services.Sales.ListSales(r.Context(), model.SaleFilter{DateFrom: from, DateTo: to, Limit: limit})
	if err != nil {
		writeError(w, err)
		return
	}
	result := make([]saleResponse, 0, len(sales))
	for _, sale := range sales {
		result = append(result, saleResponse{
			ID:          sale.ID,
			ProductID:   sale.ProductID,
			ProductName: sale.ProductName,
			Category:    sale.Category,
			Quantity:    sale.Quantity,
			Price:       sale.Price,
			Total:       sale.Total,
			OrderDate:   sale.OrderDate,
			CreatedAt:   sale.CreatedAt,
		})
	}
	writeList(w, result, len(result))
}

func (h *handler) salesSummary(w http.ResponseWriter, r *http.Request) {
	period := appservice.SalesPeriod(r.URL.Query().Get("period"))
	if period == "" {
		period = appservice.PeriodAll
	}

	summary, err := h.services.Sales.Summary(r.Context(), period)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "", salesSummaryResponse{
		Period:            string(period),
		TotalOrders:       summary.TotalOrders,
		TotalRevenue:      summary.TotalRevenue,
		TotalItemsSold:    summary.TotalItemsSold,
		AverageOrderValue: summary.AverageOrderValue,
	})
}
