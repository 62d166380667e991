package transport

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	appservice "inventory/pkg/inventory/application/service"
	"inventory/pkg/inventory/domain/model"
	domainservice "inventory/pkg/inventory/domain/service"
)

type wasteRequest struct {
	ProductID  string          `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Reason     string          `json:"reason"`
	RecordedBy string          `json:"recorded_by"`
}

type wasteResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason"`
	RecordedBy  string          `json:"recorded_by"`
	WasteDate   time.Time       `json:"waste_date"`
	CreatedAt   time.Time       `json:"created_at"`
	WasteCost   decimal.Decimal `json:"waste_cost"`
}

func newWasteResponse(view *appservice.WasteLogView) wasteResponse {
	return wasteResponse{
		ID:          view.ID,
		ProductID:   view.ProductID,
		ProductName: view.ProductName,
		Category:    view.Category,
		Quantity:    view.Quantity,
		Reason:      view.Reason,
		RecordedBy:  view.RecordedBy,
		WasteDate:   view.WasteDate,
		CreatedAt:   view.CreatedAt,
		WasteCost:   view.Cost,
	}
}

func (h *handler) listWaste(w http.ResponseWriter, r *http.Request) {
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

	views, err := h.services.Waste.ListWaste(r.Context(), model.WasteFilter{
		ProductID: strings.TrimSpace(r.URL.Query().Get("product_id")),
		DateFrom:  from,
		DateTo:    to,
		Limit:     limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	result := make([]wasteResponse, 0, len(views))
	for i := range views {
		result = append(result, newWasteResponse(&views[i]))
	}
	writeList(w, result, len(result))
}

func (h *handler) getWaste(w http.ResponseWriter, r *http.Request) {
	view, err := h.services.Waste.GetWasteLog(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "", newWasteResponse(view))
}

func (h *handler) recordWaste(w http.ResponseWriter, r *http.Request) {
	var request wasteRequest
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(request.ProductID) == "" {
		writeError(w, model.NewValidationError("product_id", "is required"))
		return
	}

	view, err := h.services.Waste.RecordWaste(r.Context(), domainservice.WasteInput{
		ProductID:  request.ProductID,
		Quantity:   request.Quantity,
		Reason:     request.Reason,
		RecordedBy: request.RecordedBy,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, "Waste recorded successfully", newWasteResponse(view))
}
