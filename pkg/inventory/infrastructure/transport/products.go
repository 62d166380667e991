package transport

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"inventory/pkg/inventory/domain/model"
	domainservice "inventory/pkg/inventory/domain/service"
)

type productRequest struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	InventoryA  decimal.Decimal `json:"inventory_a"`
	InventoryB  decimal.Decimal `json:"inventory_b"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
	ImageURI    string          `json:"image_uri"`
}

type productPatchRequest struct {
	Name        *string          `json:"name"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Unit        *string          `json:"unit"`
	Quantity    *decimal.Decimal `json:"quantity"`
	InventoryA  *decimal.Decimal `json:"inventory_a"`
	InventoryB  *decimal.Decimal `json:"inventory_b"`
	CostPerUnit *decimal.Decimal `json:"cost_per_unit"`
	ImageURI    *string          `json:"image_uri"`
}

type transferRequest struct {
	ID       string          `json:"id"`
	Quantity decimal.Decimal `json:"quantity"`
}

type inventoryRequest struct {
	InventoryA *decimal.Decimal `json:"inventory_a"`
	InventoryB *decimal.Decimal `json:"inventory_b"`
}

type productResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	InventoryA  decimal.Decimal `json:"inventory_a"`
	InventoryB  decimal.Decimal `json:"inventory_b"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
	ImageURI    string          `json:"image_uri"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func newProductResponse(p *model.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Unit:        p.Unit,
		Quantity:    p.Quantity,
		InventoryA:  p.InventoryA,
		InventoryB:  p.InventoryB,
		CostPerUnit: p.CostPerUnit,
		ImageURI:    p.ImageURI,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func newProductResponses(products []model.Product) []productResponse {
	result := make([]productResponse, 0, len(products))
	for i := range products {
		result = append(result, newProductResponse(&products[i]))
	}
	return result
}

func (h *handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.services.Products.ListProducts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, newProductResponses(products), len(products))
}

func (h *handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.services.Products.GetProduct(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "", newProductResponse(product))
}

func (h *handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var request productRequest
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}

	product, err := h.services.Products.CreateProduct(r.Context(), domainservice.ProductInput{
		ID:          request.ID,
		Name:        request.Name,
		Category:    request.Category,
		Price:       request.Price,
		Unit:        request.Unit,
		Quantity:    request.Quantity,
		InventoryA:  request.InventoryA,
		InventoryB:  request.InventoryB,
		CostPerUnit: request.CostPerUnit,
		ImageURI:    request.ImageURI,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, "Product created successfully", newProductResponse(product))
}

func (h *handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var request productPatchRequest
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}

	product, err := h.services.Products.UpdateProduct(r.Context(), mux.Vars(r)["id"], domainservice.ProductPatch{
		Name:        request.Name,
		Category:    request.Category,
		Price:       request.Price,
		Unit:        request.Unit,
		Quantity:    request.Quantity,
		InventoryA:  request.InventoryA,
		InventoryB:  request.InventoryB,
		CostPerUnit: request.CostPerUnit,
		ImageURI:    request.ImageURI,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "Product updated successfully", newProductResponse(product))
}

func (h *handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.services.Products.DeleteProduct(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "Product deleted successfully", nil)
}

func (h *handler) transfer(w http.ResponseWriter, r *http.Request) {
	var request transferRequest
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}
	h.doTransfer(w, r, mux.Vars(r)["id"], request.Quantity)
}

func (h *handler) transferByBody(w http.ResponseWriter, r *http.Request) {
	var request transferRequest
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}
	if request.ID == "" {
		writeError(w, model.NewValidationError("id", "is required"))
		return
	}
	h.doTransfer(w, r, request.ID, request.Quantity)
}

func (h *handler) doTransfer(w http.ResponseWriter, r *http.Request, productID string, quantity decimal.Decimal) {
	product, err := h.services.Products.Transfer(r.Context(), productID, quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "Inventory transferred successfully", newProductResponse(product))
}

func (h *handler) adjustInventory(w http.ResponseWriter, r *http.Request) {
	var request inventoryRequest
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}

	product, err := h.services.Products.AdjustInventory(r.Context(), mux.Vars(r)["id"], request.InventoryA, request.InventoryB)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "Inventory updated successfully", newProductResponse(product))
}
