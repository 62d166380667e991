package transport

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	appservice "inventory/pkg/inventory/application/service"
	domainservice "inventory/pkg/inventory/domain/service"
)

type ingredientRequest struct {
	ProductID      string          `json:"product_id"`
	Name           string          `json:"ingredient_name"`
	QuantityNeeded decimal.Decimal `json:"quantity_needed"`
	Unit           string          `json:"unit"`
}

type recipeRequest struct {
	ProductID     string              `json:"product_id"`
	ProductName   string              `json:"product_name"`
	ProductNumber int                 `json:"product_number"`
	Ingredients   []ingredientRequest `json:"ingredients"`
}

func (r recipeRequest) toInput() domainservice.RecipeInput {
	input := domainservice.RecipeInput{
		ProductID:     r.ProductID,
		ProductName:   r.ProductName,
		ProductNumber: r.ProductNumber,
		Ingredients:   make([]domainservice.IngredientInput, 0, len(r.Ingredients)),
	}
	for _, ingredient := range r.Ingredients {
		input.Ingredients = append(input.Ingredients, domainservice.IngredientInput{
			ProductID:      ingredient.ProductID,
			Name:           ingredient.Name,
			QuantityNeeded: ingredient.QuantityNeeded,
			Unit:           ingredient.Unit,
		})
	}
	return input
}

type consumeRequest struct {
	Servings int64 `json:"servings"`
}

type ingredientStockResponse struct {
	InventoryA decimal.Decimal `json:"inventory_a"`
	InventoryB decimal.Decimal `json:"inventory_b"`
	Total      decimal.Decimal `json:"total"`
}

type ingredientResponse struct {
	ID              string                   `json:"id"`
	ProductID       string                   `json:"product_id"`
	Name            string                   `json:"ingredient_name"`
	QuantityNeeded  decimal.Decimal          `json:"quantity_needed"`
	Unit            string                   `json:"unit"`
	IngredientStock *ingredientStockResponse `json:"ingredient_stock"`
	IngredientCost  decimal.Decimal          `json:"ingredient_cost"`
}

type recipeResponse struct {
	ID              string               `json:"id"`
	ProductID       string               `json:"product_id"`
	ProductName     string               `json:"product_name"`
	ProductNumber   int                  `json:"product_number"`
	Ingredients     []ingredientResponse `json:"ingredients"`
	IngredientCount int                  `json:"ingredient_count"`
	MaxServings     int64                `json:"max_servings"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

type maxServingsResponse struct {
	RecipeID    string `json:"recipe_id"`
	MaxServings int64  `json:"max_servings"`
}

type consumeResponse struct {
	RecipeID string            `json:"recipe_id"`
	Servings int64             `json:"servings"`
	Products []productResponse `json:"products"`
}

func newIngredientResponses(views []appservice.IngredientView) []ingredientResponse {
	result := make([]ingredientResponse, 0, len(views))
	for _, view := range views {
		response := ingredientResponse{
			ID:             view.ID,
			ProductID:      view.ProductID,
			Name:           view.Name,
			QuantityNeeded: view.QuantityNeeded,
			Unit:           view.Unit,
			IngredientCost: view.CostPerUnit,
		}
		if view.Stock != nil {
			response.IngredientStock = &ingredientStockResponse{
				InventoryA: view.Stock.InventoryA,
				InventoryB: view.Stock.InventoryB,
				Total:      view.Stock.Total,
			}
		}
		result = append(result, response)
	}
	return result
}

func newRecipeResponse(view *appservice.RecipeView) recipeResponse {
	return recipeResponse{
		ID:              view.ID,
		ProductID:       view.ProductID,
		ProductName:     view.ProductName,
		ProductNumber:   view.ProductNumber,
		Ingredients:     newIngredientResponses(view.IngredientViews),
		IngredientCount: view.IngredientCount,
		MaxServings:     view.MaxServings,
		CreatedAt:       view.CreatedAt,
		UpdatedAt:       view.UpdatedAt,
	}
}

func (h *handler) listRecipes(w http.ResponseWriter, r *http.Request) {
	views, err := h.services.Recipes.ListRecipes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	result := make([]recipeResponse, 0, len(views))
	for i := range views {
		result = append(result, newRecipeResponse(&views[i]))
	}
	writeList(w, result, len(result))
}

func (h *handler) getRecipe(w http.ResponseWriter, r *http.Request) {
	view, err := h.services.Recipes.GetRecipe(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "", newRecipeResponse(view))
}

func (h *handler) createRecipe(w http.ResponseWriter, r *http.Request) {
	var request recipeRequest
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}

	view, err := h.services.Recipes.CreateRecipe(r.Context(), request.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, "Recipe created successfully", newRecipeResponse(view))
}

func (h *handler) updateRecipe(w http.ResponseWriter, r *http.Request) {
	var request recipeRequest
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}

	view, err := h.services.Recipes.UpdateRecipe(r.Context(), mux.Vars(r)["id"], request.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "Recipe updated successfully", newRecipeResponse(view))
}

func (h *handler) deleteRecipe(w http.ResponseWriter, r *http.Request) {
	if err := h.services.Recipes.DeleteRecipe(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "Recipe deleted successfully", nil)
}

func (h *handler) recipeIngredients(w http.ResponseWriter, r *http.Request) {
	views, err := h.services.Recipes.Ingredients(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, newIngredientResponses(views), len(views))
}

func (h *handler) maxServings(w http.ResponseWriter, r *http.Request) {
	recipeID := mux.Vars(r)["id"]
	servings, err := h.services.Recipes.MaxServings(r.Context(), recipeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "", maxServingsResponse{RecipeID: recipeID, MaxServings: servings})
}

func (h *handler) consumeRecipe(w http.ResponseWriter, r *http.Request) {
	var request consumeRequest
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}

	recipeID := mux.Vars(r)["id"]
	products, err := h.services.Recipes.ConsumeForRecipe(r.Context(), recipeID, request.Servings)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "Ingredients consumed successfully", consumeResponse{
		RecipeID: recipeID,
		Servings: request.Servings,
		Products: newProductResponses(products),
	})
}
