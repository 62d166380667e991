package model

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultIngredientUnit = "g"

type Recipe struct {
	ID            string
	ProductID     string
	ProductName   string
	ProductNumber int
	Ingredients   []RecipeIngredient
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type RecipeIngredient struct {
	ID             string
	ProductID      string
	Name           string
	QuantityNeeded decimal.Decimal
	Unit           string
}

// IngredientIDs returns the distinct ingredient product ids in recipe order.
func (r *Recipe) IngredientIDs() []string {
	seen := make(map[string]struct{}, len(r.Ingredients))
	ids := make([]string, 0, len(r.Ingredients))
	for _, ingredient := range r.Ingredients {
		if _, ok := seen[ingredient.ProductID]; ok {
			continue
		}
		seen[ingredient.ProductID] = struct{}{}
		ids = append(ids, ingredient.ProductID)
	}
	return ids
}

type RecipeRepository interface {
	NextID() (uuid.UUID, error)
	Create(ctx context.Context, recipe *Recipe) error
	Update(ctx context.Context, recipe *Recipe) error
	Find(ctx context.Context, id string) (*Recipe, error)
	List(ctx context.Context) ([]Recipe, error)
	Delete(ctx context.Context, id string) error
}
