package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Events carry an audit action name and a human readable description.

type ProductCreated struct {
	ProductID string
	Name      string
}

func (e ProductCreated) Type() string    { return "ProductCreated" }
func (e ProductCreated) Action() string  { return "Product Created" }
func (e ProductCreated) Details() string { return fmt.Sprintf("Created product: %s", e.Name) }

type ProductUpdated struct {
	ProductID string
	Name      string
}

func (e ProductUpdated) Type() string    { return "ProductUpdated" }
func (e ProductUpdated) Action() string  { return "Product Updated" }
func (e ProductUpdated) Details() string { return fmt.Sprintf("Updated product: %s", e.Name) }

type ProductDeleted struct {
	ProductID string
	Name      string
}

func (e ProductDeleted) Type() string    { return "ProductDeleted" }
func (e ProductDeleted) Action() string  { return "Product Deleted" }
func (e ProductDeleted) Details() string { return fmt.Sprintf("Deleted product: %s", e.Name) }

type InventoryTransferred struct {
	ProductID     string
	Quantity      decimal.Decimal
	NewInventoryA decimal.Decimal
	NewInventoryB decimal.Decimal
}

func (e InventoryTransferred) Type() string   { return "InventoryTransferred" }
func (e InventoryTransferred) Action() string { return "Inventory Transfer" }
func (e InventoryTransferred) Details() string {
	return fmt.Sprintf("Transferred %s units from A to B for product %s", e.Quantity.String(), e.ProductID)
}

type InventoryAdjusted struct {
	ProductID     string
	NewInventoryA decimal.Decimal
	NewInventoryB decimal.Decimal
}

func (e InventoryAdjusted) Type() string   { return "InventoryAdjusted" }
func (e InventoryAdjusted) Action() string { return "Inventory Adjusted" }
func (e InventoryAdjusted) Details() string {
	return fmt.Sprintf("Set inventory for product %s to A=%s, B=%s",
		e.ProductID, e.NewInventoryA.String(), e.NewInventoryB.String())
}

type RecipeCreated struct {
	RecipeID    string
	ProductName string
}

func (e RecipeCreated) Type() string    { return "RecipeCreated" }
func (e RecipeCreated) Action() string  { return "Recipe Created" }
func (e RecipeCreated) Details() string { return fmt.Sprintf("Created recipe for %s", e.ProductName) }

type RecipeUpdated struct {
	RecipeID    string
	ProductName string
}

func (e RecipeUpdated) Type() string    { return "RecipeUpdated" }
func (e RecipeUpdated) Action() string  { return "Recipe Updated" }
func (e RecipeUpdated) Details() string { return fmt.Sprintf("Updated recipe for %s", e.ProductName) }

type RecipeDeleted struct {
	RecipeID    string
	ProductName string
}

func (e RecipeDeleted) Type() string    { return "RecipeDeleted" }
func (e RecipeDeleted) Action() string  { return "Recipe Deleted" }
func (e RecipeDeleted) Details() string { return fmt.Sprintf("Deleted recipe for %s", e.ProductName) }

type RecipeConsumed struct {
	RecipeID    string
	ProductName string
	Servings    int64
}

func (e RecipeConsumed) Type() string   { return "RecipeConsumed" }
func (e RecipeConsumed) Action() string { return "Recipe Consumed" }
func (e RecipeConsumed) Details() string {
	return fmt.Sprintf("Consumed ingredients for %d servings of %s", e.Servings, e.ProductName)
}

type WasteRecorded struct {
	WasteLogID  string
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal
	Reason      string
}

func (e WasteRecorded) Type() string   { return "WasteRecorded" }
func (e WasteRecorded) Action() string { return "Waste Recorded" }
func (e WasteRecorded) Details() string {
	return fmt.Sprintf("Recorded %s units of %s as waste (%s)", e.Quantity.String(), e.ProductName, e.Reason)
}
