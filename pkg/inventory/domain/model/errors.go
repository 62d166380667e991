package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrRecipeNotFound    = errors.New("recipe not found")
	ErrWasteLogNotFound  = errors.New("waste log not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrValidation        = errors.New("validation failed")
	ErrDependencyFailure = errors.New("dependency failure")
)

// IsNotFound reports whether err refers to a missing product, recipe or waste log.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrRecipeNotFound) ||
		errors.Is(err, ErrWasteLogNotFound)
}

type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

type Pool string

const (
	PoolA Pool = "A"
	PoolB Pool = "B"
)

// InsufficientStockError names the product and pool that would go negative.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Pool        Pool
	Available   decimal.Decimal
	Requested   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	name := e.ProductID
	if e.ProductName != "" {
		name = fmt.Sprintf("%s (%s)", e.ProductName, e.ProductID)
	}
	return fmt.Sprintf("insufficient stock in inventory %s for %s: available %s, requested %s",
		e.Pool, name, e.Available.String(), e.Requested.String())
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// DependencyError wraps a failure of the catalog store or another collaborator.
type DependencyError struct {
	Op  string
	Err error
}

func NewDependencyError(op string, err error) *DependencyError {
	return &DependencyError{Op: op, Err: err}
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

func (e *DependencyError) Is(target error) bool { return target == ErrDependencyFailure }
