package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"inventory/pkg/inventory/domain/model"
)

type Event interface{ Type() string }
type EventDispatcher interface{ Dispatch(event Event) error }

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return model.NewValidationError(field, "is required")
	}
	return nil
}

func requireNonNegative(field string, value decimal.Decimal) error {
	if value.IsNegative() {
		return model.NewValidationError(field, "cannot be negative")
	}
	return requireScale(field, value)
}

func requirePositive(field string, value decimal.Decimal) error {
	if !value.IsPositive() {
		return model.NewValidationError(field, "must be greater than 0")
	}
	return requireScale(field, value)
}

// requireScale rejects values the catalog store would round on write.
func requireScale(field string, value decimal.Decimal) error {
	if !value.Equal(value.Truncate(model.QuantityScale)) {
		return model.NewValidationError(field, fmt.Sprintf("supports at most %d decimal places", model.QuantityScale))
	}
	return nil
}

func fieldIndex(list string, index int, field string) string {
	return fmt.Sprintf("%s[%d].%s", list, index, field)
}
