package model

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultRecorder = "system"

// WasteLog records stock destroyed from the operational pool. Product name
// and category are captured when the entry is written.
type WasteLog struct {
	ID          string
	ProductID   string
	ProductName string
	Category    string
	Quantity    decimal.Decimal
	Reason      string
	RecordedBy  string
	WasteDate   time.Time
	CreatedAt   time.Time
}

type WasteFilter struct {
	ProductID string
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int
}

type WasteLogRepository interface {
	NextID() (uuid.UUID, error)
	Create(ctx context.Context, log *WasteLog) error
	Find(ctx context.Context, id string) (*WasteLog, error)
	List(ctx context.Context, filter WasteFilter) ([]WasteLog, error)
}
