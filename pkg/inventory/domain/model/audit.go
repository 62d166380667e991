package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Actor identifies who triggered an operation.
type Actor struct {
	ID   string
	Name string
}

var SystemActor = Actor{ID: DefaultRecorder, Name: DefaultRecorder}

// AuditEvent is append-only.
type AuditEvent struct {
	ID        string
	Action    string
	UserID    string
	UserName  string
	Details   string
	Timestamp time.Time
}

type AuditFilter struct {
	UserName string
	Action   string
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
}

type AuditRepository interface {
	NextID() (uuid.UUID, error)
	Append(ctx context.Context, event *AuditEvent) error
	List(ctx context.Context, filter AuditFilter) ([]AuditEvent, error)
}
