package service

import (
	"context"
	"strings"
	"time"

	"inventory/pkg/inventory/domain/model"
)

type AuditInput struct {
	Action   string
	UserID   string
	UserName string
	Details  string
}

type AuditService interface {
	AppendEvent(ctx context.Context, input AuditInput) (*model.AuditEvent, error)
	ListEvents(ctx context.Context, filter model.AuditFilter) ([]model.AuditEvent, error)
}

func NewAuditService(audit model.AuditRepository) AuditService {
	return &auditService{audit: audit}
}

type auditService struct {
	audit model.AuditRepository
}

// AppendEvent stores an event reported by a client. Unlike the recorder used by
// inventory operations, its failures reach the caller.
func (s *auditService) AppendEvent(ctx context.Context, input AuditInput) (*model.AuditEvent, error) {
	fields := []struct{ name, value string }{
		{"action", input.Action},
		{"user_id", input.UserID},
		{"user_name", input.UserName},
	}
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			return nil, model.NewValidationError(field.name, "is required")
		}
	}

	id, err := s.audit.NextID()
	if err != nil {
		return nil, err
	}
	event := &model.AuditEvent{
		ID:        id.String(),
		Action:    strings.TrimSpace(input.Action),
		UserID:    strings.TrimSpace(input.UserID),
		UserName:  strings.TrimSpace(input.UserName),
		Details:   input.Details,
		Timestamp: time.Now().UTC(),
	}
	if err := s.audit.Append(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *auditService) ListEvents(ctx context.Context, filter model.AuditFilter) ([]model.AuditEvent, error) {
	return s.audit.List(ctx, filter)
}
