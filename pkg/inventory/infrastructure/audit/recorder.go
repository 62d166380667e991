package audit

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"inventory/pkg/inventory/domain/model"
)

// Publisher forwards stored audit events to an external sink.
type Publisher interface {
	Publish(ctx context.Context, event model.AuditEvent) error
	Close() error
}

// Recorder appends audit events to the audit trail and then hands them to the
// optional publisher.
type Recorder struct {
	repository model.AuditRepository
	publisher  Publisher
}

func NewRecorder(repository model.AuditRepository, publisher Publisher) *Recorder {
	return &Recorder{repository: repository, publisher: publisher}
}

func (r *Recorder) Record(ctx context.Context, action string, actor model.Actor, details string) error {
	id, err := r.repository.NextID()
	if err != nil {
		return errors.Wrap(err, "generate audit event id")
	}
	event := model.AuditEvent{
		ID:        id.String(),
		Action:    action,
		UserID:    actor.ID,
		UserName:  actor.Name,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
	if err := r.repository.Append(ctx, &event); err != nil {
		return err
	}

	if r.publisher == nil {
		return nil
	}
	return errors.Wrapf(r.publisher.Publish(ctx, event), "publish audit event %s", event.ID)
}

type message struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

func newMessage(event model.AuditEvent) message {
	return message{
		ID:        event.ID,
		Action:    event.Action,
		UserID:    event.UserID,
		UserName:  event.UserName,
		Details:   event.Details,
		Timestamp: event.Timestamp,
	}
}
