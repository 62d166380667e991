package mysql

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"inventory/pkg/inventory/domain/model"
)

const auditColumns = `id, action, user_id, user_name, details, recorded_at`

type sqlxAuditEvent struct {
	ID        string    `db:"id"`
	Action    string    `db:"action"`
	UserID    string    `db:"user_id"`
	UserName  string    `db:"user_name"`
	Details   string    `db:"details"`
	Timestamp time.Time `db:"recorded_at"`
}

type auditRepository struct {
	db sqlx.ExtContext
}

func (r *auditRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *auditRepository) Append(ctx context.Context, event *model.AuditEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_trail (`+auditColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		event.ID, event.Action, event.UserID, event.UserName, event.Details, event.Timestamp,
	)
	if err != nil {
		return dependencyError("insert audit event", err)
	}
	return nil
}

func (r *auditRepository) List(ctx context.Context, filter model.AuditFilter) ([]model.AuditEvent, error) {
	builder := filterBuilder{}
	if filter.UserName != "" {
		builder.add("user_name = ?", filter.UserName)
	}
	if filter.Action != "" {
		builder.add("action = ?", filter.Action)
	}
	if filter.DateFrom != nil {
		builder.add("recorded_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		builder.add("recorded_at <= ?", *filter.DateTo)
	}
	query := `SELECT ` + auditColumns + ` FROM audit_trail` + builder.where() +
		` ORDER BY recorded_at DESC` + builder.limit(filter.Limit)

	var rows []sqlxAuditEvent
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, builder.args...); err != nil {
		return nil, dependencyError("select audit events", err)
	}
	events := make([]model.AuditEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, model.AuditEvent{
			ID:        row.ID,
			Action:    row.Action,
			UserID:    row.UserID,
			UserName:  row.UserName,
			Details:   row.Details,
			Timestamp: row.Timestamp,
		})
	}
	return events, nil
}
