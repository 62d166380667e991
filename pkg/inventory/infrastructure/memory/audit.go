package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"inventory/pkg/inventory/domain/model"
)

type auditRepository struct {
	access access
}

func (r *auditRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *auditRepository) Append(_ context.Context, event *model.AuditEvent) error {
	return r.access.write(func(st *state) error {
		st.audit = append(st.audit, *event)
		return nil
	})
}

func (r *auditRepository) List(_ context.Context, filter model.AuditFilter) ([]model.AuditEvent, error) {
	var events []model.AuditEvent
	err := r.access.read(func(st *state) error {
		for _, event := range st.audit {
			if filter.UserName != "" && event.UserName != filter.UserName {
				continue
			}
			if filter.Action != "" && event.Action != filter.Action {
				continue
			}
			if !inRange(event.Timestamp, filter.DateFrom, filter.DateTo) {
				continue
			}
			events = append(events, event)
		}
		return nil
	})
	sort.SliceStable(events, func(i, j int) bool { return events[i].Timestamp.After(events[j].Timestamp) })
	return limit(events, filter.Limit), err
}
