package transport

import (
	"net/http"
	"strings"
	"time"

	appservice "inventory/pkg/inventory/application/service"
	"inventory/pkg/inventory/domain/model"
)

type auditRequest struct {
	Action   string `json:"action"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Details  string `json:"details"`
}

type auditResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

func newAuditResponse(event *model.AuditEvent) auditResponse {
	return auditResponse{
		ID:        event.ID,
		Action:    event.Action,
		UserID:    event.UserID,
		UserName:  event.UserName,
		Details:   event.Details,
		Timestamp: event.Timestamp,
	}
}

func (h *handler) listAudit(w http.ResponseWriter, r *http.Request) {
	from, to, err := queryDateRange(r)
	if err != nil {
		writeError(w, err)
		return
	}
	limit, err := queryLimit(r)
	if err != nil {
		writeError(w, err)
		return
	}

	query := r.URL.Query()
	events, err := h.services.Audit.ListEvents(r.Context(), model.AuditFilter{
		UserName: strings.TrimSpace(query.Get("user")),
		Action:   strings.TrimSpace(query.Get("action")),
		DateFrom: from,
		DateTo:   to,
		Limit:    limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	result := make([]auditResponse, 0, len(events))
	for i := range events {
		result = append(result, newAuditResponse(&events[i]))
	}
	writeList(w, result, len(result))
}

func (h *handler) appendAudit(w http.ResponseWriter, r *http.Request) {
	var request auditRequest
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}

	event, err := h.services.Audit.AppendEvent(r.Context(), appservice.AuditInput{
		Action:   request.Action,
		UserID:   request.UserID,
		UserName: request.UserName,
		Details:  request.Details,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, "Audit event recorded", newAuditResponse(event))
}
