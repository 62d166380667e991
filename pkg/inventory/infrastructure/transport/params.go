package transport

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"inventory/pkg/inventory/domain/model"
)

const dateLayout = "2006-01-02"

// queryTime accepts RFC 3339 timestamps and plain dates. A plain date used as
// an upper bound covers the whole day.
func queryTime(r *http.Request, name string, upperBound bool) (*time.Time, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, model.NewValidationError(name, "expected RFC 3339 timestamp or YYYY-MM-DD date")
	}
	if upperBound {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func queryDateRange(r *http.Request) (from, to *time.Time, err error) {
	if from, err = queryTime(r, "date_from", false); err != nil {
		return nil, nil, err
	}
	if to, err = queryTime(r, "date_to", true); err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, model.NewValidationError("date_from", "must not be after date_to")
	}
	return from, to, nil
}

func queryLimit(r *http.Request) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get("limit"))
	if value == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(value)
	if err != nil || limit <= 0 {
		return 0, model.NewValidationError("limit", "must be a positive integer")
	}
	return limit, nil
}
