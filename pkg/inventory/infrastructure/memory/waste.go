package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"inventory/pkg/inventory/domain/model"
)

type wasteLogRepository struct {
	access access
}

func (r *wasteLogRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *wasteLogRepository) Create(_ context.Context, log *model.WasteLog) error {
	return r.access.write(func(st *state) error {
		st.wasteLogs = append(st.wasteLogs, *log)
		return nil
	})
}

func (r *wasteLogRepository) Find(_ context.Context, id string) (*model.WasteLog, error) {
	var found *model.WasteLog
	err := r.access.read(func(st *state) error {
		for _, entry := range st.wasteLogs {
			if entry.ID == id {
				entry := entry
				found = &entry
				return nil
			}
		}
		return model.ErrWasteLogNotFound
	})
	return found, err
}

func (r *wasteLogRepository) List(_ context.Context, filter model.WasteFilter) ([]model.WasteLog, error) {
	var entries []model.WasteLog
	err := r.access.read(func(st *state) error {
		for _, entry := range st.wasteLogs {
			if filter.ProductID != "" && entry.ProductID != filter.ProductID {
				continue
			}
			if !inRange(entry.WasteDate, filter.DateFrom, filter.DateTo) {
				continue
			}
			entries = append(entries, entry)
		}
		return nil
	})
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].WasteDate.After(entries[j].WasteDate) })
	return limit(entries, filter.Limit), err
}
