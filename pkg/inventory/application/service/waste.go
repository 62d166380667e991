package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"inventory/pkg/inventory/domain/model"
	domainservice "inventory/pkg/inventory/domain/service"
)

type WasteLogView struct {
	model.WasteLog
	Cost decimal.Decimal
}

type WasteService interface {
	RecordWaste(ctx context.Context, input domainservice.WasteInput) (*WasteLogView, error)
	GetWasteLog(ctx context.Context, wasteLogID string) (*WasteLogView, error)
	ListWaste(ctx context.Context, filter model.WasteFilter) ([]WasteLogView, error)
}

func NewWasteService(storage Storage, recorder AuditRecorder) WasteService {
	return &wasteService{executor{storage: storage, recorder: recorder}}
}

type wasteService struct {
	executor
}

// RecordWaste attributes the entry to the acting user unless the input names a recorder.
func (s *wasteService) RecordWaste(ctx context.Context, input domainservice.WasteInput) (*WasteLogView, error) {
	if strings.TrimSpace(input.RecordedBy) == "" {
		input.RecordedBy = ActorFromContext(ctx).Name
	}

	var view *WasteLogView
	err := s.execute(ctx, "waste.record", func(ctx context.Context, provider RepositoryProvider, dispatcher domainservice.EventDispatcher) error {
		waste := domainservice.NewWasteService(provider.ProductRepository(), provider.WasteLogRepository(), dispatcher)
		entry, product, err := waste.RecordWaste(ctx, input)
		if err != nil {
			return err
		}
		view = &WasteLogView{WasteLog: *entry, Cost: domainservice.WasteCost(entry, product)}
		return nil
	})
	return view, err
}

func (s *wasteService) GetWasteLog(ctx context.Context, wasteLogID string) (*WasteLogView, error) {
	entry, err := s.storage.WasteLogRepository().Find(ctx, wasteLogID)
	if err != nil {
		return nil, err
	}
	views, err := s.views(ctx, []model.WasteLog{*entry})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *wasteService) ListWaste(ctx context.Context, filter model.WasteFilter) ([]WasteLogView, error) {
	entries, err := s.storage.WasteLogRepository().List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, entries)
}

func (s *wasteService) views(ctx context.Context, entries []model.WasteLog) ([]WasteLogView, error) {
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ProductID)
	}
	products, err := s.storage.ProductRepository().FindMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]WasteLogView, 0, len(entries))
	for i := range entries {
		views = append(views, WasteLogView{
			WasteLog: entries[i],
			Cost:     domainservice.WasteCost(&entries[i], products[entries[i].ProductID]),
		})
	}
	return views, nil
}
