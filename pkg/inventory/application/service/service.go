package service

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"inventory/pkg/inventory/domain/model"
	domainservice "inventory/pkg/inventory/domain/service"
)

var tracer = otel.Tracer("inventory/application")

type RepositoryProvider interface {
	ProductRepository() model.ProductRepository
	RecipeRepository() model.RecipeRepository
	WasteLogRepository() model.WasteLogRepository
	SaleRepository() model.SaleRepository
	AuditRepository() model.AuditRepository
}

type UnitOfWork interface {
	// Execute runs fn as one atomic unit. Products read through the provider
	// stay exclusively locked until the unit ends, and nothing fn wrote
	// survives when it returns an error.
	Execute(ctx context.Context, fn func(ctx context.Context, provider RepositoryProvider) error) error
}

// Storage serves unlocked reads through its repositories and mutations through Execute.
type Storage interface {
	RepositoryProvider
	UnitOfWork
}

// AuditRecorder is best effort: a returned error is logged and never fails the operation.
type AuditRecorder interface {
	Record(ctx context.Context, action string, actor model.Actor, details string) error
}

type auditableEvent interface {
	domainservice.Event
	Action() string
	Details() string
}

type executor struct {
	storage  Storage
	recorder AuditRecorder
}

func (e *executor) execute(
	ctx context.Context,
	operation string,
	fn func(ctx context.Context, provider RepositoryProvider, dispatcher domainservice.EventDispatcher) error,
) error {
	ctx, span := tracer.Start(ctx, operation)
	defer span.End()

	dispatcher := &bufferedDispatcher{}
	err := e.storage.Execute(ctx, func(ctx context.Context, provider RepositoryProvider) error {
		dispatcher.reset()
		return fn(ctx, provider, dispatcher)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	e.dispatchEvents(ctx, dispatcher.events)
	return nil
}

func (e *executor) dispatchEvents(ctx context.Context, events []domainservice.Event) {
	if e.recorder == nil {
		return
	}
	actor := ActorFromContext(ctx)
	for _, event := range events {
		auditable, ok := event.(auditableEvent)
		if !ok {
			continue
		}
		if err := e.recorder.Record(ctx, auditable.Action(), actor, auditable.Details()); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"event": event.Type(),
				"actor": actor.Name,
			}).Warn("failed to record audit event")
		}
	}
}

// bufferedDispatcher holds events until the unit of work commits.
type bufferedDispatcher struct {
	events []domainservice.Event
}

func (d *bufferedDispatcher) Dispatch(event domainservice.Event) error {
	d.events = append(d.events, event)
	return nil
}

func (d *bufferedDispatcher) reset() {
	d.events = nil
}
