package service

import (
	"context"
	"strings"

	"inventory/pkg/inventory/domain/model"
)

type actorKey struct{}

func WithActor(ctx context.Context, actor model.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext falls back to the system actor and fills a missing id or name from the other.
func ActorFromContext(ctx context.Context) model.Actor {
	actor, ok := ctx.Value(actorKey{}).(model.Actor)
	if !ok {
		return model.SystemActor
	}
	actor.ID = strings.TrimSpace(actor.ID)
	actor.Name = strings.TrimSpace(actor.Name)
	switch {
	case actor.ID == "" && actor.Name == "":
		return model.SystemActor
	case actor.ID == "":
		actor.ID = actor.Name
	case actor.Name == "":
		actor.Name = actor.ID
	}
	return actor
}
