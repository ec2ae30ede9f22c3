package auth

import (
	"context"

	"github.com/platewise/platewise/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// actorContextKey is the context key for storing the authenticated actor.
	actorContextKey contextKey = "actor"
)

// ContextWithActor adds the authenticated actor to the context.
func ContextWithActor(ctx context.Context, actor model.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// ActorFromContext retrieves the authenticated actor from the context.
// The second return value is false if no actor is present.
func ActorFromContext(ctx context.Context) (model.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey).(model.Actor)
	return actor, ok
}

// MustActorFromContext retrieves the authenticated actor from the context.
// Panics if not present (use only when auth middleware has run).
func MustActorFromContext(ctx context.Context) model.Actor {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		panic("actor not found in context - ensure auth middleware is applied")
	}
	return actor
}
