package actorctx

import (
	"context"
	"strings"
)

// actorKey is the request context key for the authenticated system user.
type actorKey struct{}

// Actor identifies the authenticated user for audit stamping.
type Actor struct {
	UserID   string
	Username string
}

// WithActor stores the authenticated actor in the context.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// FromContext returns the authenticated actor, if set.
func FromContext(ctx context.Context) (Actor, bool) {
	if ctx == nil {
		return Actor{}, false
	}
	actor, ok := ctx.Value(actorKey{}).(Actor)
	if !ok || strings.TrimSpace(actor.Username) == "" {
		return Actor{}, false
	}
	return actor, true
}

// Username returns the actor's username, or "system" when no actor is set.
// Migration and seed paths run without a request context.
func Username(ctx context.Context) string {
	if actor, ok := FromContext(ctx); ok {
		return actor.Username
	}
	return "system"
}
