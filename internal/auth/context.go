package auth

import (
	"context"

	"harborview.org/internal/identity"
)

// Actor is the request-scoped view of the authenticated identity. Role is
// empty until the role authorizer has confirmed it against live storage.
type Actor struct {
	ID   string
	Name string
	Role identity.Role
}

type actorContextKey struct{}

// ContextWithActor attaches the actor to the request context.
func ContextWithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, &actor)
}

// ActorFromContext extracts the actor from the request context.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	if ctx == nil {
		return Actor{}, false
	}
	v, ok := ctx.Value(actorContextKey{}).(*Actor)
	if !ok || v == nil || v.ID == "" {
		return Actor{}, false
	}
	return *v, true
}
