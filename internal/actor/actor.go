// Package actor carries the identity of the caller on the request context.
package actor

import "context"

// Anonymous is reported when no caller identity was attached.
const Anonymous = "anonymous"

// Actor identifies who performed an operation, for audit logging.
type Actor struct {
	ID        string
	RequestID string
}

type ctxKey struct{}

// WithActor returns a copy of ctx carrying a.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// FromContext returns the caller attached to ctx, or an anonymous actor.
func FromContext(ctx context.Context) Actor {
	a, ok := ctx.Value(ctxKey{}).(Actor)
	if !ok || a.ID == "" {
		a.ID = Anonymous
	}
	return a
}
