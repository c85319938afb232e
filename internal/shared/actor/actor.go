// Package actor carries the acting identity of a request through the
// unit of work. The actor is always threaded explicitly: use cases receive
// the actor id in their command and attach it to the transaction context
// themselves. An absent actor means a system-initiated operation.
package actor

import "context"

type actorKey struct{}

// Actor identifies who performs an operation. The id is opaque to the core;
// it is issued by the authentication layer.
type Actor struct {
	ID uint
}

// System reports whether the actor is absent (system-initiated operation).
func (a Actor) System() bool {
	return a.ID == 0
}

// WithActor returns a context carrying the given actor. A zero actor is not
// attached, so FromContext will report absence.
func WithActor(ctx context.Context, a Actor) context.Context {
	if a.System() {
		return ctx
	}
	return context.WithValue(ctx, actorKey{}, a)
}

// FromContext returns the actor attached to the context, if any.
func FromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok
}
