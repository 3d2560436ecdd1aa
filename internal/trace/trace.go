// Package trace provides request correlation IDs threaded through
// context.Context. The rpc package attaches a fresh ID to the context
// of each request that carries an id; log lines and errors are not
// tagged with it.
package trace

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

var traceIDKey = contextKey{}

// ID represents a unique trace identifier.
type ID string

// NewID generates a new unique trace ID.
func NewID() ID {
	return ID(uuid.New().String())
}

// WithTraceID returns a new context carrying the given trace ID.
func WithTraceID(ctx context.Context, id ID) context.Context {
	return context.WithValue(ctx, traceIDKey, id)
}

// FromContext retrieves the trace ID from the context, or "" if absent.
func FromContext(ctx context.Context) ID {
	id, ok := ctx.Value(traceIDKey).(ID)
	if !ok {
		return ""
	}

	return id
}

// String returns the string representation of the trace ID.
func (id ID) String() string {
	return string(id)
}
