package scope

import "context"

// Context key types are unexported to avoid collisions.
type correlationIDKey struct{}

// WithCorrelationID returns a context carrying the correlation id. The
// context is the ambient propagation channel: scopes begun from a carrying
// context inherit the id instead of allocating a new root id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationID extracts the correlation id from a context. Returns empty
// string and false if not set or empty.
func CorrelationID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(correlationIDKey{}).(string)
	return id, ok && id != ""
}
