package trace

import "context"

// ctxKey is the key type for storing a Registry in context.
type ctxKey struct{}

// FromContext extracts the Registry from context.
// If not found, returns nil, which disables tracing in Wrap and Silence.
func FromContext(ctx context.Context) *Registry {
	if ctx == nil {
		return nil
	}
	if r, ok := ctx.Value(ctxKey{}).(*Registry); ok {
		return r
	}
	return nil
}

// WithRegistry attaches a Registry to context.
func WithRegistry(ctx context.Context, r *Registry) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, r)
}
