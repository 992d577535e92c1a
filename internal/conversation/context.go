package conversation

import "context"

type contextKey struct{}

// WithManager returns a copy of ctx carrying m.
func WithManager(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, contextKey{}, m)
}

// FromContext returns the Manager bound to ctx. The boolean is false when
// no conversation was bound, and callers must handle that case.
func FromContext(ctx context.Context) (*Manager, bool) {
	m, ok := ctx.Value(contextKey{}).(*Manager)
	return m, ok && m != nil
}
