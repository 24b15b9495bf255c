package context

import (
	"context"

	"github.com/dtroode/fileshare-server/internal/model"
)

type contextKey int

// identityKey is the context key under which the authenticated identity
// is stored for the duration of a request.
const identityKey contextKey = iota

// Manager represents an HTTP request context manager for identity
// operations.
type Manager struct{}

// NewManager creates a new HTTP context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetIdentityToContext returns a child context carrying the identity.
func (m *Manager) SetIdentityToContext(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentityFromContext retrieves the identity set by the authentication
// middleware, reporting whether one was present.
func (m *Manager) GetIdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(model.Identity)
	return identity, ok
}
