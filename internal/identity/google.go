// Package identity contains federated identity providers. Only a mock
// Google provider exists today; a real provider can be substituted behind
// model.IdentityProvider without touching the token or upload services.
package identity

import (
	"context"

	"github.com/dtroode/fileshare-server/internal/model"
)

// Google is a mock federated provider: it accepts any assertion and
// resolves it to a fixed identity.
type Google struct {
	username string
}

// NewGoogle creates a mock Google provider yielding the given username.
func NewGoogle(username string) *Google {
	return &Google{username: username}
}

// Provider name reported to clients alongside the issued token.
const GoogleProviderName = "google"

// Authenticate ignores the assertion and returns the fixed identity.
func (g *Google) Authenticate(_ context.Context, _ string) (model.Identity, error) {
	return model.Identity{Username: g.username}, nil
}
