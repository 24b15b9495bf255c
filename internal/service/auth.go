package service

import (
	"context"
	"fmt"

	"github.com/dtroode/fileshare-server/internal/logger"
	"github.com/dtroode/fileshare-server/internal/model"
)

// Auth composes the credential store, the federated identity provider and
// the token manager into the login flows.
type Auth struct {
	credentials model.CredentialVerifier
	federated   model.IdentityProvider
	tokens      model.TokenManager
	logger      *logger.Logger
}

func NewAuth(
	credentials model.CredentialVerifier,
	federated model.IdentityProvider,
	tokens model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		credentials: credentials,
		federated:   federated,
		tokens:      tokens,
		logger:      logger,
	}
}

// Login verifies local credentials and issues a session token. A failed
// match returns model.ErrInvalidCredentials, never the reason for it.
func (a *Auth) Login(ctx context.Context, username, password string) (string, error) {
	identity, ok := a.credentials.Verify(username, password)
	if !ok {
		a.logger.Info("Auth service: credential match failed",
			"username", username)
		return "", model.ErrInvalidCredentials
	}

	accessToken, err := a.tokens.Issue(identity)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"username", username,
			"error", err.Error())
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login completed",
		"username", identity.Username)

	return accessToken, nil
}

// FederatedLogin resolves a federated assertion through the identity
// provider and issues a session token for the resulting identity.
func (a *Auth) FederatedLogin(ctx context.Context, assertion string) (string, model.Identity, error) {
	identity, err := a.federated.Authenticate(ctx, assertion)
	if err != nil {
		a.logger.Error("Auth service: federated authentication failed",
			"error", err.Error())
		return "", model.Identity{}, fmt.Errorf("federated authentication failed: %w", err)
	}

	accessToken, err := a.tokens.Issue(identity)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"username", identity.Username,
			"error", err.Error())
		return "", model.Identity{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: federated login completed",
		"username", identity.Username)

	return accessToken, identity, nil
}

// Validate checks a presented token and extracts its identity.
func (a *Auth) Validate(ctx context.Context, tokenString string) (model.Identity, error) {
	return a.tokens.Validate(tokenString)
}
