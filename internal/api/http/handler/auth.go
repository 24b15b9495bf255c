package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dtroode/fileshare-server/internal/identity"
	"github.com/dtroode/fileshare-server/internal/logger"
	"github.com/dtroode/fileshare-server/internal/model"
)

// AuthService defines login operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	FederatedLogin(ctx context.Context, assertion string) (string, model.Identity, error)
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login handles POST /auth/login.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	accessToken, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{AccessToken: accessToken})
}

type googleLoginRequest struct {
	Token string `json:"token"`
}

type googleLoginResponse struct {
	AccessToken string          `json:"access_token"`
	User        googleLoginUser `json:"user"`
}

type googleLoginUser struct {
	Username string `json:"username"`
	Provider string `json:"provider"`
}

// GoogleLogin handles POST /auth/google-login. The provider is mocked:
// the assertion is accepted as-is and resolves to a fixed identity.
func (h *Auth) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	accessToken, id, err := h.authService.FederatedLogin(r.Context(), req.Token)
	if err != nil {
		h.logger.Error("Auth handler: google login failed",
			"error", err.Error())
		writeMessage(w, http.StatusUnauthorized, "Google login failed")
		return
	}

	writeJSON(w, http.StatusOK, googleLoginResponse{
		AccessToken: accessToken,
		User: googleLoginUser{
			Username: id.Username,
			Provider: identity.GoogleProviderName,
		},
	})
}

// Protected handles GET /auth/protected, a liveness check for a valid
// session.
func (h *Auth) Protected(w http.ResponseWriter, r *http.Request) {
	if id, ok := h.contextManager.GetIdentityFromContext(r.Context()); ok {
		h.logger.Debug("Auth handler: protected route accessed",
			"username", id.Username)
	}

	writeMessage(w, http.StatusOK, "You have accessed a protected route!")
}
