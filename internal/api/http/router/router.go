package router

import (
	"net/http"

	"github.com/dtroode/fileshare-server/internal/api/http/handler"
	"github.com/dtroode/fileshare-server/internal/api/http/middleware"
	"github.com/dtroode/fileshare-server/internal/logger"
	"github.com/dtroode/fileshare-server/internal/model"
	"github.com/dtroode/fileshare-server/internal/service"
)

// Router wires HTTP handlers and middleware for the file-sharing service.
type Router struct {
	authService    *service.Auth
	fileService    *service.File
	broadcaster    model.Broadcaster
	contextManager model.ContextManager
	maxUploadBytes int64
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	fileService *service.File,
	broadcaster model.Broadcaster,
	contextManager model.ContextManager,
	maxUploadBytes int64,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		fileService:    fileService,
		broadcaster:    broadcaster,
		contextManager: contextManager,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Register builds the route table. The authentication gate wraps every
// protected route; login, federated login and the image stub stay open.
func (r *Router) Register() http.Handler {
	authHandler := handler.NewAuth(r.authService, r.contextManager, r.logger)
	fileHandler := handler.NewFile(r.fileService, r.maxUploadBytes, r.logger)
	eventHandler := handler.NewEventStream(r.broadcaster, r.logger)

	authenticate := middleware.NewAuthenticate(r.authService, r.contextManager, r.logger)
	logging := middleware.NewLogging(r.logger)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /auth/google-login", authHandler.GoogleLogin)
	mux.HandleFunc("POST /auth/process-image", fileHandler.ProcessImage)

	protect := func(h http.HandlerFunc) http.Handler {
		return authenticate.Handle(h)
	}

	mux.Handle("GET /auth/protected", protect(authHandler.Protected))
	mux.Handle("POST /auth/upload", protect(fileHandler.Upload))
	mux.Handle("GET /auth/files", protect(fileHandler.List))
	mux.Handle("GET /auth/files/{filename}", protect(fileHandler.Download))
	mux.Handle("GET /auth/events", protect(eventHandler.Stream))

	return logging.Handle(mux)
}
