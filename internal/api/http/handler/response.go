package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dtroode/fileshare-server/internal/model"
)

// messageResponse is the uniform error/info body shape.
type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// handleError maps model errors to HTTP responses. Internal error text is
// never leaked to the client.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, model.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "File not found")
	default:
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
