package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stashbin/stashbin/internal/repository"
	"github.com/stashbin/stashbin/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// clientMessages maps client-input error kinds to their distinct messages.
// Auth and not-found failures are deliberately absent: those collapse to a
// single generic message each so the response never reveals which check
// failed.
var clientMessages = []struct {
	err     error
	message string
}{
	{service.ErrMissingName, "Missing name"},
	{service.ErrMissingType, "Missing type"},
	{service.ErrMissingData, "Missing data"},
	{service.ErrParentNotFound, "Parent not found"},
	{service.ErrParentNotFolder, "Parent is not a folder"},
	{service.ErrFolderHasNoData, "A folder doesn't have content"},
	{service.ErrMissingEmail, "Missing email"},
	{service.ErrMissingPassword, "Missing password"},
	{service.ErrInvalidEmail, "Invalid email"},
	{service.ErrEmailAlreadyExists, "Already exist"},
}

// writeServiceError translates a service error kind into its HTTP response.
// The services themselves never construct transport responses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMalformedCredential),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrMissingToken),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, repository.ErrUserNotFound):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return

	case errors.Is(err, repository.ErrFileNotFound):
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	for _, m := range clientMessages {
		if errors.Is(err, m.err) {
			writeError(w, http.StatusBadRequest, m.message)
			return
		}
	}

	slog.Error("request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
