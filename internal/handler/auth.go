package handler

import (
	"net/http"

	"github.com/stashbin/stashbin/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Connect signs the caller in with Basic auth and returns a fresh session
// token.
func (h *AuthHandler) Connect(w http.ResponseWriter, r *http.Request) {
	token, err := h.authService.Login(r.Header.Get("Authorization"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Disconnect revokes the presented token.
func (h *AuthHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	err := h.authService.Revoke(r.Header.Get("X-Token"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
