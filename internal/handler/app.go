package handler

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/stashbin/stashbin/internal/cache"
	"github.com/stashbin/stashbin/internal/repository"
)

// AppHandler serves the liveness and stats read-throughs.
type AppHandler struct {
	db             *sqlx.DB
	cache          cache.Cache
	userRepository repository.UserRepository
	fileRepository repository.FileRepository
}

func NewAppHandler(db *sqlx.DB, cache cache.Cache, userRepository repository.UserRepository, fileRepository repository.FileRepository) *AppHandler {
	return &AppHandler{
		db:             db,
		cache:          cache,
		userRepository: userRepository,
		fileRepository: fileRepository,
	}
}

func (h *AppHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{
		"cache": h.cache.Alive(),
		"db":    h.db.Ping() == nil,
	})
}

func (h *AppHandler) Stats(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepository.Count()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	files, err := h.fileRepository.Count()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{
		"users": users,
		"files": files,
	})
}
