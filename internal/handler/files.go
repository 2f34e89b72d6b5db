package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/stashbin/stashbin/internal/ctxkeys"
	"github.com/stashbin/stashbin/internal/service"
)

type FilesHandler struct {
	fileService *service.FileService
}

func NewFilesHandler(fileService *service.FileService) *FilesHandler {
	return &FilesHandler{fileService: fileService}
}

func (h *FilesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateFileInput

	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	file, err := h.fileService.Create(r.Context(), ctxkeys.UserID(r.Context()), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, file)
}

func (h *FilesHandler) Show(w http.ResponseWriter, r *http.Request) {
	file, err := h.fileService.Owned(ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, file)
}

func (h *FilesHandler) Index(w http.ResponseWriter, r *http.Request) {
	parentID := r.URL.Query().Get("parentId")

	// A bad page value is treated as page zero, not an error
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = 0
	}

	files, err := h.fileService.ListOwned(ctxkeys.UserID(r.Context()), parentID, page)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, files)
}

func (h *FilesHandler) Publish(w http.ResponseWriter, r *http.Request) {
	h.setVisibility(w, r, true)
}

func (h *FilesHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	h.setVisibility(w, r, false)
}

func (h *FilesHandler) setVisibility(w http.ResponseWriter, r *http.Request, isPublic bool) {
	file, err := h.fileService.SetVisibility(ctxkeys.UserID(r.Context()), r.PathValue("id"), isPublic)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, file)
}

// Data streams a file's content. Authentication is optional here: anonymous
// callers can read public files, everything else resolves as not found.
func (h *FilesHandler) Data(w http.ResponseWriter, r *http.Request) {
	data, mimeType, err := h.fileService.Data(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", mimeType)
	w.Write(data)
}
