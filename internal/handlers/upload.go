package handlers

import (
	"CurtainSamples/internal/service"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UploadHandler загрузка и раздача картинок.
type UploadHandler struct {
	ImageService *service.ImageService
	Logger       *zap.SugaredLogger
}

func NewUploadHandler(imageService *service.ImageService, logger *zap.SugaredLogger) *UploadHandler {
	return &UploadHandler{ImageService: imageService, Logger: logger}
}

type UploadResponse struct {
	URL string `json:"url"`
}

// Upload сохраняет файл из поля image multipart-формы. Размер файла не ограничивается,
// всё сверх maxMultipartMemory ParseMultipartForm сбрасывает во временный файл.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		h.Logger.Warnw("Upload: invalid multipart form", "error", err)
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile(formFieldImage)
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	url, ok, err := h.ImageService.SaveImage(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		h.Logger.Errorw("Upload: failed to store image", "filename", header.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !ok {
		writeError(w, http.StatusBadRequest, "unsupported file type, allowed: png, jpg, jpeg, gif")
		return
	}
	writeJSON(w, http.StatusCreated, UploadResponse{URL: url})
}

// Serve отдаёт сохранённую картинку по имени.
func (h *UploadHandler) Serve(w http.ResponseWriter, r *http.Request) {
	rc, contentType, err := h.ImageService.Open(r.Context(), chi.URLParam(r, "filename"))
	if errors.Is(err, service.ErrImageNotFound) {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}
	if err != nil {
		h.Logger.Errorw("Serve: failed to open image", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.Logger.Warnw("Serve: write interrupted", "error", err)
	}
}
