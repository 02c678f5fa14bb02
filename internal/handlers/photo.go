package handlers

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"weight-tracker-backend/internal/services"

	"github.com/rs/zerolog/log"
)

const maxUploadMemory = 32 << 20 // 32 MiB held in memory before spilling to disk

// PhotoHandler handles photo-related HTTP requests
type PhotoHandler struct {
	photoService *services.PhotoService
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(photoService *services.PhotoService) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
	}
}

// UploadPhoto handles POST /api/users/{user_id}/photos (multipart form with
// a "file" part and a "date" field)
func (h *PhotoHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "user_id")
	if err != nil {
		respondError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, "no file selected", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, "failed to read file", http.StatusBadRequest)
		return
	}

	photo, err := h.photoService.Upload(r.Context(), userID, data, header.Filename, r.FormValue("date"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().
		Int64("user_id", userID).
		Int64("photo_id", photo.ID).
		Str("image_path", photo.ImagePath).
		Msg("Photo uploaded")

	respondJSON(w, http.StatusCreated, photo)
}

// ListPhotos handles GET /api/users/{user_id}/photos
func (h *PhotoHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "user_id")
	if err != nil {
		respondError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	photos, err := h.photoService.ListPhotos(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, photos)
}

// ServePhoto handles GET /api/photos/{photo_id} (inline viewing)
func (h *PhotoHandler) ServePhoto(w http.ResponseWriter, r *http.Request) {
	h.servePhoto(w, r, false)
}

// DownloadPhoto handles GET /api/photos/{photo_id}/download (attachment)
func (h *PhotoHandler) DownloadPhoto(w http.ResponseWriter, r *http.Request) {
	h.servePhoto(w, r, true)
}

func (h *PhotoHandler) servePhoto(w http.ResponseWriter, r *http.Request, asAttachment bool) {
	photoID, err := idParam(r, "photo_id")
	if err != nil {
		respondError(w, "invalid photo id", http.StatusBadRequest)
		return
	}

	photo, data, err := h.photoService.GetPhoto(r.Context(), photoID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(photo.ImagePath))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	w.Header().Set("Content-Type", contentType)
	if asAttachment {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", photo.ImagePath))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// DeletePhoto handles DELETE /api/photos/{photo_id}
func (h *PhotoHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	photoID, err := idParam(r, "photo_id")
	if err != nil {
		respondError(w, "invalid photo id", http.StatusBadRequest)
		return
	}

	if err := h.photoService.DeletePhoto(r.Context(), photoID); err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().Int64("photo_id", photoID).Msg("Photo deleted")

	respondJSON(w, http.StatusOK, MessageResponse{Message: "photo deleted"})
}
