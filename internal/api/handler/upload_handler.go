package handler

import (
	"net/http"

	"inmobiliaria_api/internal/api/middleware"
	"inmobiliaria_api/internal/common"
	"inmobiliaria_api/internal/platform/storage"

	"github.com/go-chi/chi/v5"
)

type UploadHandler struct {
	images *storage.ImageStore
}

func NewUploadHandler(images *storage.ImageStore) *UploadHandler {
	return &UploadHandler{images: images}
}

func (h *UploadHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(adminRouter chi.Router) {
		adminRouter.Use(middleware.Authenticator)
		adminRouter.Use(middleware.AdminOnly)
		adminRouter.Post("/", h.upload)
	})
}

// upload accepts a multipart form with an "image" field and returns the
// public URL of the stored file.
func (h *UploadHandler) upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("image")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Se requiere un archivo en el campo \"image\"")
		return
	}
	defer file.Close()

	filename, err := h.images.Save(header.Filename, file)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}

	common.RespondWithJSON(w, http.StatusCreated, map[string]string{"url": "/uploads/" + filename})
}
