package handler

import (
	"encoding/json"
	"net/http"

	"inmobiliaria_api/internal/app/service"
	"inmobiliaria_api/internal/common"

	"github.com/go-chi/chi/v5"
)

type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.submit)
}

func (h *ContactHandler) submit(w http.ResponseWriter, r *http.Request) {
	var req service.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	if err := h.contactService.Submit(r.Context(), req); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Consulta recibida, nos pondremos en contacto"})
}
