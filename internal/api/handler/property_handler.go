package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"inmobiliaria_api/internal/api/middleware"
	"inmobiliaria_api/internal/app/service"
	"inmobiliaria_api/internal/common"
	"inmobiliaria_api/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type PropertyHandler struct {
	propertyService *service.PropertyService
}

func NewPropertyHandler(ps *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: ps}
}

func (h *PropertyHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listProperties)          // GET /api/properties
	r.Get("/{propertyID}", h.getProperty) // GET /api/properties/{id}

	r.Group(func(adminRouter chi.Router) {
		adminRouter.Use(middleware.Authenticator)
		adminRouter.Use(middleware.AdminOnly)
		adminRouter.Post("/", h.createProperty)
		adminRouter.Put("/{propertyID}", h.updateProperty)
		adminRouter.Delete("/{propertyID}", h.deleteProperty)
	})
}

// parseListingFilter maps query parameters onto a ListingFilter. Malformed
// numeric or boolean values are a validation error, not silently ignored.
func parseListingFilter(r *http.Request) (model.ListingFilter, error) {
	q := r.URL.Query()
	filter := model.ListingFilter{
		Type:   model.PropertyType(q.Get("type")),
		Status: model.PropertyStatus(q.Get("status")),
	}

	if !model.ValidPropertyType(filter.Type) {
		return filter, common.Errorf("tipo de propiedad inválido %q: %w", filter.Type, common.ErrValidation)
	}
	if !model.ValidPropertyStatus(filter.Status) {
		return filter, common.Errorf("estado de propiedad inválido %q: %w", filter.Status, common.ErrValidation)
	}

	if raw := q.Get("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, common.Errorf("featured debe ser true o false: %w", common.ErrValidation)
		}
		filter.Featured = &featured
	}
	if raw := q.Get("minPrice"); raw != "" {
		minPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil || minPrice < 0 {
			return filter, common.Errorf("minPrice inválido: %w", common.ErrValidation)
		}
		filter.MinPrice = &minPrice
	}
	if raw := q.Get("maxPrice"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil || maxPrice < 0 {
			return filter, common.Errorf("maxPrice inválido: %w", common.ErrValidation)
		}
		filter.MaxPrice = &maxPrice
	}

	switch sort := model.ListingSort(q.Get("sort")); sort {
	case "", model.SortNewest:
		filter.Sort = model.SortNewest
	case model.SortPriceAsc, model.SortPriceDesc:
		filter.Sort = sort
	default:
		return filter, common.Errorf("orden inválido %q: %w", sort, common.ErrValidation)
	}

	return filter, nil
}

func (h *PropertyHandler) listProperties(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListingFilter(r)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}

	properties, err := h.propertyService.List(r.Context(), filter)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, properties)
}

func (h *PropertyHandler) getProperty(w http.ResponseWriter, r *http.Request) {
	property, err := h.propertyService.Get(r.Context(), chi.URLParam(r, "propertyID"))
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, property)
}

func (h *PropertyHandler) createProperty(w http.ResponseWriter, r *http.Request) {
	var req service.CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	property, err := h.propertyService.Create(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, property)
}

func (h *PropertyHandler) updateProperty(w http.ResponseWriter, r *http.Request) {
	var patch model.PropertyPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	property, err := h.propertyService.Update(r.Context(), chi.URLParam(r, "propertyID"), patch)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, property)
}

func (h *PropertyHandler) deleteProperty(w http.ResponseWriter, r *http.Request) {
	if err := h.propertyService.Delete(r.Context(), chi.URLParam(r, "propertyID")); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
