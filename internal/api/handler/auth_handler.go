package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"inmobiliaria_api/internal/api/middleware"
	"inmobiliaria_api/internal/app/service"
	"inmobiliaria_api/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes wires the public login route. The rate limiter is supplied
// by the router so the limit configuration stays in one place.
func (h *AuthHandler) RegisterRoutes(r chi.Router, loginLimiter func(http.Handler) http.Handler) {
	r.With(loginLimiter).Post("/login", h.login)

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Get("/auth-check", h.authCheck)
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrBadRequest):
			common.RespondWithError(w, http.StatusBadRequest, "Usuario y contraseña son requeridos")
		case errors.Is(err, common.ErrUnauthorized):
			// Uniform message: never reveal whether the username or the
			// password was wrong.
			common.RespondWithError(w, http.StatusUnauthorized, "Usuario o contraseña incorrectos")
		default:
			common.RespondWithDomainError(w, err)
		}
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) authCheck(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Token de acceso requerido")
		return
	}

	user, err := h.authService.CheckUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrForbidden) {
			common.RespondWithError(w, http.StatusForbidden, "Usuario no encontrado")
			return
		}
		common.RespondWithDomainError(w, err)
		return
	}

	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
