package handler

import (
	"context"
	"net/http"
	"time"

	"inmobiliaria_api/internal/common"
)

// HealthCheck probes one dependency. Name is what shows up in the response.
type HealthCheck struct {
	Name  string
	Probe func(ctx context.Context) error
}

type HealthHandler struct {
	checks []HealthCheck
}

func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

type healthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// ServeHTTP reports liveness plus per-dependency readiness. Any failing
// dependency degrades the response to 503.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", Components: map[string]string{}}
	code := http.StatusOK
	for _, check := range h.checks {
		if err := check.Probe(ctx); err != nil {
			resp.Components[check.Name] = "down"
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Components[check.Name] = "up"
	}

	common.RespondWithJSON(w, code, resp)
}
