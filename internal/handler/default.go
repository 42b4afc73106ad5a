package handler

import (
	"context"
	"net/http"

	"github.com/oggyb/whatsapp-notifier/internal/response"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// CheckFunc adapts a function to HealthChecker.
type CheckFunc func(ctx context.Context) error

func (f CheckFunc) Ping(ctx context.Context) error { return f(ctx) }

// HomeHandler serves the root and health endpoints.
type HomeHandler struct {
	checks map[string]HealthChecker
}

// NewHomeHandler returns a HomeHandler that pings the given dependencies on
// GET /health.
func NewHomeHandler(checks map[string]HealthChecker) *HomeHandler {
	return &HomeHandler{checks: checks}
}

// Index godoc
// @Summary     Welcome endpoint
// @Description Simple root endpoint that returns a welcome message.
// @Tags        home
// @Produce     json
// @Success     200 {object} response.WelcomeResponse
// @Router      / [get]
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	payload := response.WelcomePayload{
		Message: "WhatsApp notifier",
	}

	response.RespondJSON(w, http.StatusOK, payload)
}

// Health godoc
// @Summary     Health check
// @Description Pings the cache and the WhatsApp API; 503 when one is down.
// @Tags        home
// @Produce     json
// @Success     200 {object} response.HealthResponse
// @Failure     503 {object} response.JSONResponse
// @Router      /health [get]
func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	for name, c := range h.checks {
		if err := c.Ping(r.Context()); err != nil {
			response.RespondError(w, http.StatusServiceUnavailable, name+": "+err.Error())
			return
		}
	}

	response.RespondJSON(w, http.StatusOK, response.HealthPayload{Status: "ok"})
}
