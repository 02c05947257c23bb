package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const healthTimeout = 2 * time.Second

// Pinger checks connectivity to a backing service
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service health
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health handles GET /health
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("Health check failed")
		return NewServiceUnavailableError(c, "Database unavailable")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
