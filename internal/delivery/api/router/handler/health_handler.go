package handler

import (
	"net/http"

	"society/config"

	"github.com/labstack/echo/v4"
)

// HealthHandler answers liveness probes.
type HealthHandler struct {
	service string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{service: cfg.Env.ServiceName}
}

// HealthCheck reports that the process is serving.
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "service": h.service})
}
