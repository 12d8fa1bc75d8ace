package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hrms-service/internal/api/dto"
	"github.com/spec-kit/hrms-service/internal/observability"
)

// SystemHandler serves the root info document and the request counters.
type SystemHandler struct {
	name      string
	version   string
	apiPrefix string
	metrics   *observability.Metrics
}

// NewSystemHandler constructs handler.
func NewSystemHandler(name, version, apiPrefix string, metrics *observability.Metrics) *SystemHandler {
	return &SystemHandler{name: name, version: version, apiPrefix: apiPrefix, metrics: metrics}
}

// Info handles GET /.
func (h *SystemHandler) Info(c *fiber.Ctx) error {
	return c.JSON(dto.APIInfoResponse{
		Message: "Welcome to HRMS Lite API",
		Version: h.version,
		Health:  h.apiPrefix + "/health",
	})
}

// Metrics handles GET /metrics.
func (h *SystemHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": h.name,
		"version": h.version,
		"metrics": h.metrics.Snapshot(),
	})
}
