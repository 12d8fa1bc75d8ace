package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hrms-service/internal/api/dto"
	"github.com/spec-kit/hrms-service/internal/domain"
)

// DashboardService computes overview statistics.
type DashboardService interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
}

// DashboardHandler serves the overview page data.
type DashboardHandler struct {
	dashboard DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats handles GET /dashboard/stats.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboard.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDashboardStatsResponse(stats))
}
