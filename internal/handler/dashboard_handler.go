package handler

import (
	"mall-pos/internal/middleware"
	"mall-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	service service.DashboardService
	logger  *zap.Logger
}

func NewDashboardHandler(s service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{service: s, logger: logger}
}

// GetDashboardStats returns overview statistics for the caller's mall
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	stats, err := h.service.GetDashboardStats(identity.MallID)
	if err != nil {
		h.logger.Error("failed to fetch dashboard stats", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}

	return c.JSON(stats)
}
