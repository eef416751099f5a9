package handler

import (
	"mall-pos/internal/middleware"
	"mall-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ReportHandler struct {
	reports service.ReportService
	logger  *zap.Logger
}

func NewReportHandler(reports service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, logger: logger}
}

// DailySales returns per-day totals
// GET /api/v1/reports/daily-sales?limit=
func (h *ReportHandler) DailySales(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	rows, err := h.reports.DailySales(identity.MallID, c.QueryInt("limit"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"data": rows})
}

// TopProducts returns best sellers by units
// GET /api/v1/reports/top-products?limit=
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	rows, err := h.reports.TopProducts(identity.MallID, c.QueryInt("limit"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"data": rows})
}
