package handler

import (
	"time"

	"go-inventory-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.ReportService
}

func NewDashboardHandler(s service.ReportService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(stats)
}

func (h *DashboardHandler) GetStockMovement(c *fiber.Ctx) error {
	startDate, endDate := rangeFromQuery(c)
	movement, err := h.service.GetStockMovement(startDate, endDate)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(movement)
}

func (h *DashboardHandler) GetSalesSummary(c *fiber.Ctx) error {
	startDate, endDate := rangeFromQuery(c)
	summary, err := h.service.GetSalesSummary(startDate, endDate)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(summary)
}

// rangeFromQuery resolves the ?range= shorthand, defaulting to 7 days.
func rangeFromQuery(c *fiber.Ctx) (time.Time, time.Time) {
	now := time.Now()
	switch c.Query("range", "7d") {
	case "1m":
		return now.AddDate(0, -1, 0), now
	case "3m":
		return now.AddDate(0, -3, 0), now
	case "6m":
		return now.AddDate(0, -6, 0), now
	case "12m":
		return now.AddDate(0, -12, 0), now
	default:
		return now.AddDate(0, 0, -7), now
	}
}
