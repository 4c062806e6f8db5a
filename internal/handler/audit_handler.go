package handler

import (
	"strconv"

	"go-inventory-pos/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type AuditHandler struct {
	auditRepo repository.AuditLogRepository
}

func NewAuditHandler(auditRepo repository.AuditLogRepository) *AuditHandler {
	return &AuditHandler{auditRepo: auditRepo}
}

// GetAuditLogs returns recent audit entries, optionally filtered by actor
// GET /api/v1/audit-logs?actor=&limit=
func (h *AuditHandler) GetAuditLogs(c *fiber.Ctx) error {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid limit"})
		}
		limit = parsed
	}

	if actor := c.Query("actor"); actor != "" {
		logs, err := h.auditRepo.FindByActor(actor, limit)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch audit logs"})
		}
		return c.JSON(logs)
	}

	logs, err := h.auditRepo.FindRecent(limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch audit logs"})
	}
	return c.JSON(logs)
}
