package handler

import (
	"time"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	ledger  service.LedgerService
	reports service.ReportService
}

func NewStockHandler(ledger service.LedgerService, reports service.ReportService) *StockHandler {
	return &StockHandler{ledger: ledger, reports: reports}
}

// ApplyStockChange is the manual stock path: goods-in, goods-out and
// recount adjustments. Sales never come through here.
func (h *StockHandler) ApplyStockChange(c *fiber.Ctx) error {
	var req service.StockChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.ledger.ApplyStockChange(c.Context(), &req, actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Stock updated", "data": entry})
}

func (h *StockHandler) GetHistory(c *fiber.Ctx) error {
	filter, err := historyFilterFromQuery(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	entries, err := h.ledger.GetHistory(filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(entries)
}

func (h *StockHandler) GetTransaction(c *fiber.Ctx) error {
	txID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	entry, err := h.ledger.GetTransactionByID(txID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entry)
}

// ExportHistoryCSV streams the filtered ledger as a CSV download.
func (h *StockHandler) ExportHistoryCSV(c *fiber.Ctx) error {
	filter, err := historyFilterFromQuery(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock_history.csv"`)

	if err := h.reports.ExportStockHistoryCSV(c.Response().BodyWriter(), filter); err != nil {
		return respondError(c, err)
	}
	return nil
}

func historyFilterFromQuery(c *fiber.Ctx) (repository.StockTransactionFilter, error) {
	var filter repository.StockTransactionFilter

	if raw := c.Query("product_id"); raw != "" {
		id, err := parseUUID(raw)
		if err != nil {
			return filter, fiber.NewError(fiber.StatusBadRequest, "invalid product_id")
		}
		filter.ProductID = &id
	}
	if raw := c.Query("type"); raw != "" {
		t := model.StockTransactionType(raw)
		if !t.Valid() {
			return filter, fiber.NewError(fiber.StatusBadRequest, "invalid type")
		}
		filter.Type = t
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, fiber.NewError(fiber.StatusBadRequest, "invalid from date, use YYYY-MM-DD")
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, fiber.NewError(fiber.StatusBadRequest, "invalid to date, use YYYY-MM-DD")
		}
		// inclusive end of day
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}

	return filter, nil
}
