package service

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"go-inventory-pos/internal/repository"
)

// ReportService serves the dashboard aggregates and the stock history
// export. Read-only; reporting queries never join a business transaction.
type ReportService interface {
	GetDashboardStats() (*repository.DashboardStats, error)
	GetStockMovement(startDate, endDate time.Time) ([]repository.StockMovementData, error)
	GetSalesSummary(startDate, endDate time.Time) (*repository.SalesSummary, error)
	ExportStockHistoryCSV(w io.Writer, filter repository.StockTransactionFilter) error
}

type reportService struct {
	reportRepo repository.ReportRepository
	stockRepo  repository.StockTransactionRepository
}

func NewReportService(reportRepo repository.ReportRepository, stockRepo repository.StockTransactionRepository) ReportService {
	return &reportService{reportRepo: reportRepo, stockRepo: stockRepo}
}

func (s *reportService) GetDashboardStats() (*repository.DashboardStats, error) {
	return s.reportRepo.GetDashboardStats()
}

func (s *reportService) GetStockMovement(startDate, endDate time.Time) ([]repository.StockMovementData, error) {
	return s.reportRepo.GetStockMovement(startDate, endDate)
}

func (s *reportService) GetSalesSummary(startDate, endDate time.Time) (*repository.SalesSummary, error) {
	return s.reportRepo.GetSalesSummary(startDate, endDate)
}

// ExportStockHistoryCSV streams the filtered ledger as CSV. Same filter
// semantics as the history listing; rows come out newest first.
func (s *reportService) ExportStockHistoryCSV(w io.Writer, filter repository.StockTransactionFilter) error {
	entries, err := s.stockRepo.Find(filter)
	if err != nil {
		return wrapStoreErr("export stock history", err)
	}

	cw := csv.NewWriter(w)
	header := []string{"date", "product_sku", "product_name", "type", "quantity", "previous_quantity", "new_quantity", "actor", "note"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, entry := range entries {
		sku, name := "", ""
		if entry.Product != nil {
			sku = entry.Product.SKU
			name = entry.Product.Name
		}
		record := []string{
			entry.CreatedAt.Format(time.RFC3339),
			sku,
			name,
			string(entry.Type),
			strconv.Itoa(entry.Quantity),
			strconv.Itoa(entry.PreviousQuantity),
			strconv.Itoa(entry.NewQuantity),
			entry.CreatedBy,
			entry.Note,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
