package repository

import (
	"time"

	"go-inventory-pos/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportRepository interface {
	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
	GetDashboardStats() (*DashboardStats, error)
	GetSalesSummary(startDate, endDate time.Time) (*SalesSummary, error)
}

// StockMovementData aggregates ledger quantities per day for charting.
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// DashboardStats is the overview block on the landing page.
type DashboardStats struct {
	TotalProducts  int64           `json:"total_products"`
	LowStockCount  int64           `json:"low_stock_count"`
	TotalValuation decimal.Decimal `json:"total_valuation"`
}

// SalesSummary aggregates committed sales over a date range.
type SalesSummary struct {
	SaleCount     int64           `json:"sale_count"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	TotalTax      decimal.Decimal `json:"total_tax"`
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

func (r *reportRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	rows, err := r.db.Model(&model.StockTransaction{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN type = 'in' THEN quantity ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN type = 'out' THEN quantity ELSE 0 END), 0) as outbound
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *reportRepo) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	if err := r.db.Model(&model.Product{}).
		Where("status = ?", model.ProductActive).
		Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Product{}).
		Where("quantity < min_stock AND status = ?", model.ProductActive).
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Product{}).
		Where("status = ?", model.ProductActive).
		Select("COALESCE(SUM(quantity * price), 0)").
		Scan(&stats.TotalValuation).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *reportRepo) GetSalesSummary(startDate, endDate time.Time) (*SalesSummary, error) {
	var summary SalesSummary

	err := r.db.Model(&model.Sale{}).
		Where("status = ? AND created_at BETWEEN ? AND ?", model.SaleStatusCompleted, startDate, endDate).
		Select(`
			COUNT(*) as sale_count,
			COALESCE(SUM(final_amount), 0) as total_revenue,
			COALESCE(SUM(discount), 0) as total_discount,
			COALESCE(SUM(tax), 0) as total_tax
		`).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}

	return &summary, nil
}
