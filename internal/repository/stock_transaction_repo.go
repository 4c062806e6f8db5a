package repository

import (
	"time"

	"go-inventory-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockTransactionFilter narrows history queries. Zero values mean "no
// constraint"; every condition is bound as a query parameter.
type StockTransactionFilter struct {
	ProductID *uuid.UUID
	Type      model.StockTransactionType
	From      *time.Time
	To        *time.Time
}

type StockTransactionRepository interface {
	Create(tx *model.StockTransaction) error
	Find(filter StockTransactionFilter) ([]model.StockTransaction, error)
	FindByID(id uuid.UUID) (*model.StockTransaction, error)
	FindBySaleID(saleID uuid.UUID) ([]model.StockTransaction, error)
}

type stockTransactionRepo struct {
	db *gorm.DB
}

func NewStockTransactionRepo(db *gorm.DB) StockTransactionRepository {
	return &stockTransactionRepo{db}
}

func (r *stockTransactionRepo) Create(tx *model.StockTransaction) error {
	return r.db.Create(tx).Error
}

func (r *stockTransactionRepo) Find(filter StockTransactionFilter) ([]model.StockTransaction, error) {
	q := r.db.Preload("Product").Order("created_at DESC")

	if filter.ProductID != nil {
		q = q.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at <= ?", *filter.To)
	}

	var transactions []model.StockTransaction
	err := q.Find(&transactions).Error
	return transactions, err
}

func (r *stockTransactionRepo) FindByID(id uuid.UUID) (*model.StockTransaction, error) {
	var transaction model.StockTransaction
	err := r.db.Preload("Product").First(&transaction, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *stockTransactionRepo) FindBySaleID(saleID uuid.UUID) ([]model.StockTransaction, error) {
	var transactions []model.StockTransaction
	err := r.db.Where("sale_id = ?", saleID).Order("created_at ASC").Find(&transactions).Error
	return transactions, err
}
